package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLimit is the page size used when none is requested
	DefaultLimit = 20
	// MaxLimit caps the requested page size
	MaxLimit = 100
	// DefaultOffset is the starting offset
	DefaultOffset = 0
)

// Params holds parsed pagination parameters
type Params struct {
	Limit  int
	Offset int
}

// Meta describes a page of results
type Meta struct {
	Limit       int   `json:"limit"`
	Offset      int   `json:"offset"`
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	HasMore     bool  `json:"has_more"`
}

// ParseParams extracts limit/offset query parameters with defaults and caps
func ParseParams(c *gin.Context) Params {
	params := Params{Limit: DefaultLimit, Offset: DefaultOffset}

	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		params.Limit = v
		if params.Limit > MaxLimit {
			params.Limit = MaxLimit
		}
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		params.Offset = v
	}

	return params
}

// BuildMeta builds pagination metadata for a result set
func BuildMeta(limit, offset int, total int64) *Meta {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	if total < 0 {
		total = 0
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &Meta{
		Limit:       limit,
		Offset:      offset,
		Total:       total,
		CurrentPage: GetCurrentPage(limit, offset),
		TotalPages:  totalPages,
		HasMore:     HasMore(limit, offset, total),
	}
}

// HasMore reports whether rows remain beyond the current page
func HasMore(limit, offset int, total int64) bool {
	if limit <= 0 || total <= 0 {
		return false
	}
	return int64(offset+limit) < total
}

// GetCurrentPage derives the 1-based page number from limit/offset
func GetCurrentPage(limit, offset int) int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return offset/limit + 1
}
