package updater

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberguardng/cyberguard/pkg/common"
)

// Handler exposes the admin update surface
type Handler struct {
	service *Service
}

// NewHandler creates a new updater handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SyncUSSD merges the curated database into the safe list
// POST /admin/sync-ussd
func (h *Handler) SyncUSSD(c *gin.Context) {
	stats, err := h.service.UpdateFromCurated(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "sync failed")
		return
	}
	common.SuccessResponse(c, stats)
}

// UpdateSafeCodes runs a safe-list update
// POST /admin/update-safe-codes?mode=auto|force|curated
func (h *Handler) UpdateSafeCodes(c *gin.Context) {
	var (
		stats *UpdateStats
		err   error
	)

	switch c.DefaultQuery("mode", "auto") {
	case "force":
		stats, err = h.service.Update(c.Request.Context(), true)
	case "curated":
		stats, err = h.service.UpdateFromCurated(c.Request.Context())
	case "auto":
		stats, err = h.service.Update(c.Request.Context(), false)
	default:
		common.ErrorResponse(c, http.StatusBadRequest, "unknown update mode")
		return
	}

	if err != nil {
		if errors.Is(err, ErrTooSoon) {
			common.SuccessResponse(c, gin.H{
				"updated": false,
				"message": "Update skipped: last run is within the update interval",
			})
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "update failed")
		return
	}

	common.SuccessResponse(c, stats)
}

// Stats returns the stats of the last update run
// GET /admin/update-stats
func (h *Handler) Stats(c *gin.Context) {
	common.SuccessResponse(c, h.service.Stats())
}

type addSourceRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// AddSource registers a manual source URL
// POST /admin/add-source
func (h *Handler) AddSource(c *gin.Context) {
	var req addSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.AddManualSource(req.URL); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid source URL")
		return
	}

	common.SuccessResponse(c, gin.H{"message": "Source added"})
}

// ListSources returns the registered manual source URLs
// GET /admin/list-sources
func (h *Handler) ListSources(c *gin.Context) {
	sources := h.service.ManualSources()
	if sources == nil {
		sources = []string{}
	}
	common.SuccessResponse(c, gin.H{"sources": sources})
}
