package curation

import (
	"time"

	"github.com/google/uuid"
)

// CuratedCode is an admin-vetted USSD code with its provenance
type CuratedCode struct {
	Code        string    `json:"code"`
	Type        string    `json:"type"`
	Provider    string    `json:"provider"`
	Description string    `json:"description"`
	Reference   string    `json:"reference"`
	AddedBy     string    `json:"added_by"`
	Timestamp   time.Time `json:"timestamp"`
	Verified    bool      `json:"verified"`
}

// Stats summarizes the curated database
type Stats struct {
	TotalCodes     int `json:"total_codes"`
	VerifiedCodes  int `json:"verified_codes"`
	BankCodes      int `json:"bank_codes"`
	PendingReports int `json:"pending_reports"`
}

// AddRequest is the single-code curation payload
type AddRequest struct {
	Code        string `json:"code" binding:"required,ussd_code"`
	Type        string `json:"type" binding:"required"`
	Provider    string `json:"provider" binding:"required"`
	Description string `json:"description"`
	Reference   string `json:"reference"`
}

// BulkAddRequest carries multiple codes; incomplete entries get defaults
type BulkAddRequest struct {
	Codes []BulkEntry `json:"codes" binding:"required,min=1"`
}

// BulkEntry is one code in a bulk import
type BulkEntry struct {
	Code        string `json:"code" binding:"required"`
	Type        string `json:"type"`
	Provider    string `json:"provider"`
	Description string `json:"description"`
}

// ReportActionRequest identifies a community report for approval/rejection
type ReportActionRequest struct {
	ID uuid.UUID `json:"id" binding:"required"`
}

// DeleteRequest identifies a curated code by exact match
type DeleteRequest struct {
	Code string `json:"code" binding:"required"`
}
