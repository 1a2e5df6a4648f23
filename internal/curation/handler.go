package curation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberguardng/cyberguard/internal/reports"
	"github.com/cyberguardng/cyberguard/pkg/common"
	"github.com/cyberguardng/cyberguard/pkg/middleware"
)

// Handler handles HTTP requests for the curation surface
type Handler struct {
	service *Service
}

// NewHandler creates a new curation handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Stats returns curation statistics
// GET /api/v1/curation/stats
func (h *Handler) Stats(c *gin.Context) {
	common.SuccessResponse(c, h.service.Stats(c.Request.Context()))
}

// List returns all curated codes
// GET /api/v1/curation/codes
func (h *Handler) List(c *gin.Context) {
	common.SuccessResponse(c, h.service.List(c.Request.Context()))
}

// Pending returns pending USSD reports awaiting curation
// GET /api/v1/curation/pending
func (h *Handler) Pending(c *gin.Context) {
	common.SuccessResponse(c, h.service.PendingReports(c.Request.Context()))
}

// Add curates a single code
// POST /api/v1/curation/add
func (h *Handler) Add(c *gin.Context) {
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	addedBy := curatorName(c)
	code, err := h.service.Add(c.Request.Context(), &req, addedBy)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			common.AppErrorResponse(c, common.NewBadRequestError("code already exists in database"))
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to add code")
		return
	}

	common.SuccessResponse(c, code)
}

// BulkAdd curates multiple codes
// POST /api/v1/curation/bulk-add
func (h *Handler) BulkAdd(c *gin.Context) {
	var req BulkAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	added, err := h.service.BulkAdd(c.Request.Context(), &req, curatorName(c))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to add codes")
		return
	}

	common.SuccessResponse(c, gin.H{"message": fmt.Sprintf("Added %d new codes", added)})
}

// ApproveReport promotes a community report into the curated database
// POST /api/v1/curation/approve-report
func (h *Handler) ApproveReport(c *gin.Context) {
	var req ReportActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.ApproveReport(c.Request.Context(), req.ID); err != nil {
		switch {
		case errors.Is(err, reports.ErrNotFound):
			common.AppErrorResponse(c, common.NewNotFoundError("report not found"))
		case errors.Is(err, ErrNotUSSDReport):
			common.AppErrorResponse(c, common.NewBadRequestError("not a USSD report"))
		case errors.Is(err, reports.ErrInvalidTransition):
			common.AppErrorResponse(c, common.NewBadRequestError("report already moderated"))
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "failed to approve report")
		}
		return
	}

	common.SuccessResponse(c, gin.H{"message": "Report approved and code added to database"})
}

// RejectReport marks a community report Rejected
// POST /api/v1/curation/reject-report
func (h *Handler) RejectReport(c *gin.Context) {
	var req ReportActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.RejectReport(c.Request.Context(), req.ID); err != nil {
		switch {
		case errors.Is(err, reports.ErrNotFound):
			common.AppErrorResponse(c, common.NewNotFoundError("report not found"))
		case errors.Is(err, reports.ErrInvalidTransition):
			common.AppErrorResponse(c, common.NewBadRequestError("report already moderated"))
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "failed to reject report")
		}
		return
	}

	common.SuccessResponse(c, gin.H{"message": "Report rejected"})
}

// Delete removes a curated code by exact match
// DELETE /api/v1/curation/delete
func (h *Handler) Delete(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.Code); err != nil {
		if errors.Is(err, ErrNotFound) {
			common.AppErrorResponse(c, common.NewNotFoundError("code not found in database"))
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to delete code")
		return
	}

	common.SuccessResponse(c, gin.H{"message": fmt.Sprintf("Code %s deleted successfully", req.Code)})
}

// Export downloads the curated database
// GET /api/v1/curation/export?format=json|csv|txt
func (h *Handler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	content, mediaType, err := h.service.Export(c.Request.Context(), format)
	if err != nil {
		common.AppErrorResponse(c, common.NewBadRequestError("unsupported format"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=ussd-codes.%s", format))
	c.Data(http.StatusOK, mediaType, content)
}

func curatorName(c *gin.Context) string {
	if id, ok := middleware.GetUserID(c); ok {
		return id
	}
	return "admin"
}
