package reports

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberguardng/cyberguard/pkg/common"
	"github.com/cyberguardng/cyberguard/pkg/pagination"
)

// Handler handles HTTP requests for community reports
type Handler struct {
	service *Service
}

// NewHandler creates a new reports handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit records a community report
// POST /api/v1/community/report
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to submit report")
		return
	}

	common.SuccessResponse(c, report)
}

// List returns reports, optionally filtered by status
// GET /api/v1/community/reports?status=pending
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.AppErrorResponse(c, common.NewBadRequestError("status must be Pending, Verified or Rejected"))
		return
	}
	params := pagination.ParseParams(c)

	all := h.service.ListByStatus(c.Request.Context(), q.Status)
	total := int64(len(all))

	start := params.Offset
	if start > len(all) {
		start = len(all)
	}
	end := start + params.Limit
	if end > len(all) {
		end = len(all)
	}

	meta := pagination.BuildMeta(params.Limit, params.Offset, total)
	common.SuccessResponseWithMeta(c, all[start:end], meta)
}

// Moderate transitions a pending report
// POST /api/v1/community/update-report
func (h *Handler) Moderate(c *gin.Context) {
	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.service.Moderate(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			common.AppErrorResponse(c, common.NewNotFoundError("report not found"))
		case errors.Is(err, ErrInvalidTransition):
			common.AppErrorResponse(c, common.NewBadRequestError("only pending reports can be moderated"))
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "failed to update report")
		}
		return
	}

	common.SuccessResponse(c, report)
}

// SubmitMobile records a lightweight mobile report
// POST /mobile/report
func (h *Handler) SubmitMobile(c *gin.Context) {
	var req MobileSubmitRequest
	if err := c.ShouldBind(&req); err != nil && c.ShouldBindQuery(&req) != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request")
		return
	}
	// Query parameters take precedence for bare POSTs from the app
	if req.Code == "" && req.Message == "" {
		req.Code = c.Query("code")
		req.Message = c.Query("message")
		if t := c.Query("report_type"); t != "" {
			req.Type = t
		}
	}

	report, err := h.service.SubmitMobile(c.Request.Context(), &req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to save report")
		return
	}

	common.SuccessResponse(c, gin.H{"status": "received", "id": report.ID})
}

// MobileStats returns headline numbers for the app dashboard
// GET /mobile/stats
func (h *Handler) MobileStats(c *gin.Context) {
	all := h.service.MobileReports(c.Request.Context(), 0)
	recent := h.service.MobileReports(c.Request.Context(), 5)
	if recent == nil {
		recent = []MobileReport{}
	}

	common.SuccessResponse(c, gin.H{
		"community_reports": h.service.Count(),
		"mobile_reports":    len(all),
		"recent":            recent,
	})
}
