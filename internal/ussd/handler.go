package ussd

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cyberguardng/cyberguard/pkg/common"
	"github.com/cyberguardng/cyberguard/pkg/middleware"
)

// Checker is the service surface the handler depends on
type Checker interface {
	Check(ctx context.Context, code string, fullMode bool) *CheckResult
	CheckEnhanced(ctx context.Context, code string, fullMode bool) (*EnhancedResult, error)
	MobileCheck(ctx context.Context, code string) *MobileCheckResult
}

// Handler handles HTTP requests for USSD checks
type Handler struct {
	service Checker
}

// NewHandler creates a new USSD handler
func NewHandler(service Checker) *Handler {
	return &Handler{service: service}
}

// CheckUSSD scores a USSD code
// GET /api/v1/check-ussd?code=*901#&full_mode=false
func (h *Handler) CheckUSSD(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "USSD code required")
		return
	}
	fullMode, _ := strconv.ParseBool(c.DefaultQuery("full_mode", "false"))

	result := h.service.Check(c.Request.Context(), code, fullMode)
	middleware.CountVerdict("ussd", !result.Safe)

	common.SuccessResponse(c, result)
}

// CheckUSSDEnhanced scores a USSD code with registry verification
// GET /api/v1/check-ussd-enhanced?code=*901#
func (h *Handler) CheckUSSDEnhanced(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "USSD code required")
		return
	}
	fullMode, _ := strconv.ParseBool(c.DefaultQuery("full_mode", "false"))

	result, err := h.service.CheckEnhanced(c.Request.Context(), code, fullMode)
	if err != nil {
		if errors.Is(err, ErrEnhancedDisabled) {
			common.AppErrorResponse(c, common.NewServiceUnavailableError("enhanced verification not available"))
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to check code")
		return
	}
	middleware.CountVerdict("ussd", !result.Safe)

	common.SuccessResponse(c, result)
}

// MobileCheck is the trimmed fast check for the mobile app
// GET /mobile/check?code=*901#
func (h *Handler) MobileCheck(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "USSD code required")
		return
	}

	common.SuccessResponse(c, h.service.MobileCheck(c.Request.Context(), code))
}
