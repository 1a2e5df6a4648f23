package sms

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberguardng/cyberguard/pkg/common"
	"github.com/cyberguardng/cyberguard/pkg/middleware"
)

// Handler handles HTTP requests for SMS scoring
type Handler struct{}

// NewHandler creates a new SMS handler
func NewHandler() *Handler {
	return &Handler{}
}

// CheckSMS scores a message for scam indicators
// GET /api/v1/check-sms-scam?content=...
func (h *Handler) CheckSMS(c *gin.Context) {
	content := c.Query("content")
	if content == "" {
		content = c.Query("sms")
	}
	if content == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "message content required")
		return
	}

	result := Score(content)
	middleware.CountVerdict("sms", result.Scam)

	common.SuccessResponse(c, result)
}
