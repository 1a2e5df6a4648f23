package premium

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cyberguardng/cyberguard/pkg/common"
)

// Handler exposes the premium subscription surface
type Handler struct {
	service *Service
}

// NewHandler creates a new premium handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// userID resolves the caller identity: a user_id query parameter for the
// mobile clients, "anonymous" otherwise
func userID(c *gin.Context) string {
	if id := c.Query("user_id"); id != "" {
		return id
	}
	return "anonymous"
}

// Status returns the caller's quota and subscription state
// GET /premium/status?user_id=
func (h *Handler) Status(c *gin.Context) {
	st, err := h.service.Status(c.Request.Context(), userID(c))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to load account")
		return
	}
	common.SuccessResponse(c, st)
}

// Upgrade activates a premium plan for the caller
// POST /premium/upgrade?user_id=
func (h *Handler) Upgrade(c *gin.Context) {
	var req UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	st, err := h.service.Upgrade(c.Request.Context(), userID(c), req.Plan)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "unknown plan")
		return
	}
	common.SuccessResponse(c, st)
}

// QuotaMiddleware spends one free check per scoring request when the
// paywall is enabled. Exceeded quotas are rejected with 403.
func QuotaMiddleware(service *Service, enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		st, err := service.Consume(c.Request.Context(), userID(c))
		if errors.Is(err, ErrQuotaExceeded) {
			common.AppErrorResponse(c, common.NewForbiddenError("daily free check limit reached, upgrade to premium"))
			c.Abort()
			return
		}
		if err != nil {
			common.ErrorResponse(c, http.StatusInternalServerError, "failed to check quota")
			c.Abort()
			return
		}
		if st.ChecksRemaining >= 0 {
			c.Header("X-Checks-Remaining", strconv.Itoa(st.ChecksRemaining))
		}
		c.Next()
	}
}
