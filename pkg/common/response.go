package common

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberguardng/cyberguard/pkg/pagination"
)

// Response is the standard JSON envelope for successful responses
type Response struct {
	Success bool             `json:"success"`
	Data    interface{}      `json:"data,omitempty"`
	Meta    *pagination.Meta `json:"meta,omitempty"`
}

// ErrorBody is the standard JSON envelope for error responses
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// AppError is a service-level error carrying an HTTP status
type AppError struct {
	Code    string
	Message string
	Status  int
}

// Error implements the error interface
func (e *AppError) Error() string {
	return e.Message
}

// NewAppError creates an AppError with an explicit status
func NewAppError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, Status: status}
}

// NewBadRequestError creates a 400 AppError
func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "bad_request", message)
}

// NewNotFoundError creates a 404 AppError
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, "not_found", message)
}

// NewForbiddenError creates a 403 AppError
func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, "forbidden", message)
}

// NewServiceUnavailableError creates a 503 AppError
func NewServiceUnavailableError(message string) *AppError {
	return NewAppError(http.StatusServiceUnavailable, "service_unavailable", message)
}

// SuccessResponse sends a 200 response with the standard envelope
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// SuccessResponseWithMeta sends a 200 response with pagination metadata
func SuccessResponseWithMeta(c *gin.Context, data interface{}, meta *pagination.Meta) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Meta: meta})
}

// ErrorResponse sends an error response with the given status and message
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Success: false, Error: message})
}

// AppErrorResponse sends an error response derived from an AppError
func AppErrorResponse(c *gin.Context, err *AppError) {
	status := err.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, ErrorBody{Success: false, Error: err.Message, Code: err.Code})
}
