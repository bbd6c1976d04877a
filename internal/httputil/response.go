// Package httputil provides the JSON error envelope and query helpers shared by the gin
// handlers.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/stockpay/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type errorMapping struct {
	sentinel error
	status   int
	code     string
}

// Checked in order; a domain error wraps exactly one of these.
var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found"},
	{apperrors.ErrConflict, http.StatusConflict, "conflict"},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input"},
	{apperrors.ErrServiceUnavailable, http.StatusServiceUnavailable, "service_unavailable"},
	{apperrors.ErrBadGateway, http.StatusBadGateway, "bad_gateway"},
}

// statusFor returns the HTTP status and error code of err. Unknown errors are 500.
func statusFor(err error) (int, string) {
	for _, mapping := range errorMappings {
		if apperrors.Is(err, mapping.sentinel) {
			return mapping.status, mapping.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

// HandleErrorGin writes err as an ErrorResponse.
//
// Mapped errors carry their message so callers can tell an already processed payment from
// an out-of-stock order or an unreachable collaborator. Unknown errors are reported as 500
// without details.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	status, code := statusFor(err)
	response := ErrorResponse{Error: code, Message: err.Error()}
	if status == http.StatusInternalServerError {
		response.Message = "An internal error occurred"
	}

	if logger != nil {
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.LogAttrs(c, level, "request failed",
			slog.Int("status_code", status),
			slog.String("error_code", code),
			slog.Any("error", err),
		)
	}

	c.JSON(status, response)
}

// HandleBadRequestGin writes a 400 response for a body that could not be decoded.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}

// HandleValidationErrorGin writes a 422 response for a request that failed validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
