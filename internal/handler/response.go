package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet/internal/domain"
	"wallet/internal/form"
	"wallet/internal/middleware"
	"wallet/internal/repository"
	"wallet/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// sessionFromContext reads the session placed there by the session middleware.
func sessionFromContext(c *gin.Context) (domain.Session, bool) {
	v, ok := c.Get(middleware.SessionContextKey)
	if !ok {
		return domain.Session{}, false
	}
	session, ok := v.(domain.Session)
	return session, ok
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrRecipientNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, form.ErrMissingField),
		errors.Is(err, form.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidCardNumber),
		errors.Is(err, service.ErrMissingSignupField),
		errors.Is(err, service.ErrOperatorMismatch),
		errors.Is(err, service.ErrUnknownOperationKind):
		return http.StatusBadRequest

	// Auth errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrSessionNotFound):
		return http.StatusUnauthorized

	// Conflict errors
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrOperationInFlight):
		return http.StatusConflict

	// Business rule errors
	case errors.Is(err, service.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity

	// The mock never declines, but a wired processor may.
	case errors.Is(err, service.ErrProcessorDeclined):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
