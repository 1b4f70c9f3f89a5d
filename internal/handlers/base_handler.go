package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jjss-seva/registration-service/internal/services"
	"github.com/jjss-seva/registration-service/internal/utils"
	"github.com/jjss-seva/registration-service/internal/validator"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse wraps payloads that have no natural top-level shape.
type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler carries shared helpers for all handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs an incoming request with its request-scoped logger.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

// handleServiceError maps service errors onto HTTP status codes. Field
// validation errors carry their per-field detail list.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrs,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrRegistrationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Registration not found"})
	case errors.Is(err, services.ErrPhotoRequired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Photo is required"})
	case errors.Is(err, services.ErrPhotoTooLarge):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Photo exceeds the 2 MiB limit"})
	case errors.Is(err, services.ErrPhotoUnsupported):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Photo must be a JPEG or PNG image"})
	case errors.Is(err, services.ErrInvalidCoordinates):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Coordinates out of range"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid password"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Session is missing or expired"})
	case errors.Is(err, services.ErrPhotoUploadFailed),
		errors.Is(err, services.ErrSubmissionFailed),
		errors.Is(err, services.ErrApplicationIDExhausted):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Message: "Submission could not be completed, please try again",
		})
	default:
		utils.FromContext(c, h.logger).Error("unhandled service error", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}
