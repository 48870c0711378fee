package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/gradesphere/gradesphere/internal/app/models/dto"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to HTTP responses. Every handler funnels
// its errors through here so status codes stay consistent per error family.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotAuthenticated):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")
	// Disabled accounts report the same body as bad credentials.
	case apperrors.Is(err, apperrors.ErrInvalidCredentials, apperrors.ErrAccountDisabled):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrWebhookSignature):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidSignature, "Webhook signature verification failed")

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrStudentNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found")
	case errors.Is(err, apperrors.ErrCourseNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found")
	case errors.Is(err, apperrors.ErrGradeNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Grade not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrCourseCodeExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Course with this code already exists")
	case errors.Is(err, apperrors.ErrGradeAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "A grade already exists for this student and course")
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Conflict")

	case errors.Is(err, apperrors.ErrGradeOutOfRange):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Grade must be between 0 and 20")
	case errors.Is(err, apperrors.ErrInvalidRole):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid role")
	case errors.Is(err, apperrors.ErrInvalidEmail):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid email format")
	case errors.Is(err, apperrors.ErrInvalidPassword):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error())
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed")

	default:
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// HandleValidationError reports a request binding failure with field context
func HandleValidationError(c *gin.Context, err error) {
	details := err.Error()

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		messages := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			messages = append(messages, formatFieldError(fe))
		}
		details = strings.Join(messages, "; ")
	}

	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").
		WithDetails(details)
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}

// formatFieldError turns one binding failure into a human-readable message
func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " failed " + e.Tag() + " validation"
	}
}
