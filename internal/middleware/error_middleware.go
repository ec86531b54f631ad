package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/academictwin/internal/app/models/dto"
	"github.com/yigit/academictwin/internal/pkg/apperrors"
	"github.com/yigit/academictwin/internal/pkg/logger"
	"github.com/yigit/academictwin/internal/simulation"
)

// apiError is one row of the error table below.
type apiError struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// Order matters: wrapped errors can match more than one row, and the first
// match wins.
var apiErrors = []apiError{
	{simulation.ErrNoCoursesSelected, http.StatusBadRequest, dto.ErrorCodeNoCourses, simulation.ErrNoCoursesSelected.Error()},
	{apperrors.ErrNoCoursesEnrolled, http.StatusBadRequest, dto.ErrorCodeNoCourses, "Student has no courses. Add at least one course before running a simulation."},
	{apperrors.ErrBatchTooLarge, http.StatusBadRequest, dto.ErrorCodeBatchTooLarge, "Too many scenarios in batch"},
	{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found."},
	{apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found."},
	{apperrors.ErrSimulationNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Simulation not found."},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeResourceInvalid, "Conflict"},
	{apperrors.ErrInvalidEmail, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid email"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Bad request"},
	{apperrors.ErrTooManyRequests, http.StatusTooManyRequests, dto.ErrorCodeTooManyRequests, "Too many requests"},
	{context.DeadlineExceeded, http.StatusServiceUnavailable, dto.ErrorCodeInternalServer, "Request timed out"},
}

// HandleAPIError writes the response for err and aborts the chain.
func HandleAPIError(c *gin.Context, err error) {
	for _, e := range apiErrors {
		if !errors.Is(err, e.target) {
			continue
		}
		detail := dto.NewErrorDetail(e.code, e.message)
		if e.status == http.StatusBadRequest || e.status == http.StatusConflict || e.status == http.StatusForbidden {
			detail = detail.WithDetails(errorMessage(err))
		}
		c.AbortWithStatusJSON(e.status, dto.NewErrorResponse(detail))
		return
	}

	logger.Error().Err(err).
		Str("path", c.FullPath()).
		Str("requestID", c.GetString(RequestIDKey)).
		Msg("Unhandled API error")

	detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	if gin.Mode() != gin.ReleaseMode {
		detail = detail.WithDebugInfo("%v", err)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
}

func errorMessage(err error) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return err.Error()
}
