package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/yigit/academictwin/internal/app/models/dto"
)

// HandleBindError answers a request whose body or query failed to bind.
// Validator failures are listed per field.
func HandleBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := dto.NewValidationErrors()
		for _, fe := range verrs {
			fields.AddError(fe.Field(), formatValidationError(fe))
		}
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data").WithDetails(fields.Errors)
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}

// ParseIDParam reads a positive int64 path parameter. On failure it writes
// the error response and returns false.
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a positive number")
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min", "gte":
		return e.Field() + " must be at least " + e.Param()
	case "max", "lte":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "strategy":
		return e.Field() + " must be one of: spaced, mixed, cramming"
	case "objective":
		return e.Field() + " must be one of: maximize_gpa, minimize_burnout, balanced"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
