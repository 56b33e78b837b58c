package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	apperrors "advisory-api/pkg/errors"
)

// respondError maps service errors to HTTP responses. Application errors keep
// their own status codes, binding failures become 400 with readable field
// messages, and anything else is a 500 with the detail kept out of the body.
func respondError(ctx *gin.Context, logger *logrus.Logger, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		ctx.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": formatValidationErrors(validationErrs)})
		return
	}

	logger.Errorf("Unhandled error on %s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// respondBindError handles ShouldBindJSON failures, which are validation
// errors for well-formed JSON and generic 400s for malformed bodies
func respondBindError(ctx *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": formatValidationErrors(validationErrs)})
		return
	}

	ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

func formatValidationErrors(errs validator.ValidationErrors) string {
	messages := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		messages = append(messages, formatFieldError(fieldErr))
	}
	return strings.Join(messages, "; ")
}

func formatFieldError(fieldErr validator.FieldError) string {
	field := strings.ToLower(fieldErr.Field())

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fieldErr.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fieldErr.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
