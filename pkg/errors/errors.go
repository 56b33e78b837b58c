package errors

import (
	"fmt"
	"net/http"
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string, details ...string) *AppError {
	var detail string
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Code:    code,
		Message: message,
		Details: detail,
	}
}

func NewValidationError(message string, details ...string) *AppError {
	return NewAppError(http.StatusBadRequest, message, details...)
}

func NewNotFoundError(resource string) *AppError {
	return NewAppError(http.StatusNotFound, fmt.Sprintf("%s not found", resource))
}

func NewInternalError(message string, details ...string) *AppError {
	return NewAppError(http.StatusInternalServerError, message, details...)
}

var (
	ErrMissingUserID     = NewValidationError("user_id is required")
	ErrInvalidUserID     = NewValidationError("invalid user_id")
	ErrUserNotFound      = NewNotFoundError("user")
	ErrPortfolioNotFound = NewNotFoundError("portfolio")
)
