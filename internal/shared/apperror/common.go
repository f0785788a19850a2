package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

// RequiredField builds a field-keyed "is required" validation error.
func RequiredField(field string) *AppError {
	return NewValidation(map[string]string{
		field: fmt.Sprintf("%s is required", field),
	})
}

// InvalidField builds a field-keyed "is invalid" validation error.
func InvalidField(field string) *AppError {
	return NewValidation(map[string]string{
		field: fmt.Sprintf("%s is invalid", field),
	})
}
