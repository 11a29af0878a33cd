package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to perform this action",
		http.StatusForbidden,
	)

	ErrNoCompanyLinked = New(
		CodeNoCompanyLinked,
		"No company is linked to this account",
		http.StatusUnprocessableEntity,
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

// RequiredField builds the field-tagged error for a missing input.
func RequiredField(field string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    field + " is required",
		HTTPStatus: http.StatusBadRequest,
		Field:      field,
	}
}

// InvalidField builds the field-tagged error for a malformed input.
func InvalidField(field string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    field + " is invalid",
		HTTPStatus: http.StatusBadRequest,
		Field:      field,
	}
}
