package usererrors

import (
	"net/http"

	"go-bms/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrEmailAlreadyRegistered = &apperror.AppError{
		Code:       apperror.CodeConflict,
		Message:    "A user with this email already exists",
		HTTPStatus: http.StatusConflict,
		Field:      "email",
	}

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
)
