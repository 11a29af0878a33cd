package autherrors

import (
	"net/http"

	"go-bms/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = &apperror.AppError{
		Code:       apperror.CodeUnauthorized,
		Message:    "invalid email or password",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrAccountDeactivated = &apperror.AppError{
		Code:       apperror.CodeUnauthorized,
		Message:    "account is deactivated",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrInvalidToken = &apperror.AppError{
		Code:       apperror.CodeUnauthorized,
		Message:    "invalid token",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrTokenExpired = &apperror.AppError{
		Code:       apperror.CodeUnauthorized,
		Message:    "token has expired",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrInvalidRefreshToken = &apperror.AppError{
		Code:       apperror.CodeUnauthorized,
		Message:    "invalid refresh token",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrUserNotFound = &apperror.AppError{
		Code:       apperror.CodeNotFound,
		Message:    "user not found",
		HTTPStatus: http.StatusNotFound,
	}

	ErrPasswordMismatch = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "password fields didn't match",
		HTTPStatus: http.StatusBadRequest,
		Field:      "password",
	}

	ErrTokenGenerationFailed = &apperror.AppError{
		Code:       apperror.CodeInternalError,
		Message:    "failed to generate token",
		HTTPStatus: http.StatusInternalServerError,
	}
)
