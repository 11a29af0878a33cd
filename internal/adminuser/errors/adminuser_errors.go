package adminusererrors

import (
	"net/http"

	"go-bms/internal/shared/apperror"
)

var (
	ErrAdminUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"Admin user not found",
		http.StatusNotFound,
	)

	ErrInvalidAdminUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid admin user ID",
		http.StatusBadRequest,
	)
)
