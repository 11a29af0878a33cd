package departmenterrors

import (
	"net/http"

	"go-bms/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)

	ErrDepartmentAlreadyExists = &apperror.AppError{
		Code:       apperror.CodeConflict,
		Message:    "A department with this name already exists in the company",
		HTTPStatus: http.StatusConflict,
		Field:      "name",
	}

	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID",
		http.StatusBadRequest,
	)
)
