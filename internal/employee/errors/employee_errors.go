package employeeerrors

import (
	"net/http"

	"go-bms/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	// Target company absent, or outside the actor's tenant. Surfaced as
	// an input validation failure on the creation payload.
	ErrCompanyNotFound = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "Company not found",
		HTTPStatus: http.StatusBadRequest,
		Field:      "company_id",
	}

	ErrDepartmentNotFound = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "Department not found in this company",
		HTTPStatus: http.StatusBadRequest,
		Field:      "department_id",
	}

	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee number already exists in this company",
		http.StatusConflict,
	)

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
)
