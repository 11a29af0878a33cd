package companyerrors

import (
	"net/http"

	"go-bms/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrRegistrationNumberExists = &apperror.AppError{
		Code:       apperror.CodeConflict,
		Message:    "A company with this registration number already exists",
		HTTPStatus: http.StatusConflict,
		Field:      "registration_number",
	}

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
)
