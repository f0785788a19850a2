package employeeerrors

import (
	"net/http"

	"go-empdir/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	// ErrProfileNotFound covers principals without an employee record,
	// typically admins.
	ErrProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"No employee profile for this account",
		http.StatusNotFound,
	)
)
