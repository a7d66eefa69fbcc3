package lookuperrors

import (
	"net/http"

	"hrm-core/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)
	ErrJobTitleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Job title not found",
		http.StatusNotFound,
	)
)
