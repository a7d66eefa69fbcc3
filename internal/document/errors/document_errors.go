package documenterrors

import (
	"net/http"

	"hrm-core/internal/shared/apperror"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found",
		http.StatusNotFound,
	)
	ErrOwnerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document owner not found",
		http.StatusNotFound,
	)
)
