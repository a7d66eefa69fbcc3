package attendanceerrors

import (
	"net/http"

	"hrm-core/internal/shared/apperror"
)

// Token rejections are all TOKEN_INVALID with a specific reason string, so
// the scanning station can show why a scan was refused. None of them is
// retryable with the same token.
var (
	ErrTokenMalformed = apperror.New(
		apperror.CodeTokenInvalid,
		"malformed token",
		http.StatusBadRequest,
	)
	ErrTokenSignature = apperror.New(
		apperror.CodeTokenInvalid,
		"invalid token signature",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeTokenInvalid,
		"expired token",
		http.StatusUnauthorized,
	)
	ErrUnknownEmployee = apperror.New(
		apperror.CodeNotFound,
		"unknown or inactive employee",
		http.StatusNotFound,
	)
)
