package candidateerrors

import (
	"net/http"
	"strings"

	"hrm-core/internal/shared/apperror"
)

var (
	ErrCandidateNotFound = apperror.New(
		apperror.CodeNotFound,
		"Candidate not found",
		http.StatusNotFound,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid candidate status",
		http.StatusBadRequest,
	)
	ErrCandidateCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Candidate code already exists",
		http.StatusConflict,
	)
	// ErrPromotionFailed is the generic rollback signal: nothing was
	// persisted, retrying is safe.
	ErrPromotionFailed = apperror.New(
		apperror.CodeTransactionFailure,
		"Promotion failed, no changes were applied. The request can be safely retried.",
		http.StatusInternalServerError,
	)
	ErrCandidateAlreadyPromoted = apperror.New(
		apperror.CodeConflict,
		"Candidate has already been promoted",
		http.StatusConflict,
	)
)

// MissingFields enumerates missing required promotion fields verbatim.
func MissingFields(fields []string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		"Missing required fields: "+strings.Join(fields, ", "),
		http.StatusBadRequest,
	)
}
