package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"
	CodeTokenInvalid = "TOKEN_INVALID"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeTransactionFailure = "TRANSACTION_FAILURE"
)
