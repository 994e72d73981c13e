package server

const (
	// Validation (1xxx)
	ErrCodeInvalidArgument = 1000
	ErrCodeInvalidJSON     = 1001
	ErrCodeRequestTooLarge = 1002
	ErrCodeInvalidQuery    = 1003
	ErrCodeInvalidID       = 1004
	ErrCodeEmptyName       = 1005
	ErrCodeInvalidKind     = 1006
	ErrCodeMissingRequired = 1007

	// Domain state (2xxx)
	ErrCodeDocumentNotFound = 2001
	ErrCodeEmptyDocument    = 2002
	ErrCodeCorruptPayload   = 2003
	ErrCodeConflict         = 2101

	// Auth & limits (3xxx)
	ErrCodeUnauthorized      = 3001
	ErrCodeForbidden         = 3002
	ErrCodeResourceExhausted = 3003

	// Internal/system (4xxx)
	ErrCodeInternal        = 4001
	ErrCodeStoreFailure    = 4002
	ErrCodeUpstreamFailure = 4003
	ErrCodeNotImplemented  = 4004
)

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 401:
		return ErrCodeUnauthorized
	case 403:
		return ErrCodeForbidden
	case 404:
		return ErrCodeDocumentNotFound
	case 409:
		return ErrCodeConflict
	case 429:
		return ErrCodeResourceExhausted
	case 500:
		return ErrCodeInternal
	case 501:
		return ErrCodeNotImplemented
	case 502:
		return ErrCodeUpstreamFailure
	default:
		return 0
	}
}
