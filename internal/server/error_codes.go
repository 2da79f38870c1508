package server

const (
	// Validation (1xxx)
	ErrCodeInvalidArgument    = 1000
	ErrCodeInvalidJSON        = 1001
	ErrCodeRequestTooLarge    = 1002
	ErrCodeInvalidQuery       = 1003
	ErrCodeInvalidID          = 1004
	ErrCodeInvalidStatus      = 1005
	ErrCodeInvalidPriority    = 1006
	ErrCodeInvalidTagName     = 1007
	ErrCodeMissingRequired    = 1008
	ErrCodeInvalidDueDate     = 1009
	ErrCodeInvalidMetadata    = 1010
	ErrCodeInvalidSearchQuery = 1011
	ErrCodeMethodNotAllowed   = 1012

	// Domain state (2xxx)
	ErrCodeNotFound     = 2000
	ErrCodeListNotFound = 2001
	ErrCodeItemNotFound = 2002
	ErrCodeConflict     = 2102
	ErrCodeListNotEmpty = 2103

	// Limits (3xxx)
	ErrCodeResourceExhausted = 3003

	// Internal/system (4xxx)
	ErrCodeInternal     = 4001
	ErrCodeStoreFailure = 4002
)

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 404:
		return ErrCodeNotFound
	case 405:
		return ErrCodeMethodNotAllowed
	case 409:
		return ErrCodeConflict
	case 429:
		return ErrCodeResourceExhausted
	case 500:
		return ErrCodeInternal
	default:
		return 0
	}
}
