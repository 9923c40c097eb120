package usecase

import "errors"

// Error taxonomy. The sentinel text doubles as the wire error code; services
// wrap these with detail (e.g. "missing_field: course_id, session_id") and
// handlers match with errors.Is. Nothing escapes past the boundary unwrapped.
var (
	ErrMissingField       = errors.New("missing_field")
	ErrTokenInvalid       = errors.New("token_invalid")
	ErrTokenExpired       = errors.New("token_expired")
	ErrAlreadyCheckedIn   = errors.New("already_checked_in")
	ErrStorageUnavailable = errors.New("storage_unavailable")
)
