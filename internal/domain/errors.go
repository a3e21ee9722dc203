package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a user, role, post or comment
	// lookup by key matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when the storage layer reports a
	// uniqueness violation (email, username, follow edge). It is an
	// expected, recoverable outcome, never fatal.
	ErrConflict = errors.New("conflict")

	// ErrSelfUnfollow is returned when a user attempts to remove
	// their own self-follow edge, which would break the feed
	// invariant.
	ErrSelfUnfollow = errors.New("cannot unfollow yourself")

	// ErrPermissionDenied is returned when the acting user's role
	// lacks the permission an operation requires.
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError reports a malformed or missing required field on
// content deserialization.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Msg)
}
