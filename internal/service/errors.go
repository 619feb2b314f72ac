package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials deliberately conflates "no such user" and
	// "wrong password" so login failures can't be used to enumerate
	// accounts.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrUnauthenticated covers every token failure mode uniformly:
	// missing, malformed, bad signature, expired, or referencing a user
	// that no longer exists.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden means authenticated but not an admin.
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyExists reports a username or email collision without
	// revealing which field collided.
	ErrAlreadyExists = errors.New("already_exists")

	// ErrNotFound reports a lookup miss on an id.
	ErrNotFound = errors.New("not_found")
)

// ValidationError reports malformed input shape, caught before anything
// touches storage.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Reason)
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
