// Package apperr defines the error taxonomy shared by the stores, the
// resolver and the HTTP layer. Every failure a handler can return wraps
// exactly one of the sentinel kinds below; the transport maps kinds to
// status codes without leaking internal store errors.
package apperr

import (
	"errors"
	"fmt"
)

// Sentinel error kinds.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation")
)

// Unauthenticated returns an error of kind ErrUnauthenticated with a
// human-readable reason.
func Unauthenticated(reason string) error {
	return fmt.Errorf("%w: %s", ErrUnauthenticated, reason)
}

// Forbidden returns an error of kind ErrForbidden.
func Forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}

// NotFound returns an error of kind ErrNotFound.
func NotFound(reason string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, reason)
}

// Conflict returns an error of kind ErrConflict.
func Conflict(reason string) error {
	return fmt.Errorf("%w: %s", ErrConflict, reason)
}

// Validation returns an error of kind ErrValidation.
func Validation(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}
