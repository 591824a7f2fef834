package services

import (
	"errors"
	"fmt"
)

// ErrNotFound covers a referenced routine/client/catalog entry that is
// absent or not owned by the caller. Handlers map it to 404 before any
// write happens.
var ErrNotFound = errors.New("not found")

// ValidationError is surfaced before any mutation occurs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
