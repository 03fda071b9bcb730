package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStatus = errors.New("invalid session status")
	ErrNotFound      = errors.New("record not found")
)

// ValidationError reports a required form field missing before a request
// is issued. These never reach the network.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field missing: %s", e.Field)
}

// ErrMissingField builds a ValidationError for a named field
func ErrMissingField(field string) error {
	return &ValidationError{Field: field}
}

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
