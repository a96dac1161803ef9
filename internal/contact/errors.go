package contact

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("invalid contact")

// ValidationError describes the first rule a contact violates.
type ValidationError struct {
	Field  string // "name" or "phone"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// IsValidation reports whether err carries a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
