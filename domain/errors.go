package domain

import (
	"errors"
	"fmt"
)

// Category sentinels. Feature errors wrap exactly one of these so the
// presentation layer can pick an HTTP status with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("already exists")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

// NewValidationError builds a field-level validation error.
func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, message)
}
