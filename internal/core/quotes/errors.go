package quotes

import (
	"errors"
	"fmt"
)

// Sentinel errors for quote operations
var (
	// ErrQuoteNotFound is returned when the referenced quote doesn't exist
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrNotQuoteOwner is returned when a delete is attempted by anyone other
	// than the quote's owner. Unowned quotes cannot be deleted.
	ErrNotQuoteOwner = errors.New("not the quote owner")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
