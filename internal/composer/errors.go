package composer

import (
	"errors"
	"fmt"
)

// Sentinel errors for request validation
var (
	ErrInvalidBarCount = errors.New("bar count must be positive")
	ErrEmptyScale      = errors.New("scale has no intervals")
	ErrInvalidTempo    = errors.New("tempo must be positive")
	ErrInvalidRoot     = errors.New("root note outside MIDI range")
)

// ValidationError wraps a sentinel with the offending field and value.
type ValidationError struct {
	Field string
	Value any
	Cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %v", e.Field, e.Value, e.Cause)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func newValidationError(field string, value any, cause error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Cause: cause}
}
