package lotto

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks parameters or data that violate a stated bound
	ErrInvalidInput = errors.New("invalid input")

	// ErrDataUnavailable is returned when no draw history could be obtained
	ErrDataUnavailable = errors.New("draw history unavailable")

	// ErrInsufficientBase is returned when a candidate base cannot form a game
	ErrInsufficientBase = errors.New("candidate base has fewer than 15 numbers")
)

// ValidationError names the parameter and the bound it violated
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

// Invalid creates a ValidationError with a formatted reason
func Invalid(field string, value any, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s (got %v)", e.Field, e.Reason, e.Value)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match validation failures
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
