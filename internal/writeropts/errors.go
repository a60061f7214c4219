package writeropts

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingValue indicates a required option was set to nil
	ErrMissingValue = errors.New("required value missing")
	// ErrOverflow indicates a byte count does not fit in a 32-bit signed integer
	ErrOverflow = errors.New("arithmetic overflow")
	// ErrInvalidDataSize indicates a size expression could not be parsed
	ErrInvalidDataSize = errors.New("invalid data size")
	// ErrInvalidWriterVersion indicates an unknown writer version name
	ErrInvalidWriterVersion = errors.New("invalid writer version")
)

// ValidationError reports which option failed to build and why.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error on field '%s' (value: %v): %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(field string, value interface{}, err error, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message, Err: err}
}
