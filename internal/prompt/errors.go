package prompt

import (
	"errors"
	"fmt"
)

// LogicError reports a broken contract between a prompt and its
// configuration or option source. It is never caused by user input and is
// never retried.
type LogicError struct {
	Message string
}

// Error implements the error interface
func (e *LogicError) Error() string {
	return "prompt: " + e.Message
}

var (
	// ErrNoOptions is returned when a choice prompt is asked with an empty
	// option source.
	ErrNoOptions = &LogicError{Message: "no options to choose from"}

	// ErrIndexOutOfRange is returned when an option source cannot resolve an
	// index the navigator produced.
	ErrIndexOutOfRange = &LogicError{Message: "index out of range"}
)

// IsLogicError checks if an error is a LogicError
func IsLogicError(err error) bool {
	var le *LogicError
	return errors.As(err, &le)
}

// ValidationError is returned by validators. Prompts render its message
// inline and keep editing; it never escapes Ask.
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// Invalidf creates a validation error with a formatted message
func Invalidf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
