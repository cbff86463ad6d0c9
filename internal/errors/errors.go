// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (input, domain,
// arithmetic, configuration) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types carrying a cause implement Unwrap() to support errors.Is()
// and errors.As().
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between estimators.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorInput    = 5   // Indicates an unparseable or out-of-domain input.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ParseError is returned when the input text is not a valid finite decimal.
type ParseError struct {
	// Input is the raw text that failed to parse.
	Input string
	// Cause is the underlying parser error, if any.
	Cause error
}

// Error returns a descriptive message naming the rejected input.
func (e ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid decimal %q: %v", e.Input, e.Cause)
	}
	return fmt.Sprintf("invalid decimal %q", e.Input)
}

// Unwrap returns the underlying parser error.
func (e ParseError) Unwrap() error { return e.Cause }

// DomainError is returned for negative inputs: the square root is undefined
// in the real domain.
type DomainError struct {
	// Input is the textual form of the rejected value.
	Input string
}

// Error returns the error message for a DomainError.
func (e DomainError) Error() string {
	return fmt.Sprintf("square root of negative number %s is undefined in the real domain", e.Input)
}

// ArithmeticError wraps a failure of an underlying decimal operation
// (overflow, division by zero, invalid operation) under the configured
// precision.
type ArithmeticError struct {
	// Op names the operation that failed (e.g. "quo", "sqrt").
	Op string
	// Cause is the error reported by the decimal library.
	Cause error
}

// Error returns the error message for an ArithmeticError.
func (e ArithmeticError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("arithmetic error in %s", e.Op)
	}
	return fmt.Sprintf("arithmetic error in %s: %v", e.Op, e.Cause)
}

// Unwrap returns the decimal library error.
func (e ArithmeticError) Unwrap() error { return e.Cause }

// NewArithmeticError creates an ArithmeticError for the given operation. It
// returns nil when cause is nil so that call sites can wrap unconditionally.
func NewArithmeticError(op string, cause error) error {
	if cause == nil {
		return nil
	}
	return ArithmeticError{Op: op, Cause: cause}
}

// CalculationError encapsulates a calculation error while preserving the
// original cause.
type CalculationError struct {
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e CalculationError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsInputError reports whether err is a ParseError or a DomainError, i.e. a
// problem with the value the user supplied rather than with the computation.
func IsInputError(err error) bool {
	var parseErr ParseError
	var domainErr DomainError
	return errors.As(err, &parseErr) || errors.As(err, &domainErr)
}

// ValidationError represents an error due to invalid input validation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message describes why validation failed.
	Message string
	// Value is the invalid value (optional, may be nil).
	Value any
}

// Error returns the error message for a ValidationError.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}
