// Package apperrors defines the error kinds shared by the bigfib packages:
// the arithmetic failures reported by the bignum core, and the configuration,
// calculation and server errors reported by the surrounding application.
//
// Every wrapper type implements Unwrap so callers can match causes with
// errors.Is and errors.As.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Generic failure.
	ExitErrorTimeout  = 2   // The execution limit was reached.
	ExitErrorLimit    = 3   // The requested index is above the configured maximum.
	ExitErrorConfig   = 4   // Invalid configuration.
	ExitErrorCanceled = 130 // Canceled by a signal (SIGINT convention).
)

// ─────────────────────────────────────────────────────────────────────────────
// Arithmetic errors
// ─────────────────────────────────────────────────────────────────────────────

var (
	// ErrAllocation reports that limb storage could not be acquired or grown.
	// The operand that was being resized keeps its previous value.
	ErrAllocation = errors.New("AllocationFailure: limb storage could not be acquired")

	// ErrInvalidOperand reports a violated precondition: a nil or released
	// value, a negative size, or a subtraction whose result would be negative.
	ErrInvalidOperand = errors.New("InvalidOperand: operand violates a precondition")
)

// ArithmeticError records which bignum operation failed and why.
type ArithmeticError struct {
	// Op is the name of the failing operation (e.g. "add", "resize").
	Op string
	// Cause is ErrAllocation, ErrInvalidOperand, or an error wrapping them.
	Cause error
}

// Error returns "bignum <op>: <cause>".
func (e ArithmeticError) Error() string {
	return fmt.Sprintf("bignum %s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause.
func (e ArithmeticError) Unwrap() error { return e.Cause }

// NewArithmeticError wraps cause with the name of the failing operation.
//
// Parameters:
//   - op: The operation name.
//   - cause: The underlying error.
//
// Returns:
//   - error: An ArithmeticError, or nil if cause is nil. A cause that is
//     itself an ArithmeticError is re-tagged with op rather than nested.
func NewArithmeticError(op string, cause error) error {
	if cause == nil {
		return nil
	}
	if inner, ok := cause.(ArithmeticError); ok {
		cause = inner.Cause
	}
	return ArithmeticError{Op: op, Cause: cause}
}

// IsAllocationFailure reports whether err carries ErrAllocation.
func IsAllocationFailure(err error) bool { return errors.Is(err, ErrAllocation) }

// IsInvalidOperand reports whether err carries ErrInvalidOperand.
func IsInvalidOperand(err error) bool { return errors.Is(err, ErrInvalidOperand) }

// ─────────────────────────────────────────────────────────────────────────────
// Application errors
// ─────────────────────────────────────────────────────────────────────────────

// ConfigError is a user configuration error such as an invalid flag value.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure that happened while computing a term,
// keeping the index that was requested.
type CalculationError struct {
	// N is the Fibonacci index being computed.
	N uint64
	// Cause is the underlying error.
	Cause error
}

func (e CalculationError) Error() string {
	return fmt.Sprintf("computing F(%d): %v", e.N, e.Cause)
}

// Unwrap returns the original cause.
func (e CalculationError) Unwrap() error { return e.Cause }

// ServerError represents errors from the HTTP server component.
type ServerError struct {
	Message string
	Cause   error
}

func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error, or nil.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a ServerError with a message and optional cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// ValidationError reports invalid request or configuration input.
type ValidationError struct {
	// Field is the name of the offending field.
	Field string
	// Message describes the failure.
	Message string
	// Value is the rejected value, if any.
	Value any
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}

// WrapError adds context to err with fmt.Errorf and %w.
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
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a cancellation or deadline error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
