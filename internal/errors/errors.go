package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agbru/numrt/numeric"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess             = 0   // Indicates successful execution.
	ExitErrorGeneric        = 1   // Indicates a generic error.
	ExitErrorTimeout        = 2   // Indicates the operation timed out.
	ExitErrorMismatch       = 3   // Indicates a conformance mismatch against the reference model.
	ExitErrorConfig         = 4   // Indicates a configuration error.
	ExitErrorDivisionByZero = 5   // Indicates an integer divide by zero.
	ExitErrorOverflow       = 6   // Indicates an integer overflow.
	ExitErrorCanceled       = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// an unreadable calling convention profile.
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

// EvaluationError ties a failed table call to the entry point that was
// invoked, preserving the original cause.
type EvaluationError struct {
	// Symbol is the entry point name as the caller spelled it.
	Symbol string
	// Cause is the underlying error.
	Cause error
}

// Error returns the symbol followed by the cause.
func (e EvaluationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Symbol, e.Cause)
}

// Unwrap returns the original cause, so errors.Is(err, numeric.ErrOverflow)
// keeps working through the wrapper.
func (e EvaluationError) Unwrap() error { return e.Cause }

// TimeoutError represents an operation that exceeded its time limit.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MismatchError reports that a conformance run found results that disagree
// with the reference model.
type MismatchError struct {
	// Mismatches is the number of disagreeing vectors.
	Mismatches int
	// Total is the number of vectors checked.
	Total int
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("%d of %d vectors disagree with the reference model", e.Mismatches, e.Total)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
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

// ExitCodeFor maps err to the process exit status.
//
// Arithmetic failures keep distinct codes so that scripts can tell a
// division by zero from an overflow without parsing stderr.
func ExitCodeFor(err error) int {
	var (
		configErr     ConfigError
		validationErr ValidationError
		timeoutErr    TimeoutError
		mismatchErr   MismatchError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, numeric.ErrDivisionByZero):
		return ExitErrorDivisionByZero
	case errors.Is(err, numeric.ErrOverflow):
		return ExitErrorOverflow
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	case errors.As(err, &mismatchErr):
		return ExitErrorMismatch
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	}
	return ExitErrorGeneric
}
