// Package apperrors defines the structured error types of the numrt
// application and maps them, together with the arithmetic errors of the
// numeric package, onto process exit codes.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Types that carry a cause implement Unwrap() to support errors.Is() and errors.As().
package apperrors
