// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist or has expired.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a precondition violation (e.g., the review already carries a reply).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstream indicates a call to an external service failed at the HTTP layer.
	// Safe to retry later.
	ErrUpstream = errors.New("upstream failure")

	// ErrUpstreamAuth indicates the credential refresh exchange was rejected by the
	// external token endpoint. Matches ErrUpstream as well.
	ErrUpstreamAuth = fmt.Errorf("upstream auth failure: %w", ErrUpstream)

	// ErrConfiguration indicates a required server-side secret or credential is
	// missing or unusable. Not retryable by the caller.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnavailable indicates a feature is temporarily unavailable because a
	// backing dependency (the database) could not be reached at startup.
	ErrUnavailable = errors.New("unavailable")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message while preserving the
// error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
