// Package apperrors defines the closed set of error kinds the API maps to
// HTTP responses. Services classify failures into these kinds at their
// boundary; handlers never inspect error message text.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind tags an error with its user-facing classification.
type Kind int

const (
	// KindValidation covers malformed or conflicting input (HTTP 400).
	KindValidation Kind = iota + 1
	// KindAuthentication covers credential and token failures (HTTP 401).
	KindAuthentication
	// KindDependency covers unreachable or misconfigured collaborators (HTTP 502).
	KindDependency
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindDependency:
		return "dependency"
	}
	return "unknown"
}

// Error is a kind-tagged error. Message is safe to return to a client.
type Error struct {
	Kind      Kind
	Message   string
	Retryable bool // only meaningful for KindDependency
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a KindValidation error with a client-facing message.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// ValidationWrap tags an underlying error as KindValidation.
func ValidationWrap(err error, message string) *Error {
	return &Error{Kind: KindValidation, Message: message, Err: err}
}

// Authentication creates a KindAuthentication error with a client-facing message.
func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// AuthenticationWrap tags an underlying error as KindAuthentication.
func AuthenticationWrap(err error, message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message, Err: err}
}

// Dependency tags an underlying error as KindDependency. Retryable marks
// failures a connection layer could retry (the auth core never retries).
func Dependency(err error, retryable bool, message string) *Error {
	return &Error{Kind: KindDependency, Message: message, Retryable: retryable, Err: err}
}

// KindOf returns the kind of err, or 0 when err carries no kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err is tagged with kind k.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

// MessageOf returns the client-facing message of err, or fallback when err
// carries no kind.
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return fallback
}

// Wrapf wraps an error with context using fmt.Errorf.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
