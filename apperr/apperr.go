// Package apperr defines the error taxonomy shared by all services:
// NotFound, Validation, Conflict and Authentication errors are surfaced
// to API clients; everything else is treated as internal.
package apperr

import (
	"errors"
	"fmt"
)

// Kind categorizes an error for transport mapping.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindAuthentication Kind = "authentication"
	KindInternal       Kind = "internal"
)

// Error carries a kind, a client-safe message, optional structured details
// (e.g. field violations) and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports a missing entity.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation reports malformed or self-contradictory input.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationDetails reports field-level violations.
func ValidationDetails(message string, details any) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

// Conflict reports a state collision such as a duplicate record.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Authentication reports bad credentials or a locked/disabled account.
func Authentication(format string, args ...any) *Error {
	return &Error{Kind: KindAuthentication, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure.
func Internal(err error, format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool       { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool     { return KindOf(err) == KindValidation }
func IsConflict(err error) bool       { return KindOf(err) == KindConflict }
func IsAuthentication(err error) bool { return KindOf(err) == KindAuthentication }
