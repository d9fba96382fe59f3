// Package errs defines the application error taxonomy. Authorization and
// visibility failures are deliberately opaque: a row the actor may not see
// reads as not found, so callers cannot probe for existence across tenants.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated means no valid session accompanied the request.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden means the actor is authenticated but the authorization
	// predicate fails for the requested mutation.
	ErrForbidden = errors.New("access denied")

	// ErrNotFound means the entity is absent or filtered out by the actor's
	// visibility predicate. Indistinguishable from Forbidden on read paths.
	ErrNotFound = errors.New("not found")

	// ErrProfileMissing means an identity exists but has no profile row.
	// Treated as a fatal configuration error, not a retryable one.
	ErrProfileMissing = errors.New("profile missing for identity")
)

// ValidationError carries a message that is surfaced verbatim to the user.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// DependencyError wraps a failure from the identity provider, relational
// store, or blob store. The original detail is logged, never displayed.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// Dependency wraps err as a DependencyError for the named operation.
func Dependency(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DependencyError{Op: op, Err: err}
}

// IsDependency reports whether err is a DependencyError.
func IsDependency(err error) bool {
	var de *DependencyError
	return errors.As(err, &de)
}

// HTTPStatus maps a taxonomy error to its HTTP status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrProfileMissing):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the message safe to show the caller. Validation
// messages pass through verbatim; dependency detail is replaced with a
// generic retryable message.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "Not authenticated"
	case errors.Is(err, ErrForbidden):
		return "Access denied"
	case errors.Is(err, ErrNotFound):
		return "Not found"
	case IsValidation(err):
		return err.Error()
	case IsDependency(err):
		return "A service is temporarily unavailable. Please try again."
	default:
		return "Something went wrong"
	}
}
