package manager

import (
	"errors"
	"fmt"

	"github.com/consorcio-server/consorcio-server/internal/storage"
)

// Kind classifies manager errors. The set is closed: every error leaving the
// manager layer carries exactly one of these, and the API boundary maps each
// to an HTTP status with a single table.
type Kind int

// Error kinds
const (
	KindValidation Kind = iota + 1
	KindUnauthorized
	KindNotFound
	KindTransport
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error is a kinded manager error
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Validationf creates a validation error
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Unauthorizedf creates an authorization error
func Unauthorizedf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf creates a not-found error
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Transportf creates a transport error
func Transportf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindTransport, Message: fmt.Sprintf(format, args...)}
}

// invalid wraps a validator failure
func invalid(err error) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Err: err}
}

// wrapStore classifies a store error. Missing documents become NotFound,
// uniqueness violations become Validation, everything else is Transport.
func wrapStore(op string, err error) *Error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return &Error{Kind: KindNotFound, Message: op, Err: err}
	case errors.Is(err, storage.ErrDuplicateKey):
		return &Error{Kind: KindValidation, Message: op, Err: err}
	default:
		return &Error{Kind: KindTransport, Message: op, Err: err}
	}
}

// KindOf returns the kind of err, KindTransport for unclassified errors
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransport
}
