package minds

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies every failure the client reports.
type ErrorKind int

const (
	// KindUnknown covers unmapped statuses, transport failures and local errors.
	KindUnknown ErrorKind = iota
	// KindNotFound is raised for a 404 from the API.
	KindNotFound
	// KindForbidden is raised for a 403 from the API.
	KindForbidden
	// KindUnauthorized is raised for a 401 from the API.
	KindUnauthorized
	// KindUnsupported is raised when the API returns a record this client cannot represent.
	KindUnsupported
)

// String returns the machine-readable name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	case KindUnsupported:
		return "unsupported"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// StatusCode returns the canonical HTTP status code for the kind.
func (k ErrorKind) StatusCode() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindUnsupported:
		return http.StatusBadRequest
	case KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// DefaultMessage returns the message used when the server supplies none.
func (k ErrorKind) DefaultMessage() string {
	switch k {
	case KindNotFound:
		return "the requested object was not found"
	case KindForbidden:
		return "access to the requested resource is forbidden"
	case KindUnauthorized:
		return "authentication is required and has failed or has not yet been provided"
	case KindUnsupported:
		return "the requested object type is not supported"
	case KindUnknown:
		return "an unknown error occurred"
	default:
		return "an unknown error occurred"
	}
}

// Error is the typed failure returned by every client operation.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewError creates an error of the given kind. An empty message falls back
// to the kind's default message.
func NewError(kind ErrorKind, message string) *Error {
	if message == "" {
		message = kind.DefaultMessage()
	}

	return &Error{Kind: kind, Message: message}
}

// WrapError creates an error of the given kind that keeps cause in its chain.
func WrapError(kind ErrorKind, message string, cause error) *Error {
	e := NewError(kind, message)
	e.Err = cause

	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.DefaultMessage()
	}

	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the canonical HTTP status code of the error's kind.
func (e *Error) StatusCode() int {
	return e.Kind.StatusCode()
}

// Is reports whether target is an *Error of the same kind, which makes the
// sentinel values below usable with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrUnsupported  = &Error{Kind: KindUnsupported}
	ErrUnknown      = &Error{Kind: KindUnknown}
)

// Static errors for err113 compliance.
var (
	ErrValidation     = errors.New("validation failed")
	ErrConfigRequired = errors.New("config is required")
	ErrAPIKeyRequired = errors.New("API key is required")
)

// KindFromStatus maps an HTTP status code to an error kind. Only 404, 403
// and 401 have dedicated kinds; everything else, 400 included, is unknown.
func KindFromStatus(code int) ErrorKind {
	switch code {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusUnauthorized:
		return KindUnauthorized
	default:
		return KindUnknown
	}
}

// ErrorFromStatus builds the typed error for an HTTP status code.
func ErrorFromStatus(code int, message string) *Error {
	return NewError(KindFromStatus(code), message)
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}

	return KindUnknown, false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsUnsupported checks if the error is an unsupported object error.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}

// IsUnknown checks if the error is an unknown error.
func IsUnknown(err error) bool {
	return errors.Is(err, ErrUnknown)
}
