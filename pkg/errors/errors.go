package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies audit engine failures
type ErrorType string

const (
	// ErrorTypeInvalidProfile indicates a malformed or reserved profile reference.
	// Never retried, surfaced to the caller immediately.
	ErrorTypeInvalidProfile ErrorType = "invalid_profile"

	// ErrorTypeNotLoggedIn indicates the persisted session is expired or absent.
	// Fatal for the whole run; the caller must re-run the login bootstrap.
	ErrorTypeNotLoggedIn ErrorType = "not_logged_in"

	// ErrorTypeUpstreamHTTP indicates a non-200 response from the structured
	// profile endpoint. Fatal for the profile being fetched; callers resolving
	// a sampled follower degrade it to a zeroed record instead.
	ErrorTypeUpstreamHTTP ErrorType = "upstream_http"

	// ErrorTypeUINotFound indicates a required UI affordance could not be
	// located (selector drift). Fatal for the follower sampler entry point,
	// absorbed silently inside per-item extraction strategies.
	ErrorTypeUINotFound ErrorType = "ui_not_found"

	// ErrorTypeTimeout indicates a navigation wait elapsed
	ErrorTypeTimeout ErrorType = "timeout"

	// ErrorTypeBrowser indicates the headless browser could not be launched
	// or controlled
	ErrorTypeBrowser ErrorType = "browser"

	ErrorTypeUnknown ErrorType = "unknown"
)

// Error represents an audit engine error with type information
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// New creates an Error of the given type
func New(t ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...)}
}

// NewHTTP creates an upstream HTTP error carrying the status code
func NewHTTP(code int, format string, args ...interface{}) *Error {
	return &Error{Type: ErrorTypeUpstreamHTTP, Message: fmt.Sprintf(format, args...), Code: code}
}

// TypeOf extracts the ErrorType from err, unwrapping as needed.
// Plain errors report ErrorTypeUnknown.
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// Is reports whether err carries the given ErrorType
func Is(err error, t ErrorType) bool {
	return TypeOf(err) == t
}

// IsFatal reports whether err must abort the whole audit run rather than
// degrade a single item. Only a missing session qualifies here; UI drift is
// fatal only at the follower sampler entry point, and the sampler decides
// that for itself.
func IsFatal(err error) bool {
	return Is(err, ErrorTypeNotLoggedIn)
}
