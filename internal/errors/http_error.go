package errors

import "net/http"

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helpers for the error taxonomy: validation, authorization, not-found,
// conflict and everything else.
var (
	ErrValidation   = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
	ErrForbidden    = func(msg string) *HTTPError { return NewHTTPError(http.StatusForbidden, msg) }
	ErrNotFound     = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, msg) }
	ErrConflict     = func(msg string) *HTTPError { return NewHTTPError(http.StatusConflict, msg) }
	ErrServer       = func(msg string) *HTTPError { return NewHTTPError(http.StatusInternalServerError, msg) }
)

// StatusOf returns the HTTP status for err, or 500 when err carries no code.
func StatusOf(err error) int {
	if he, ok := err.(*HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}

// Is reports whether err is an HTTPError with the given status code.
func Is(err error, code int) bool {
	he, ok := err.(*HTTPError)
	return ok && he.Code == code
}
