package handler

import (
	"errors"
	"net/http"
)

// ErrNilResponse indicates a handler returned nil instead of a Response.
var ErrNilResponse = errors.New("handler returned nil response")

// HTTPError carries the status code and client-facing message of a failed request.
// Details is optional debug information, rendered only when non-empty.
type HTTPError struct {
	Code    int
	Message string
	Details string
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates an HTTPError with the given code and message.
func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}

var (
	ErrBadRequest   = HTTPError{Code: http.StatusBadRequest, Message: "Invalid request"}
	ErrUnauthorized = HTTPError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrNotFound     = HTTPError{Code: http.StatusNotFound, Message: "Not found"}
	ErrInternal     = HTTPError{Code: http.StatusInternalServerError, Message: "Internal server error"}
)
