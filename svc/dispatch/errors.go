package dispatch

import (
	"errors"

	"github.com/launchmvp/mailer/svc/identity"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUserNotFound is returned when a user id resolves to no email address.
	ErrUserNotFound = identity.ErrUserNotFound
)

// requestError is a client-facing validation failure that matches
// ErrInvalidRequest under errors.Is.
type requestError struct{ msg string }

func (e *requestError) Error() string        { return e.msg }
func (e *requestError) Is(target error) bool { return target == ErrInvalidRequest }

var (
	ErrMissingFields    error = &requestError{"Missing required fields: type, and either to or userId"}
	ErrUnknownEmailType error = &requestError{"unknown email type"}
	ErrInvalidRecipient error = &requestError{"invalid recipient email address"}
	ErrInvalidData      error = &requestError{"invalid data"}
)
