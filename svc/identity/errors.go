package identity

import "errors"

var (
	// ErrNotFound is returned by a Store when it has no record for the user.
	ErrNotFound = errors.New("user not found in store")
	// ErrUserNotFound is returned by Resolve when no store yields an email.
	ErrUserNotFound = errors.New("user not found or no email address")
	ErrLookupFailed = errors.New("user lookup failed")
)
