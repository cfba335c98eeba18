package email

import "errors"

var (
	ErrFailedToSendEmail = errors.New("email: failed to send email")
	ErrInvalidConfig     = errors.New("email: invalid config")
	ErrInvalidMessage    = errors.New("email: invalid message")
	ErrUnknownProvider   = errors.New("email: unknown provider")
)

// ProviderError is a delivery failure reported by a provider. Its message is
// the provider's own; errors.Is matches ErrFailedToSendEmail.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string { return e.Err.Error() }

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) Is(target error) bool { return target == ErrFailedToSendEmail }
