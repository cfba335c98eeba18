package email

import (
	"errors"
	"fmt"
	"net/mail"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Message is a single rendered transactional email.
type Message struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	HTML    string `json:"-" validate:"required"`
	// Tag groups messages in provider dashboards, e.g. the email type.
	Tag string `json:"tag,omitempty" validate:"omitempty,max=128"`
}

// Validate checks the message before it reaches a provider.
func (m Message) Validate() error {
	if err := validate.Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed on %q", ErrInvalidMessage, verrs[0].Field(), verrs[0].Tag())
		}
		return errors.Join(ErrInvalidMessage, err)
	}
	return nil
}

// ValidAddress reports whether addr is a bare email address.
func ValidAddress(addr string) bool {
	return validate.Var(addr, "required,email") == nil
}

// validateFrom accepts both "user@host" and "Name <user@host>".
func validateFrom(from string) error {
	if from == "" {
		return fmt.Errorf("%w: sender address is required", ErrInvalidConfig)
	}
	if _, err := mail.ParseAddress(from); err != nil {
		return fmt.Errorf("%w: sender address %q: %v", ErrInvalidConfig, from, err)
	}
	return nil
}
