package dispatch

import (
	"fmt"
	"strings"
)

// EmailType identifies a transactional email.
type EmailType string

const (
	EmailWelcome             EmailType = "welcome"
	EmailBillingConfirmation EmailType = "billing_confirmation"
	EmailCancellation        EmailType = "cancellation"
)

// EmailTypes lists every supported type.
var EmailTypes = []EmailType{EmailWelcome, EmailBillingConfirmation, EmailCancellation}

func (t EmailType) String() string { return string(t) }

// Valid reports whether t is a supported email type.
func (t EmailType) Valid() bool {
	switch t {
	case EmailWelcome, EmailBillingConfirmation, EmailCancellation:
		return true
	}
	return false
}

// ParseEmailType validates s as an EmailType.
func ParseEmailType(s string) (EmailType, error) {
	t := EmailType(strings.TrimSpace(s))
	if t == "" {
		return "", ErrMissingFields
	}
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEmailType, s)
	}
	return t, nil
}

// Request asks the dispatcher to send one email. At least one of To and
// UserID must be set. Data may be nil, in which case an empty payload of
// the right type is used.
type Request struct {
	Type   EmailType
	To     string
	UserID string
	Data   Payload
}

// Outcome is the terminal state of a dispatch.
type Outcome string

const (
	OutcomeSent      Outcome = "sent"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeFailed    Outcome = "failed"
)

// Result describes a completed dispatch. Delivery failures are reported
// here with OutcomeFailed, never as an error from Send.
type Result struct {
	Outcome   Outcome
	EmailID   string
	Error     string
	Recipient string
	// Data is the payload after resolution, e.g. with a derived first name.
	Data Payload
}

// DuplicateMessage is the human readable notice for OutcomeDuplicate.
func DuplicateMessage(t EmailType) string {
	return fmt.Sprintf("%s email already sent to this user", t)
}
