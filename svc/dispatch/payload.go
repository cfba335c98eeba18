package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload carries the personalization data of one email type.
type Payload interface {
	EmailType() EmailType
	// Name returns the explicit first name, empty if none was given.
	Name() string
	SetName(firstName string)
}

// WelcomePayload personalizes the welcome email. UserName is an
// alternative to FirstName accepted from older callers.
type WelcomePayload struct {
	FirstName    string `json:"firstName,omitempty"`
	UserName     string `json:"userName,omitempty"`
	DashboardURL string `json:"dashboardUrl,omitempty"`
}

func (p *WelcomePayload) EmailType() EmailType { return EmailWelcome }
func (p *WelcomePayload) Name() string         { return p.FirstName }
func (p *WelcomePayload) SetName(n string)     { p.FirstName = n }

// BillingPayload personalizes the billing confirmation email.
type BillingPayload struct {
	FirstName       string `json:"firstName,omitempty"`
	FirstChargeDate string `json:"firstChargeDate,omitempty"`
	TierName        string `json:"tierName,omitempty"`
	DashboardURL    string `json:"dashboardUrl,omitempty"`
	BillingURL      string `json:"billingUrl,omitempty"`
}

func (p *BillingPayload) EmailType() EmailType { return EmailBillingConfirmation }
func (p *BillingPayload) Name() string         { return p.FirstName }
func (p *BillingPayload) SetName(n string)     { p.FirstName = n }

// CancellationPayload personalizes the cancellation email.
// A nil RetentionDays means the default retention period.
type CancellationPayload struct {
	FirstName         string `json:"firstName,omitempty"`
	IsAccountDeletion bool   `json:"isAccountDeletion"`
	RetentionDays     *int   `json:"retentionDays,omitempty"`
	ResubscribeURL    string `json:"resubscribeUrl,omitempty"`
	EndDate           string `json:"endDate,omitempty"`
}

func (p *CancellationPayload) EmailType() EmailType { return EmailCancellation }
func (p *CancellationPayload) Name() string         { return p.FirstName }
func (p *CancellationPayload) SetName(n string)     { p.FirstName = n }

// NewPayload returns an empty payload for t.
func NewPayload(t EmailType) (Payload, error) {
	switch t {
	case EmailWelcome:
		return &WelcomePayload{}, nil
	case EmailBillingConfirmation:
		return &BillingPayload{}, nil
	case EmailCancellation:
		return &CancellationPayload{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEmailType, t)
}

// DecodePayload strictly decodes raw JSON into the payload for t.
// Unknown keys and wrongly typed values are rejected with ErrInvalidData.
// Empty input and JSON null yield an empty payload.
func DecodePayload(t EmailType, raw json.RawMessage) (Payload, error) {
	return decodePayload(t, raw, true)
}

// DecodeData decodes the free-form "data" map of a send request. Keys the
// payload for t does not know are ignored; wrongly typed values are still
// ErrInvalidData.
func DecodeData(t EmailType, raw json.RawMessage) (Payload, error) {
	return decodePayload(t, raw, false)
}

func decodePayload(t EmailType, raw json.RawMessage, strict bool) (Payload, error) {
	p, err := NewPayload(t)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return p, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("%w for %s: %v", ErrInvalidData, t, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w for %s: unexpected trailing data", ErrInvalidData, t)
	}
	return p, nil
}
