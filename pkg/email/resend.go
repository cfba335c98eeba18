package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers through the Resend API.
type ResendSender struct {
	client  *resend.Client
	from    string
	replyTo string
}

func NewResendSender(cfg Config, hc *http.Client) (*ResendSender, error) {
	if cfg.ResendAPIKey == "" {
		return nil, fmt.Errorf("%w: RESEND_API_KEY is required", ErrInvalidConfig)
	}
	if err := validateFrom(cfg.From); err != nil {
		return nil, err
	}

	var client *resend.Client
	if hc != nil {
		client = resend.NewCustomClient(hc, cfg.ResendAPIKey)
	} else {
		client = resend.NewClient(cfg.ResendAPIKey)
	}
	return &ResendSender{client: client, from: cfg.From, replyTo: cfg.ReplyTo}, nil
}

func (s *ResendSender) Provider() string { return ProviderResend }

func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	req := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: s.replyTo,
	}
	if msg.Tag != "" {
		req.Tags = []resend.Tag{{Name: "category", Value: msg.Tag}}
	}

	resp, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return "", &ProviderError{Provider: ProviderResend, Err: err}
	}
	return resp.Id, nil
}
