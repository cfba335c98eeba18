package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mrz1836/postmark"
)

// PostmarkSender delivers through Postmark's transactional API.
type PostmarkSender struct {
	client  *postmark.Client
	from    string
	replyTo string
}

// NewPostmarkSender requires both Postmark tokens and a valid sender address.
func NewPostmarkSender(cfg Config, hc *http.Client) (*PostmarkSender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: POSTMARK_SERVER_TOKEN is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: POSTMARK_ACCOUNT_TOKEN is required", ErrInvalidConfig)
	}
	if err := validateFrom(cfg.From); err != nil {
		return nil, err
	}

	client := postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	if hc != nil {
		client.HTTPClient = hc
	}
	return &PostmarkSender{client: client, from: cfg.From, replyTo: cfg.ReplyTo}, nil
}

func (s *PostmarkSender) Provider() string { return ProviderPostmark }

// Send tracks opens and HTML link clicks only.
func (s *PostmarkSender) Send(ctx context.Context, msg Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:       s.from,
		ReplyTo:    s.replyTo,
		To:         msg.To,
		Subject:    msg.Subject,
		Tag:        msg.Tag,
		HTMLBody:   msg.HTML,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return "", &ProviderError{Provider: ProviderPostmark, Err: err}
	}
	if resp.ErrorCode > 0 {
		return "", &ProviderError{Provider: ProviderPostmark, Err: fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message)}
	}
	return resp.MessageID, nil
}
