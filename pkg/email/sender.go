package email

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Sender delivers a rendered message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
	// Provider names the backing service for logs and metrics.
	Provider() string
}

// Option configures provider clients.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient sets the HTTP client used by API-based providers.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// NewSender builds the sender selected by cfg.Provider.
func NewSender(ctx context.Context, cfg Config, opts ...Option) (Sender, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	switch strings.ToLower(cfg.Provider) {
	case ProviderResend, "":
		return NewResendSender(cfg, o.httpClient)
	case ProviderPostmark:
		return NewPostmarkSender(cfg, o.httpClient)
	case ProviderSES:
		return NewSESSender(ctx, cfg, o.httpClient)
	case ProviderDev:
		return NewDevSender(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
