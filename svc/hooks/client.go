package hooks

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/launchmvp/mailer/pkg/logger"
	"github.com/launchmvp/mailer/pkg/webhook"
	"github.com/launchmvp/mailer/svc/dispatch"
)

// Dispatcher delivers a send request to the dispatch endpoint.
type Dispatcher interface {
	Dispatch(ctx context.Context, body dispatch.SendBody) (webhook.Reply, error)
}

// Client calls the dispatch endpoint over HTTP.
type Client struct {
	sender   *webhook.Sender
	endpoint string
	apiKey   string
	opts     []webhook.SendOption
}

// NewClient creates a Client sharing one circuit breaker across calls.
// A nil hc uses the webhook default client. extra options are applied to
// every call after the ones derived from cfg.
//
// The send endpoint is not safe to repeat, so cfg.MaxRetries only covers
// attempts that never reached it (refused connections, 429 and 503).
func NewClient(cfg Config, hc *http.Client, log *slog.Logger, extra ...webhook.SendOption) *Client {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("hooks_client"))

	sender := webhook.NewSender(
		webhook.WithHTTPClient(hc),
		webhook.WithCircuitBreaker(webhook.NewCircuitBreaker(cfg.BreakerThreshold, cfg.BreakerCooldown)),
		webhook.WithLogger(log),
	)

	c := &Client{
		sender:   sender,
		endpoint: cfg.Endpoint(),
		apiKey:   cfg.APIKey(),
		opts: []webhook.SendOption{
			webhook.WithTimeout(cfg.Timeout),
			webhook.WithMaxRetries(cfg.MaxRetries),
			webhook.WithNonIdempotent(),
			webhook.WithHeader(dispatch.APIKeyHeader, cfg.APIKey()),
			webhook.WithOnAttempt(func(a webhook.Attempt) {
				log.Debug("dispatch attempt",
					slog.Int("attempt", a.Number),
					logger.StatusCode(a.StatusCode),
					logger.Duration(a.Duration),
					logger.Error(a.Err),
				)
			}),
		},
	}
	c.opts = append(c.opts, extra...)
	return c
}

func (c *Client) Dispatch(ctx context.Context, body dispatch.SendBody) (webhook.Reply, error) {
	return c.sender.Send(ctx, c.endpoint, body, c.opts...)
}
