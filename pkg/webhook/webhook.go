package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/launchmvp/mailer/pkg/logger"
)

const maxReplyBytes = 64 << 10

// Reply is the final HTTP response of a Send.
type Reply struct {
	StatusCode int
	Body       []byte
	Attempts   int
}

// OK reports a 2xx status.
func (r Reply) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the body into v.
func (r Reply) Decode(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("%w: empty reply body", ErrInvalidPayload)
	}
	return json.Unmarshal(r.Body, v)
}

// Sender posts JSON payloads to internal endpoints and hands back the reply.
// Transport errors and the statuses in isRetryable are retried; any other
// response, including 4xx and 500, is final and returned as a Reply.
type Sender struct {
	client  *http.Client
	breaker *CircuitBreaker
	log     *slog.Logger
}

// NewSender creates a Sender with a 30s client timeout.
func NewSender(opts ...Option) *Sender {
	s := &Sender{
		client: &http.Client{Timeout: 30 * time.Second},
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send marshals payload to JSON and POSTs it to target. The error is non-nil
// only when no final HTTP response was obtained.
func (s *Sender) Send(ctx context.Context, target string, payload any, opts ...SendOption) (Reply, error) {
	if err := validateURL(target); err != nil {
		return Reply{}, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Reply{}, errors.Join(ErrInvalidPayload, err)
	}

	o := defaultSendOptions()
	for _, opt := range opts {
		opt(o)
	}

	if s.breaker != nil && !s.breaker.Allow() {
		return Reply{}, ErrCircuitOpen
	}

	for attempt := 1; attempt <= o.maxRetries+1; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return Reply{}, errors.Join(ErrDeliveryFailed, ctx.Err())
			case <-time.After(o.backoff.Delay(attempt - 1)):
			}
		}

		start := time.Now()
		reply, err := s.do(ctx, target, body, o)
		reply.Attempts = attempt

		if o.onAttempt != nil {
			o.onAttempt(Attempt{Number: attempt, StatusCode: reply.StatusCode, Duration: time.Since(start), Err: err})
		}

		failed := err != nil || isRetryable(reply.StatusCode)
		s.record(failed)

		if !failed {
			return reply, nil
		}
		final := attempt == o.maxRetries+1 || (o.unsafe && !notDelivered(err, reply.StatusCode))
		if final {
			if err == nil {
				return reply, nil
			}
			return Reply{}, fmt.Errorf("%w after %d attempts: %w", ErrDeliveryFailed, attempt, err)
		}

		s.log.WarnContext(ctx, "webhook attempt failed",
			slog.String("url", target),
			slog.Int("attempt", attempt),
			logger.StatusCode(reply.StatusCode),
			logger.Error(err),
		)
	}

	return Reply{}, ErrDeliveryFailed
}

func (s *Sender) record(failed bool) {
	if s.breaker == nil {
		return
	}
	if failed {
		s.breaker.Failure()
	} else {
		s.breaker.Success()
	}
}

func (s *Sender) do(ctx context.Context, target string, body []byte, o *sendOptions) (Reply, error) {
	reqCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return Reply{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "launchmvp-mailer-hooks/1.0")
	for k, v := range o.headers {
		req.Header[k] = v
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return Reply{}, errors.Join(ErrTimeout, err)
		}
		return Reply{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return Reply{}, err
	}
	return Reply{StatusCode: resp.StatusCode, Body: data}, nil
}

// notDelivered reports failures where the target cannot have acted on the
// request: the connection was never established, or it answered 429/503.
func notDelivered(err error, status int) bool {
	if err != nil {
		var opErr *net.OpError
		return errors.As(err, &opErr) && opErr.Op == "dial"
	}
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

func isRetryable(status int) bool {
	switch status {
	case http.StatusRequestTimeout, http.StatusTooEarly, http.StatusTooManyRequests,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func validateURL(target string) error {
	if target == "" {
		return fmt.Errorf("%w: URL is required", ErrInvalidURL)
	}
	u, err := url.Parse(target)
	if err != nil {
		return errors.Join(ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: only http and https are supported", ErrInvalidURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidURL)
	}
	return nil
}
