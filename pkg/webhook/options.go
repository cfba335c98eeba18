package webhook

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Sender.
type Option func(*Sender)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Sender) {
		if c != nil {
			s.client = c
		}
	}
}

// WithCircuitBreaker shares cb across every Send of this Sender.
func WithCircuitBreaker(cb *CircuitBreaker) Option {
	return func(s *Sender) { s.breaker = cb }
}

// WithLogger logs retried attempts at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sender) {
		if l != nil {
			s.log = l
		}
	}
}

// Attempt describes one HTTP round trip.
type Attempt struct {
	Number     int
	StatusCode int
	Duration   time.Duration
	Err        error
}

type sendOptions struct {
	timeout    time.Duration
	headers    http.Header
	maxRetries int
	backoff    Backoff
	onAttempt  func(Attempt)
	// unsafe targets are retried only when the request never reached them.
	unsafe bool
}

func defaultSendOptions() *sendOptions {
	return &sendOptions{
		timeout:    10 * time.Second,
		headers:    make(http.Header),
		maxRetries: 2,
		backoff:    DefaultBackoff(),
	}
}

// SendOption configures a single Send.
type SendOption func(*sendOptions)

// WithTimeout bounds each attempt.
func WithTimeout(d time.Duration) SendOption {
	return func(o *sendOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithHeader sets a request header. Empty values are ignored.
func WithHeader(key, value string) SendOption {
	return func(o *sendOptions) {
		if key != "" && value != "" {
			o.headers.Set(key, value)
		}
	}
}

// WithMaxRetries sets how many times a retryable failure is retried.
func WithMaxRetries(n int) SendOption {
	return func(o *sendOptions) {
		if n >= 0 {
			o.maxRetries = n
		}
	}
}

// WithBackoff sets the delay strategy between retries.
func WithBackoff(b Backoff) SendOption {
	return func(o *sendOptions) {
		if b != nil {
			o.backoff = b
		}
	}
}

// WithOnAttempt is called after every round trip.
func WithOnAttempt(fn func(Attempt)) SendOption {
	return func(o *sendOptions) { o.onAttempt = fn }
}

// WithNonIdempotent marks the target as unsafe to call twice. A failed
// attempt is then retried only after a dial error or a 429/503 reply; a
// timeout or any other failure is final, since the target may still be
// processing the first request.
func WithNonIdempotent() SendOption {
	return func(o *sendOptions) { o.unsafe = true }
}
