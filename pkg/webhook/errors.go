package webhook

import "errors"

var (
	ErrDeliveryFailed = errors.New("webhook: delivery failed")
	ErrCircuitOpen    = errors.New("webhook: circuit breaker is open")
	ErrInvalidPayload = errors.New("webhook: invalid payload")
	ErrInvalidURL     = errors.New("webhook: invalid URL")
	ErrTimeout        = errors.New("webhook: request timeout")
)
