// Package webhook posts JSON to internal HTTP endpoints with bounded retries.
//
// The hook adapters use it to call the dispatch endpoint. Only failures that
// say nothing about the request itself are retried: transport errors and
// 408, 425, 429, 502, 503 and 504 responses. Every other response is final and
// returned to the caller as a Reply so it can relay the status and body:
//
//	sender := webhook.NewSender(
//		webhook.WithCircuitBreaker(webhook.NewCircuitBreaker(5, 30*time.Second)),
//	)
//	reply, err := sender.Send(ctx, dispatchURL, req,
//		webhook.WithHeader("X-API-Key", key),
//		webhook.WithMaxRetries(2),
//	)
//	if err != nil {
//		// no response at all
//	}
//	if !reply.OK() {
//		// relay reply.StatusCode and reply.Body
//	}
package webhook
