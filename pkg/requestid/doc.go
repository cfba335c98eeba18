// Package requestid correlates log lines across the mailer's HTTP hops.
//
// Middleware assigns every inbound request an X-Request-ID, Transport copies
// it onto outbound calls (hooks to dispatch, dispatch to the auth API), and
// LoggerExtractor feeds it to pkg/logger:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	client := &http.Client{Transport: &requestid.Transport{}}
package requestid
