// Package binder decodes HTTP request bodies into typed values for the
// handler package.
//
// Only JSON is supported. Bodies are size-limited, must contain exactly one
// JSON value, and by default reject unknown object keys:
//
//	http.HandleFunc("/api/email/send", handler.Wrap(send,
//		handler.WithBinder[dispatch.SendBody](binder.JSON()),
//	))
//
// Webhook receivers whose payloads grow over time can relax the strictness:
//
//	binder.JSON(binder.AllowUnknownFields(), binder.WithMaxSize(256<<10))
//
// All failures wrap one of the package sentinel errors, so callers can map
// them to a 400 response with errors.Is.
package binder
