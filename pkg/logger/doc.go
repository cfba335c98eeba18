// Package logger builds the service's *slog.Logger and provides the attribute
// helpers used across the mailer so that log keys stay consistent.
//
// New assembles a text or JSON handler from functional options and wraps it
// with NewContextHandler, which pulls request scoped values (for example the
// request id) out of the context on every call.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "mailer"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "email sent",
//	    logger.EmailType("welcome"),
//	    logger.Recipient("jane@example.com"), // logged as "ja***@example.com"
//	    logger.MessageID(id),
//	)
//
// # Configuration
//
// Config can be loaded from the environment with pkg/config:
//
//	LOG_LEVEL=debug LOG_FORMAT=text APP_ENV=development
//
// and applied with WithConfig.
//
// Error and UserID return an empty slog.Attr for nil or empty input, so they
// can be passed unconditionally.
package logger
