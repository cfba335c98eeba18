// Package httpserver runs the mailer's HTTP listeners.
//
// Server wraps net/http with context-driven graceful shutdown; the caller
// owns signal handling:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.New(cfg, log)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// LivenessHandler and ReadinessHandler back the /health/live and
// /health/ready probes. Readiness runs named dependency checks and reports
// each one in the JSON body.
package httpserver
