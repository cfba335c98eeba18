// Command hooks receives database webhooks for new users and subscription
// changes and forwards them to the mailer dispatch endpoint.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/launchmvp/mailer/pkg/config"
	"github.com/launchmvp/mailer/pkg/httpserver"
	"github.com/launchmvp/mailer/pkg/logger"
	"github.com/launchmvp/mailer/pkg/metrics"
	"github.com/launchmvp/mailer/pkg/requestid"
	"github.com/launchmvp/mailer/svc/hooks"
)

func main() {
	if err := run(); err != nil {
		slog.Error("hooks stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	if _, err := os.Stat(".env.local"); err == nil {
		if err := config.LoadEnv(".env.local"); err != nil {
			return err
		}
	}

	logCfg, err := config.Load[logger.Config]()
	if err != nil {
		return err
	}
	log := logger.New(
		logger.WithConfig(logCfg, "hooks"),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	httpCfg, err := config.Load[httpserver.Config]()
	if err != nil {
		return err
	}
	cfg, err := config.Load[hooks.Config]()
	if err != nil {
		return err
	}
	if cfg.APIKey() == "" {
		log.Warn("no INTERNAL_API_KEY or RESEND_API_KEY set, dispatch calls will be rejected")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := hooks.NewClient(cfg, &http.Client{Transport: &requestid.Transport{}}, log)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(metrics.HTTPMiddleware)
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, time.Second, nil))
	r.Handle("/metrics", metrics.Handler())
	hooks.NewHandler(client, cfg, hooks.WithLogger(log)).Mount(r)

	log.Info("hooks starting", slog.String("addr", httpCfg.Addr), slog.String("dispatch", cfg.Endpoint()))
	if err := httpserver.New(httpCfg, log).Run(ctx, r); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
