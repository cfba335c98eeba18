// Command mailer serves the transactional email dispatch endpoint and the
// template preview pages.
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
	"github.com/go-chi/cors"

	"github.com/launchmvp/mailer/internal/db/migrations"
	"github.com/launchmvp/mailer/pkg/config"
	"github.com/launchmvp/mailer/pkg/email"
	"github.com/launchmvp/mailer/pkg/httpserver"
	"github.com/launchmvp/mailer/pkg/logger"
	"github.com/launchmvp/mailer/pkg/metrics"
	"github.com/launchmvp/mailer/pkg/pg"
	"github.com/launchmvp/mailer/pkg/redis"
	"github.com/launchmvp/mailer/pkg/requestid"
	"github.com/launchmvp/mailer/svc/dispatch"
	"github.com/launchmvp/mailer/svc/dispatchlog"
	"github.com/launchmvp/mailer/svc/identity"
)

type appConfig struct {
	Log         logger.Config
	CORSOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	OutboundTTL time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"15s"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("mailer stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	if _, err := os.Stat(".env.local"); err == nil {
		if err := config.LoadEnv(".env.local"); err != nil {
			return err
		}
	}

	app, err := config.Load[appConfig]()
	if err != nil {
		return err
	}
	log := logger.New(
		logger.WithConfig(app.Log, "mailer"),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pgCfg, err := config.Load[pg.Config]()
	if err != nil {
		return err
	}
	redisCfg, err := config.Load[redis.Config]()
	if err != nil {
		return err
	}
	httpCfg, err := config.Load[httpserver.Config]()
	if err != nil {
		return err
	}
	emailCfg, err := config.Load[email.Config]()
	if err != nil {
		return err
	}
	authCfg, err := config.Load[identity.GoTrueConfig]()
	if err != nil {
		return err
	}
	dispatchCfg, err := config.Load[dispatch.Config]()
	if err != nil {
		return err
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if pgCfg.AutoMigrate {
		if err := pg.Migrate(ctx, pool, migrations.FS, pgCfg, log); err != nil {
			return err
		}
	}

	checks := map[string]httpserver.Check{"postgres": pg.Healthcheck(pool)}
	svcOpts := []dispatch.Option{dispatch.WithLogger(log)}

	if redisCfg.Enabled() {
		rdb, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		checks["redis"] = redis.Healthcheck(rdb)
		svcOpts = append(svcOpts, dispatch.WithLocker(redis.NewLocker(rdb, redisCfg.LockPrefix, redisCfg.LockTTL)))
	} else {
		log.Info("redis not configured, dispatch lock disabled")
	}

	outbound := &http.Client{
		Timeout:   app.OutboundTTL,
		Transport: &requestid.Transport{},
	}

	sender, err := email.NewSender(ctx, emailCfg, email.WithHTTPClient(outbound))
	if err != nil {
		return err
	}

	var auth identity.Store
	if authCfg.Enabled() {
		gotrue, err := identity.NewGoTrueStore(authCfg, &http.Client{
			Timeout:   authCfg.Timeout,
			Transport: &requestid.Transport{},
		})
		if err != nil {
			return err
		}
		auth = gotrue
	}
	resolver := identity.NewResolver(identity.NewPostgresStore(pool), auth, identity.WithLogger(log))

	svc := dispatch.NewService(resolver, dispatchlog.NewPostgresLog(pool), sender, dispatchCfg, svcOpts...)
	apiKey := dispatchCfg.ExpectedAPIKey(emailCfg.ResendAPIKey)
	if apiKey == "" {
		log.Warn("no INTERNAL_API_KEY or RESEND_API_KEY set, dispatch endpoint rejects every request")
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(metrics.HTTPMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", dispatch.APIKeyHeader, requestid.Header},
		MaxAge:         300,
	}))

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, 2*time.Second, checks))
	r.Handle("/metrics", metrics.Handler())
	dispatch.NewHTTPHandler(svc, apiKey, dispatchCfg.PreviewEnabled, log).Mount(r)

	log.Info("mailer starting",
		slog.String("addr", httpCfg.Addr),
		logger.Provider(sender.Provider()),
		slog.Bool("preview", dispatchCfg.PreviewEnabled),
	)
	if err := httpserver.New(httpCfg, log).Run(ctx, r); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
