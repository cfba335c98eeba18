// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct-tag parsing and
// github.com/joho/godotenv for optional .env files. Each package of the
// mailer owns its Config struct; the entry points in cmd/ load them once at
// startup and pass the values down explicitly.
//
//	httpCfg, err := config.Load[httpserver.Config]()
//	if err != nil {
//		return err
//	}
//
// Tests can bypass the process environment:
//
//	cfg, err := config.Load[email.Config](config.WithEnvironment(map[string]string{
//		"EMAIL_PROVIDER": "dev",
//	}))
//
// Errors wrap ErrParsingConfig or ErrLoadingEnvFile and can be checked with errors.Is.
package config
