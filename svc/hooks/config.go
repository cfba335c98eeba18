package hooks

import (
	"strings"
	"time"
)

// Config holds the hook receiver settings.
type Config struct {
	AppURL string `env:"APP_URL" envDefault:"https://my-full-stack-app-iota.vercel.app"`
	// DispatchURL defaults to {AppURL}/api/email/send.
	DispatchURL    string `env:"HOOKS_DISPATCH_URL"`
	InternalAPIKey string `env:"INTERNAL_API_KEY"`
	ResendAPIKey   string `env:"RESEND_API_KEY"`
	// Secret, when set, must be presented as "Authorization: Bearer <secret>".
	Secret           string        `env:"HOOKS_SECRET"`
	Timeout          time.Duration `env:"HOOKS_DISPATCH_TIMEOUT" envDefault:"10s"`
	MaxRetries       int           `env:"HOOKS_DISPATCH_MAX_RETRIES" envDefault:"0"`
	BreakerThreshold int           `env:"HOOKS_BREAKER_THRESHOLD" envDefault:"5"`
	BreakerCooldown  time.Duration `env:"HOOKS_BREAKER_COOLDOWN" envDefault:"30s"`
}

// Endpoint returns the dispatch endpoint URL.
func (c Config) Endpoint() string {
	if c.DispatchURL != "" {
		return c.DispatchURL
	}
	return strings.TrimRight(c.AppURL, "/") + "/api/email/send"
}

// APIKey returns the key sent as X-API-Key.
func (c Config) APIKey() string {
	if c.InternalAPIKey != "" {
		return c.InternalAPIKey
	}
	return c.ResendAPIKey
}

// DashboardURL is the link placed in welcome emails.
func (c Config) DashboardURL() string {
	return strings.TrimRight(c.AppURL, "/") + "/dashboard"
}
