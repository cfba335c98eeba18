package dispatch

import "strings"

// Config holds the dispatch endpoint settings.
type Config struct {
	// InternalAPIKey is the expected X-API-Key value. When empty the
	// Resend API key is used instead.
	InternalAPIKey string `env:"INTERNAL_API_KEY"`
	AppURL         string `env:"APP_URL" envDefault:"https://my-full-stack-app-iota.vercel.app"`
	PreviewEnabled bool   `env:"EMAIL_PREVIEW_ENABLED" envDefault:"true"`
}

// ExpectedAPIKey returns the key callers must present.
func (c Config) ExpectedAPIKey(resendAPIKey string) string {
	if c.InternalAPIKey != "" {
		return c.InternalAPIKey
	}
	return resendAPIKey
}

// Links are the application URLs used when a payload omits them.
type Links struct {
	DashboardURL   string
	BillingURL     string
	ResubscribeURL string
}

// Links derives the default links from AppURL.
func (c Config) Links() Links {
	base := strings.TrimRight(c.AppURL, "/")
	return Links{
		DashboardURL:   base + "/dashboard",
		BillingURL:     base + "/profile",
		ResubscribeURL: base + "/pay",
	}
}
