package email

// Provider names accepted by EMAIL_PROVIDER.
const (
	ProviderResend   = "resend"
	ProviderPostmark = "postmark"
	ProviderSES      = "ses"
	ProviderDev      = "dev"
)

// Config selects and configures the delivery provider. Only the credentials
// of the selected provider are required.
type Config struct {
	Provider string `env:"EMAIL_PROVIDER" envDefault:"resend"`
	From     string `env:"EMAIL_FROM" envDefault:"LaunchMVP <startup@seanchen.io>"`
	ReplyTo  string `env:"EMAIL_REPLY_TO"`

	ResendAPIKey string `env:"RESEND_API_KEY"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	// Empty AWS keys fall back to the default credential chain.
	AWSRegion          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`

	DevDir string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}
