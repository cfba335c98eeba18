package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DevSender writes each message to disk as an .html body plus a .json
// envelope instead of delivering it.
type DevSender struct {
	dir  string
	from string
	now  func() time.Time
}

func NewDevSender(cfg Config) (*DevSender, error) {
	if cfg.DevDir == "" {
		return nil, fmt.Errorf("%w: EMAIL_DEV_DIR is required", ErrInvalidConfig)
	}
	return &DevSender{dir: cfg.DevDir, from: cfg.From, now: time.Now}, nil
}

func (d *DevSender) Provider() string { return ProviderDev }

type devEnvelope struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	From      string `json:"from"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
}

func (d *DevSender) Send(ctx context.Context, msg Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create directory: %v", ErrFailedToSendEmail, err)
	}

	id := "dev-" + uuid.NewString()
	now := d.now()

	name := msg.Tag
	if name == "" {
		name = msg.Subject
	}
	base := fmt.Sprintf("%s_%s_%s", now.Format("2006_01_02_150405"), sanitizeFilename(name), id[4:12])

	if err := os.WriteFile(filepath.Join(d.dir, base+".html"), []byte(msg.HTML), 0o644); err != nil {
		return "", fmt.Errorf("%w: write html: %v", ErrFailedToSendEmail, err)
	}

	env, err := json.MarshalIndent(devEnvelope{
		ID:        id,
		Timestamp: now.Format(time.RFC3339),
		From:      d.from,
		To:        msg.To,
		Subject:   msg.Subject,
		Tag:       msg.Tag,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: marshal envelope: %v", ErrFailedToSendEmail, err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, base+".json"), env, 0o644); err != nil {
		return "", fmt.Errorf("%w: write envelope: %v", ErrFailedToSendEmail, err)
	}

	return id, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeFilenameChars.ReplaceAllString(s, "")
	if len(s) > 64 {
		s = s[:64]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
