package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GoTrueConfig configures access to the Supabase auth admin API.
type GoTrueConfig struct {
	URL            string        `env:"SUPABASE_URL"`
	ServiceRoleKey string        `env:"SUPABASE_SERVICE_ROLE_KEY"`
	Timeout        time.Duration `env:"SUPABASE_TIMEOUT" envDefault:"5s"`
}

// Enabled reports whether the auth store is configured.
func (c GoTrueConfig) Enabled() bool {
	return c.URL != "" && c.ServiceRoleKey != ""
}

// GoTrueStore reads users from the Supabase auth admin API.
type GoTrueStore struct {
	baseURL string
	key     string
	client  *http.Client
}

// NewGoTrueStore creates a GoTrueStore. A nil client gets one with cfg.Timeout.
func NewGoTrueStore(cfg GoTrueConfig, client *http.Client) (*GoTrueStore, error) {
	if !cfg.Enabled() {
		return nil, errors.New("identity: SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required")
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return nil, fmt.Errorf("identity: invalid SUPABASE_URL: %w", err)
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &GoTrueStore{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		key:     cfg.ServiceRoleKey,
		client:  client,
	}, nil
}

type gotrueUser struct {
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

func (s *GoTrueStore) Lookup(ctx context.Context, userID string) (*UserRecord, error) {
	endpoint := s.baseURL + "/auth/v1/admin/users/" + url.PathEscape(userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Join(ErrLookupFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("apikey", s.key)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Join(ErrLookupFailed, fmt.Errorf("auth admin api: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))))
	}

	var u gotrueUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, errors.Join(ErrLookupFailed, fmt.Errorf("decode auth user: %w", err))
	}

	rec := &UserRecord{Email: u.Email, Metadata: u.UserMetadata}
	rec.DisplayName = metaString(u.UserMetadata, "full_name")
	if rec.DisplayName == "" {
		rec.DisplayName = metaString(u.UserMetadata, "name")
	}
	return rec, nil
}
