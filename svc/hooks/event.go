package hooks

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Supabase database webhook operations.
const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// Event is a Supabase database webhook payload.
type Event struct {
	Type      string          `json:"type"`
	Table     string          `json:"table"`
	Schema    string          `json:"schema"`
	Record    json.RawMessage `json:"record"`
	OldRecord json.RawMessage `json:"old_record"`
}

// UserRow is the subset of a users row read by the welcome hook.
type UserRow struct {
	ID              string         `json:"id"`
	Email           string         `json:"email"`
	RawUserMetaData map[string]any `json:"raw_user_meta_data"`
}

// SubscriptionRow is the subset of a subscriptions row read by the
// billing and cancellation hooks.
type SubscriptionRow struct {
	ID                   string `json:"id"`
	UserID               string `json:"user_id"`
	StripeSubscriptionID string `json:"stripe_subscription_id"`
	Status               string `json:"status"`
	Tier                 string `json:"tier"`
	CancelAtPeriodEnd    *bool  `json:"cancel_at_period_end"`
	CurrentPeriodEnd     string `json:"current_period_end"`
}

func decodeRow(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return fmt.Errorf("missing record")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05.999999-07:00",
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02",
}

// parseTimestamp accepts the timestamp renderings Postgres and Supabase emit.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
