package hooks

import (
	"encoding/json"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/launchmvp/mailer/svc/dispatch"
)

const (
	defaultFirstName     = "there"
	defaultTierName      = "Starter"
	defaultChargeDate    = "your next billing date"
	defaultRetentionDays = 30
	chargeDateLayout     = "January 2, 2006"
)

var upper = cases.Upper(language.English)

// Translation is the result of mapping an event. A non-empty Ignore means
// the event is acknowledged without dispatching.
type Translation struct {
	Body   dispatch.SendBody
	Ignore string
}

// Adapter maps a database event onto a dispatch request.
type Adapter func(ev Event, cfg Config) (Translation, error)

// WelcomeFromEvent builds a welcome dispatch for an INSERT on users.
func WelcomeFromEvent(ev Event, cfg Config) (Translation, error) {
	if ev.Type != OpInsert || ev.Table != "users" {
		return Translation{Ignore: "Not a signup event"}, nil
	}

	var row UserRow
	if err := decodeRow(ev.Record, &row); err != nil {
		return Translation{}, err
	}

	data, err := json.Marshal(dispatch.WelcomePayload{
		FirstName:    signupFirstName(row.RawUserMetaData),
		DashboardURL: cfg.DashboardURL(),
	})
	if err != nil {
		return Translation{}, err
	}
	return Translation{Body: dispatch.SendBody{
		Type:   string(dispatch.EmailWelcome),
		To:     row.Email,
		UserID: row.ID,
		Data:   data,
	}}, nil
}

// BillingFromEvent builds a billing confirmation for an INSERT on subscriptions.
func BillingFromEvent(ev Event, _ Config) (Translation, error) {
	if ev.Type != OpInsert || ev.Table != "subscriptions" {
		return Translation{Ignore: "Not a new subscription event"}, nil
	}

	var row SubscriptionRow
	if err := decodeRow(ev.Record, &row); err != nil {
		return Translation{}, err
	}

	chargeDate := defaultChargeDate
	if end, ok := parseTimestamp(row.CurrentPeriodEnd); ok {
		chargeDate = end.UTC().Format(chargeDateLayout)
	}

	data, err := json.Marshal(dispatch.BillingPayload{
		TierName:        TierName(row.Tier),
		FirstChargeDate: chargeDate,
	})
	if err != nil {
		return Translation{}, err
	}
	return Translation{Body: dispatch.SendBody{
		Type:   string(dispatch.EmailBillingConfirmation),
		UserID: row.UserID,
		Data:   data,
	}}, nil
}

// CancellationFromEvent builds a cancellation email for an UPDATE on
// subscriptions that cancels it now or at period end.
func CancellationFromEvent(now func() time.Time) Adapter {
	return func(ev Event, _ Config) (Translation, error) {
		if ev.Type != OpUpdate || ev.Table != "subscriptions" {
			return Translation{Ignore: "Not a subscription update event"}, nil
		}

		var row SubscriptionRow
		if err := decodeRow(ev.Record, &row); err != nil {
			return Translation{}, err
		}
		var old SubscriptionRow
		if len(ev.OldRecord) > 0 && string(ev.OldRecord) != "null" {
			if err := decodeRow(ev.OldRecord, &old); err != nil {
				return Translation{}, err
			}
		}

		if !IsCancellation(row, old) {
			return Translation{Ignore: "Not a cancellation event"}, nil
		}

		payload := dispatch.CancellationPayload{IsAccountDeletion: false}
		var periodEnd *time.Time
		if end, ok := parseTimestamp(row.CurrentPeriodEnd); ok {
			periodEnd = &end
			payload.EndDate = end.UTC().Format(chargeDateLayout)
		}
		days := RetentionDays(periodEnd, now())
		payload.RetentionDays = &days

		data, err := json.Marshal(payload)
		if err != nil {
			return Translation{}, err
		}
		return Translation{Body: dispatch.SendBody{
			Type:   string(dispatch.EmailCancellation),
			UserID: row.UserID,
			Data:   data,
		}}, nil
	}
}

// IsCancellation reports a status change to canceled/cancelled or a
// cancel_at_period_end flip from false to true.
func IsCancellation(row, old SubscriptionRow) bool {
	switch strings.ToLower(row.Status) {
	case "canceled", "cancelled":
		return true
	}
	return row.CancelAtPeriodEnd != nil && *row.CancelAtPeriodEnd &&
		old.CancelAtPeriodEnd != nil && !*old.CancelAtPeriodEnd
}

// RetentionDays is the number of whole days, rounded up, until periodEnd.
// It is never negative and defaults to 30 when periodEnd is unknown.
func RetentionDays(periodEnd *time.Time, now time.Time) int {
	if periodEnd == nil {
		return defaultRetentionDays
	}
	days := math.Ceil(periodEnd.Sub(now).Hours() / 24)
	return int(math.Max(0, days))
}

// TierName upper-cases the first letter of tier, defaulting to Starter.
func TierName(tier string) string {
	tier = strings.TrimSpace(tier)
	if tier == "" {
		return defaultTierName
	}
	_, size := utf8.DecodeRuneInString(tier)
	return upper.String(tier[:size]) + tier[size:]
}

func signupFirstName(meta map[string]any) string {
	if v, _ := meta["firstName"].(string); strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if v, _ := meta["full_name"].(string); v != "" {
		if fields := strings.Fields(v); len(fields) > 0 {
			return fields[0]
		}
	}
	return defaultFirstName
}
