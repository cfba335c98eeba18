package dispatch

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/launchmvp/mailer/pkg/email/templates"
)

// defaultRetentionDays applies when a cancellation payload has no retention.
const defaultRetentionDays = 30

// Component maps a payload onto its template. Empty links fall back to links.
func Component(p Payload, links Links) (templ.Component, error) {
	switch v := p.(type) {
	case *WelcomePayload:
		name := v.FirstName
		if name == "" {
			name = v.UserName
		}
		return templates.Welcome(templates.WelcomeProps{
			FirstName:    name,
			DashboardURL: orDefault(v.DashboardURL, links.DashboardURL),
		}), nil

	case *BillingPayload:
		return templates.Billing(templates.BillingProps{
			FirstName:       v.FirstName,
			FirstChargeDate: v.FirstChargeDate,
			TierName:        v.TierName,
			DashboardURL:    orDefault(v.DashboardURL, links.DashboardURL),
			BillingURL:      orDefault(v.BillingURL, links.BillingURL),
		}), nil

	case *CancellationPayload:
		days := defaultRetentionDays
		if v.RetentionDays != nil {
			days = *v.RetentionDays
		}
		return templates.Cancellation(templates.CancellationProps{
			FirstName:         v.FirstName,
			IsAccountDeletion: v.IsAccountDeletion,
			RetentionDays:     days,
			ResubscribeURL:    orDefault(v.ResubscribeURL, links.ResubscribeURL),
			EndDate:           v.EndDate,
		}), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownEmailType, p)
}

// Render produces the subject and HTML body for p.
func Render(ctx context.Context, p Payload, links Links) (subject, html string, err error) {
	c, err := Component(p, links)
	if err != nil {
		return "", "", err
	}
	html, err = templates.Render(ctx, c)
	if err != nil {
		return "", "", fmt.Errorf("render %s email: %w", p.EmailType(), err)
	}
	return Subject(p), html, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
