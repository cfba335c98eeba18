package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// CancellationProps personalizes the cancellation email.
type CancellationProps struct {
	FirstName         string
	IsAccountDeletion bool
	RetentionDays     int
	ResubscribeURL    string
	// EndDate is shown when known, e.g. "March 3, 2026".
	EndDate string
}

var missedFeatures = []string{
	"Production-ready code templates and components",
	"Automatic Stripe & Supabase integration updates",
	"New features and improvements we ship weekly",
}

// DaysRemaining formats the " (N days remaining)" suffix; empty for N <= 0.
func DaysRemaining(days int) string {
	switch {
	case days <= 0:
		return ""
	case days == 1:
		return " (1 day remaining)"
	default:
		return fmt.Sprintf(" (%d days remaining)", days)
	}
}

// Cancellation confirms a cancelled subscription, or a deleted account when
// IsAccountDeletion is set.
func Cancellation(p CancellationProps) templ.Component {
	if p.IsAccountDeletion {
		return accountDeleted(p)
	}

	name := orDefault(p.FirstName, DefaultFirstName)
	preview := fmt.Sprintf("Hey %s, we'd love to have you back! Your subscription can be reactivated anytime.", name)

	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div style="padding:32px;">`)
		h.raw(`<h1 style="color:#0f172b;font-size:26px;font-weight:bold;line-height:34px;margin:0 0 16px 0;">We&#39;ll miss you, `)
		h.text(name)
		h.raw(`!</h1><p style="color:#45556c;font-size:16px;line-height:26px;margin:0 0 16px 0;">Your subscription has been cancelled. You can still use LaunchMVP until the end of your billing period`)
		h.text(DaysRemaining(p.RetentionDays))
		h.raw(`.</p>`)
		if p.EndDate != "" {
			h.raw(`<p style="color:#62748e;font-size:14px;margin:0 0 16px 0;">Access ends on `)
			h.text(p.EndDate)
			h.raw(`.</p>`)
		}

		h.raw(`<div style="background-color:#f8fafc;border-radius:8px;padding:20px;margin:8px 0 24px 0;">`)
		h.raw(`<p style="color:#0f172b;font-size:15px;font-weight:600;margin:0 0 12px 0;">Here&#39;s what you&#39;ll be missing:</p>`)
		checkList(h, missedFeatures, colorPrimary)
		h.raw(`</div>`)

		h.raw(`<div style="text-align:center;padding:8px 0 24px 0;">`)
		h.raw(`<p style="color:#0f172b;font-size:18px;font-weight:600;margin:0 0 6px 0;">Changed your mind?</p>`)
		h.raw(`<p style="color:#45556c;font-size:14px;margin:0 0 16px 0;">Reactivate your subscription with one click - no setup needed.</p>`)
		writeButton(h, p.ResubscribeURL, "Resubscribe Now", ButtonDark)
		h.raw(`</div>`)

		h.raw(`<div style="border-top:1px solid #e2e8f0;padding-top:16px;">`)
		h.raw(`<p style="color:#45556c;font-size:14px;line-height:22px;margin:0 0 8px 0;">We&#39;d love to hear why you&#39;re leaving - your feedback helps us improve!</p>`)
		h.raw(`<p style="color:#45556c;font-size:14px;margin:0;">Just reply to this email or `)
		inlineLink(h, DiscordURL, "join our Discord")
		h.raw(` to share your thoughts.</p></div></div>`)

		h.raw(`<div style="padding:0 32px 24px;text-align:center;"><p style="font-size:13px;margin:0;">`)
		inlineLink(h, IssuesURL, "Report issues")
		h.raw(` • `)
		inlineLink(h, DiscordURL, "Discord community")
		h.raw(` • `)
		inlineLink(h, YouTubeURL, "YouTube tutorials")
		h.raw(`</p></div>`)
		return h.err
	})

	return Layout(preview, body)
}

func accountDeleted(p CancellationProps) templ.Component {
	name := orDefault(p.FirstName, DefaultFirstName)

	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div style="padding:32px;">`)
		h.raw(`<h1 style="color:#0f172b;font-size:26px;font-weight:bold;line-height:34px;margin:0 0 16px 0;">We&#39;re sorry to see you go, `)
		h.text(name)
		h.raw(`</h1><p style="color:#45556c;font-size:16px;line-height:26px;margin:0 0 12px 0;">Your account has been deleted. All your data has been permanently removed.</p>`)
		h.raw(`<p style="color:#45556c;font-size:16px;line-height:26px;margin:0 0 24px 0;">If you ever want to build your next MVP with us, we&#39;ll be here.</p>`)
		h.raw(`<div style="text-align:center;">`)
		writeButton(h, GitHubURL, "Visit GitHub", ButtonDark)
		h.raw(`</div></div>`)
		return h.err
	})

	return Layout("Your account has been deleted.", body)
}
