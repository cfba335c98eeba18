package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// BillingProps personalizes the billing confirmation email.
type BillingProps struct {
	FirstName       string
	FirstChargeDate string
	TierName        string
	DashboardURL    string
	BillingURL      string
}

// Billing confirms a new subscription and lists what the tier unlocks.
func Billing(p BillingProps) templ.Component {
	name := orDefault(p.FirstName, DefaultFirstName)
	tier := orDefault(p.TierName, DefaultTierName)
	chargeDate := orDefault(p.FirstChargeDate, DefaultChargeDate)
	benefits := TierBenefits(tier)

	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div style="padding:30px 32px 12px;text-align:center;">`)
		h.raw(`<div style="background-color:` + colorSuccess + `;border-radius:50%;color:#ffffff;display:inline-block;font-size:28px;height:56px;line-height:56px;width:56px;">✓</div>`)
		h.raw(`<h1 style="color:#0f172b;font-size:28px;font-weight:bold;line-height:36px;margin:16px 0 12px 0;">Welcome to LaunchMVP `)
		h.text(tier)
		h.raw(`!</h1><p style="color:#45556c;font-size:16px;line-height:26px;margin:0;">Hey `)
		h.text(name)
		h.raw(`, your payment method has been added successfully.</p></div>`)

		h.raw(`<div style="padding:12px 32px 24px;">`)
		h.raw(`<div style="background-color:#f0fdf4;border:1px solid #b9f8cf;border-radius:8px;padding:16px 20px;margin-bottom:24px;">`)
		h.raw(`<p style="color:#0f172b;font-size:15px;font-weight:600;margin:0 0 6px 0;">Your first charge will be on `)
		h.text(chargeDate)
		h.raw(`</p><p style="color:#45556c;font-size:13px;line-height:20px;margin:0;">You won&#39;t be charged until the end of your trial period. You&#39;ll receive a reminder 3 days before your first payment.</p></div>`)

		h.raw(`<p style="color:#0f172b;font-size:16px;font-weight:600;margin:0 0 12px 0;">What&#39;s unlocked with `)
		h.text(tier)
		h.raw(`:</p>`)
		checkList(h, benefits, colorSuccess)

		h.raw(`<div style="padding:16px 0;text-align:center;">`)
		writeButton(h, p.DashboardURL, "Go to dashboard", ButtonDark)
		h.raw(`</div>`)

		h.raw(`<div style="border-top:1px solid #e2e8f0;padding-top:16px;text-align:center;">`)
		h.raw(`<p style="color:#0f172b;font-size:14px;font-weight:600;margin:0 0 6px 0;">You&#39;re in control</p>`)
		h.raw(`<p style="font-size:13px;margin:0;">`)
		inlineLink(h, p.DashboardURL, "View dashboard")
		h.raw(` • `)
		inlineLink(h, p.BillingURL, "Manage billing")
		h.raw(`</p></div></div>`)

		h.raw(`<div style="background-color:#f8fafc;padding:20px 32px;text-align:center;">`)
		h.raw(`<p style="color:#0f172b;font-size:14px;font-weight:600;margin:0 0 6px 0;">Questions about billing?</p>`)
		h.raw(`<p style="font-size:13px;margin:0;">`)
		inlineLink(h, IssuesURL, "Open an issue")
		h.raw(` • `)
		inlineLink(h, DiscordURL, "Join Discord")
		h.raw(`</p></div>`)
		return h.err
	})

	return Layout("Welcome to LaunchMVP "+tier+"! Your billing is set up.", body)
}

func inlineLink(h *htmlWriter, url, label string) {
	h.raw(`<a href="`)
	h.href(url)
	h.raw(`" style="color:` + colorPrimary + `;text-decoration:none;">`)
	h.text(label)
	h.raw(`</a>`)
}
