package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const (
	colorPrimary = "#6366f1"
	colorDark    = "#0f172a"
	colorSuccess = "#00a63e"
	fontStack    = "'Poppins', 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif"
)

// Public links shown in every email.
const (
	GitHubURL   = "https://github.com/ShenSeanChen/launch-mvp-stripe-nextjs-supabase"
	IssuesURL   = GitHubURL + "/issues"
	YouTubeURL  = "https://www.youtube.com/@SeanAIStories"
	TutorialURL = "https://www.youtube.com/watch?v=ad1BxZufer8"
	TwitterURL  = "https://x.com/ShenSeanChen"
	DiscordURL  = "https://discord.gg/TKKPzZheua"
)

// Layout wraps body in the shared header and footer. previewText is the
// hidden inbox snippet.
func Layout(previewText string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<meta name="x-apple-disable-message-reformatting"></head>`)
		h.raw(`<body style="background-color:#f8fafc;font-family:` + fontStack + `;margin:0;padding:40px 0;">`)
		h.raw(`<div style="display:none;max-height:0;overflow:hidden;">`)
		h.text(previewText)
		h.raw(`</div>`)
		h.raw(`<table role="presentation" align="center" width="100%" style="background-color:#ffffff;border:1px solid #e2e8f0;border-radius:8px;margin:0 auto;max-width:600px;">`)
		h.raw(`<tr><td style="border-bottom:1px solid #e2e8f0;padding:24px 32px;">`)
		h.raw(`<p style="color:` + colorPrimary + `;font-size:24px;font-weight:700;letter-spacing:-0.5px;margin:0;">🚀 LaunchMVP</p>`)
		h.raw(`</td></tr><tr><td>`)
		if h.err != nil {
			return h.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</td></tr>`)
		h.raw(`<tr><td style="background-color:#f8fafc;border-top:1px solid #f1f5f9;padding:24px 32px;text-align:center;">`)
		h.raw(`<p style="color:#90a1b9;font-size:12px;margin:0 0 8px 0;">LaunchMVP • Built with Next.js, Supabase &amp; Stripe</p>`)
		h.raw(`<p style="color:#62748e;font-size:12px;margin:0;">`)
		footerLink(h, GitHubURL, "GitHub")
		h.raw(` • `)
		footerLink(h, YouTubeURL, "YouTube")
		h.raw(` • `)
		footerLink(h, TwitterURL, "X/Twitter")
		h.raw(`</p></td></tr></table></body></html>`)
		return h.err
	})
}

func footerLink(h *htmlWriter, url, label string) {
	h.raw(`<a href="`)
	h.href(url)
	h.raw(`" style="color:` + colorPrimary + `;text-decoration:none;">`)
	h.text(label)
	h.raw(`</a>`)
}

// ButtonVariant selects the call-to-action style.
type ButtonVariant int

const (
	ButtonPrimary ButtonVariant = iota
	ButtonSecondary
	ButtonDark
)

func (v ButtonVariant) style() string {
	switch v {
	case ButtonSecondary:
		return "background-color:#ffffff;border:2px solid #e2e8f0;color:#314158;"
	case ButtonDark:
		return "background-color:" + colorDark + ";border:2px solid " + colorDark + ";color:#ffffff;"
	default:
		return "background-color:" + colorPrimary + ";border:2px solid " + colorPrimary + ";color:#ffffff;"
	}
}

// Button renders an email-safe link styled as a button.
func Button(href, label string, variant ButtonVariant) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		writeButton(h, href, label, variant)
		return h.err
	})
}

func writeButton(h *htmlWriter, href, label string, variant ButtonVariant) {
	h.raw(`<a href="`)
	h.href(href)
	h.raw(`" style="border-radius:8px;display:inline-block;font-size:15px;font-weight:600;line-height:1;padding:14px 28px;text-align:center;text-decoration:none;width:220px;box-sizing:border-box;`)
	h.raw(variant.style())
	h.raw(`">`)
	h.text(label)
	h.raw(`</a>`)
}

func checkList(h *htmlWriter, items []string, iconColor string) {
	for _, item := range items {
		h.raw(`<table role="presentation" style="margin:0 0 10px 0;"><tr>`)
		h.raw(`<td style="width:28px;vertical-align:top;"><span style="color:` + iconColor + `;font-weight:700;">✓</span></td>`)
		h.raw(`<td><p style="color:#314158;font-size:14px;line-height:21px;margin:0;">`)
		h.text(item)
		h.raw(`</p></td></tr></table>`)
	}
}
