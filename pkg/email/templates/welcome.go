package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// WelcomeProps personalizes the signup email.
type WelcomeProps struct {
	FirstName    string
	DashboardURL string
}

var onboardingSteps = [3][2]string{
	{"Set up your project", "Configure Supabase and Stripe with your API keys."},
	{"Customize your app", "Update branding, pricing, and features to match your vision."},
	{"Deploy & launch", "Ship to production with one click using Vercel."},
}

// Welcome is sent once after signup.
func Welcome(p WelcomeProps) templ.Component {
	name := orDefault(p.FirstName, DefaultFirstName)

	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div style="padding:30px 32px 12px;text-align:center;">`)
		h.raw(`<h1 style="color:#0f172b;font-size:32px;font-weight:bold;line-height:40px;margin:0 0 12px 0;">Welcome to LaunchMVP 👋</h1>`)
		h.raw(`<p style="color:#45556c;font-size:18px;line-height:29px;margin:0 auto;max-width:480px;">Hey `)
		h.text(name)
		h.raw(`! You&#39;re now ready to build your production-ready app with Next.js, Supabase, and Stripe.</p></div>`)

		h.raw(`<div style="padding:24px 32px;text-align:center;">`)
		writeButton(h, p.DashboardURL, "Go to Dashboard →", ButtonPrimary)
		h.raw(`<div style="height:12px;"></div>`)
		writeButton(h, TutorialURL, "Watch Tutorial Video", ButtonSecondary)
		h.raw(`<div style="height:12px;"></div>`)
		writeButton(h, GitHubURL, "⭐ Star on GitHub", ButtonSecondary)
		h.raw(`</div>`)

		h.raw(`<div style="padding:20px 24px 24px;">`)
		h.raw(`<h2 style="color:#0f172b;font-size:20px;font-weight:600;line-height:30px;margin:0 0 24px 0;text-align:center;">Get started in 3 steps</h2>`)
		h.raw(`<table role="presentation" width="100%" style="table-layout:fixed;"><tr>`)
		for i, step := range onboardingSteps {
			h.raw(`<td style="padding:0 8px;text-align:center;vertical-align:top;width:33.33%;">`)
			h.raw(`<div style="background-color:rgba(99,102,241,0.1);border-radius:50%;color:` + colorPrimary + `;display:inline-block;font-size:18px;font-weight:700;height:48px;line-height:48px;margin-bottom:8px;width:48px;">`)
			h.raw(strconv.Itoa(i + 1))
			h.raw(`</div><p style="color:#0f172b;font-size:14px;font-weight:500;margin:0 0 4px 0;">`)
			h.text(step[0])
			h.raw(`</p><p style="color:#62748e;font-size:12px;line-height:18px;margin:0;">`)
			h.text(step[1])
			h.raw(`</p></td>`)
		}
		h.raw(`</tr></table></div>`)

		h.raw(`<div style="background-color:` + colorDark + `;border-radius:10px;padding:24px 32px;margin:0 auto 24px auto;max-width:536px;">`)
		h.raw(`<p style="color:#ffffff;font-size:15px;line-height:24px;margin:0 0 16px 0;text-align:center;">&ldquo;The best time to launch was yesterday. The second best time is today.&rdquo;</p>`)
		h.raw(`<hr style="border-color:rgba(255,255,255,0.2);margin:16px 0;">`)
		h.raw(`<p style="color:#ffffff;font-size:16px;font-weight:600;margin:0;text-align:center;">Sean Chen</p>`)
		h.raw(`<p style="color:#cad5e2;font-size:14px;margin:0;text-align:center;">Creator of LaunchMVP</p></div>`)
		return h.err
	})

	return Layout("Welcome! Start building your MVP in minutes.", body)
}
