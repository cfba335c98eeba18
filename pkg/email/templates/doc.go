// Package templates renders the LaunchMVP transactional emails as templ
// components: Welcome, Billing and Cancellation, all wrapped in Layout.
//
//	html, err := templates.Render(ctx, templates.Welcome(templates.WelcomeProps{
//		FirstName:    "Jane",
//		DashboardURL: "https://app.example.com/dashboard",
//	}))
//
// Rendering is pure. Text is HTML-escaped and links pass through templ's URL
// sanitizer. Tier benefits come from the embedded tiers.yaml.
package templates
