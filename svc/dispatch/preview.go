package dispatch

import "github.com/a-h/templ"

// PreviewTemplates lists the names accepted by Preview.
var PreviewTemplates = []string{"welcome", "billing", "cancellation"}

func previewPayload(name string, links Links) Payload {
	retention := 14
	switch name {
	case "welcome":
		return &WelcomePayload{UserName: "Sean", DashboardURL: links.DashboardURL}
	case "billing":
		return &BillingPayload{
			FirstName:       "Sean",
			TierName:        "Pro",
			FirstChargeDate: "February 16, 2026",
			DashboardURL:    links.DashboardURL,
			BillingURL:      links.BillingURL,
		}
	case "cancellation":
		return &CancellationPayload{
			FirstName:      "Sean",
			RetentionDays:  &retention,
			ResubscribeURL: links.ResubscribeURL,
		}
	}
	return nil
}

// Preview renders a template with sample data. ok is false for unknown names.
func Preview(name string, links Links) (c templ.Component, ok bool) {
	p := previewPayload(name, links)
	if p == nil {
		return nil, false
	}
	c, err := Component(p, links)
	return c, err == nil
}
