package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mailer"

var (
	// dispatchTotal counts dispatch requests by final outcome.
	// Labels:
	// - email_type: "welcome", "billing_confirmation", "cancellation"
	// - outcome:    "sent", "duplicate", "failed", "invalid", "not_found", "error"
	dispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "requests_total",
			Help:      "Total number of email dispatch requests by outcome.",
		},
		[]string{"email_type", "outcome"},
	)

	// deliveryDuration observes provider call latency.
	// Labels:
	// - provider: "postmark", "resend", "ses", "dev"
	// - status:   "success" or "failure"
	deliveryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "delivery",
			Name:      "duration_seconds",
			Help:      "Duration of calls to the email delivery provider.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider", "status"},
	)

	// identityLookups counts user lookups per store.
	// Labels:
	// - store:  "primary" or "auth"
	// - result: "found", "no_email", "error"
	identityLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "identity",
			Name:      "lookups_total",
			Help:      "Total number of identity lookups by store and result.",
		},
		[]string{"store", "result"},
	)

	// hookEvents counts database change events received by the hook adapters.
	// Labels:
	// - hook:   "welcome", "billing", "cancellation"
	// - result: "ignored", "sent", "duplicate", "failed", "error"
	hookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hooks",
			Name:      "events_total",
			Help:      "Total number of database webhook events by result.",
		},
		[]string{"hook", "result"},
	)
)

// IncDispatch increments the dispatch counter.
func IncDispatch(emailType, outcome string) {
	dispatchTotal.WithLabelValues(orUnknown(emailType), orUnknown(outcome)).Inc()
}

// ObserveDelivery records the latency of one provider call.
func ObserveDelivery(provider string, success bool, d time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	deliveryDuration.WithLabelValues(orUnknown(provider), status).Observe(d.Seconds())
}

// IncIdentityLookup increments the identity lookup counter.
func IncIdentityLookup(store, result string) {
	identityLookups.WithLabelValues(orUnknown(store), orUnknown(result)).Inc()
}

// IncHookEvent increments the hook event counter.
func IncHookEvent(hook, result string) {
	hookEvents.WithLabelValues(orUnknown(hook), orUnknown(result)).Inc()
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
