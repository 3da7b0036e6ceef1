// Package metrics exposes Prometheus collectors for the contact flow.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Contact submission outcomes.
const (
	OutcomeDelivered     = "delivered"
	OutcomeNotConfigured = "not_configured"
	OutcomeInvalidInput  = "invalid_input"
	OutcomeProviderError = "provider_error"
	OutcomeFallback      = "fallback"
)

// ContactMetrics counts contact submissions and times provider calls.
// A nil *ContactMetrics is valid and records nothing.
type ContactMetrics struct {
	submissionsTotal *prometheus.CounterVec
	sendDuration     *prometheus.HistogramVec
}

// NewContactMetrics registers the collectors on reg, or on the default
// registerer when reg is nil.
func NewContactMetrics(reg prometheus.Registerer) *ContactMetrics {
	m := &ContactMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "contact",
			Name:      "submissions_total",
			Help:      "Total contact form submissions by outcome",
		}, []string{"outcome"}),
		sendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "portfolio",
			Subsystem: "contact",
			Name:      "send_duration_seconds",
			Help:      "Latency of email provider calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.sendDuration)
	return m
}

// ObserveSubmission counts one submission with the given outcome.
func (m *ContactMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveSend records the duration of one provider call.
func (m *ContactMetrics) ObserveSend(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.sendDuration.WithLabelValues(outcome).Observe(seconds)
}
