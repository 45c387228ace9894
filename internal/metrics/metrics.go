// Package metrics defines the Prometheus instrumentation for the site.
//
// Metrics are registered on a caller-supplied registerer so tests can use a
// private registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio"

// Contact submission outcomes.
const (
	OutcomeSent     = "sent"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
	OutcomeBusy     = "busy"
	OutcomeInvalid  = "invalid"
	OutcomeLimited  = "limited"
)

type Metrics struct {
	// ContactSubmissions counts contact posts. Labels: outcome.
	ContactSubmissions *prometheus.CounterVec

	// RelayDuration measures relay calls. Labels: result (ok, error).
	RelayDuration *prometheus.HistogramVec

	// ViewRenders counts rendered views. Labels: view (home, project, not-found).
	ViewRenders *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ContactSubmissions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "contact",
			Name:      "submissions_total",
			Help:      "Contact form posts by outcome",
		}, []string{"outcome"}),
		RelayDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "contact",
			Name:      "relay_duration_seconds",
			Help:      "Time spent delivering a contact message to the relay",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"result"}),
		ViewRenders: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "view_renders_total",
			Help:      "Rendered views by kind",
		}, []string{"view"}),
	}
}

func (m *Metrics) Submission(outcome string) {
	m.ContactSubmissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Relay(err error, took time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.RelayDuration.WithLabelValues(result).Observe(took.Seconds())
}

func (m *Metrics) View(view string) {
	m.ViewRenders.WithLabelValues(view).Inc()
}
