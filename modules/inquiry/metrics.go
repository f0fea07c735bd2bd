package inquiry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts submissions and validation failures. A nil *Metrics
// records nothing.
type Metrics struct {
	submissions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics registers the inquiry collectors on reg.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inquiry",
			Name:      "submissions_total",
			Help:      "Form submissions, by form and outcome.",
		}, []string{"form", "outcome"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inquiry",
			Name:      "validation_failures_total",
			Help:      "Fields rejected on submit, by form and field.",
		}, []string{"form", "field"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "inquiry",
			Name:      "submit_duration_seconds",
			Help:      "Time spent delivering one submission.",
			Buckets:   []float64{.1, .25, .5, 1, 2, 3, 5, 10},
		}, []string{"form"}),
	}
	reg.MustRegister(m.submissions, m.failures, m.duration)
	return m
}

const (
	outcomeSent    = "sent"
	outcomeInvalid = "invalid"
	outcomeFailed  = "failed"
)

func (m *Metrics) invalid(form string, fields []string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(form, outcomeInvalid).Inc()
	for _, f := range fields {
		m.failures.WithLabelValues(form, f).Inc()
	}
}

func (m *Metrics) delivered(form string, err error, took time.Duration) {
	if m == nil {
		return
	}
	outcome := outcomeSent
	if err != nil {
		outcome = outcomeFailed
	}
	m.submissions.WithLabelValues(form, outcome).Inc()
	m.duration.WithLabelValues(form).Observe(took.Seconds())
}
