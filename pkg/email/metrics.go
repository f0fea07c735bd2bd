package email

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type instrumented struct {
	next     EmailSender
	provider string
	sent     *prometheus.CounterVec
	latency  prometheus.Histogram
}

// Instrument wraps next with send counters and a latency histogram
// registered on reg under the given namespace.
func Instrument(next EmailSender, reg prometheus.Registerer, namespace, provider string) EmailSender {
	s := &instrumented{
		next:     next,
		provider: provider,
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "email",
			Name:      "sent_total",
			Help:      "Emails handed to the provider, by outcome.",
		}, []string{"provider", "outcome"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "email",
			Name:      "send_duration_seconds",
			Help:      "Time spent sending one email.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
	}
	reg.MustRegister(s.sent, s.latency)
	return s
}

func (s *instrumented) SendEmail(ctx context.Context, params SendEmailParams) error {
	start := time.Now()
	err := s.next.SendEmail(ctx, params)
	s.latency.Observe(time.Since(start).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.sent.WithLabelValues(s.provider, outcome).Inc()
	return err
}
