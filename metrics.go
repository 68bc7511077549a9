package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NikhilKanaujia/portfolio/internal/contact"
	"github.com/NikhilKanaujia/portfolio/internal/relay"
)

type metrics struct {
	submissions  *prometheus.CounterVec
	ignored      prometheus.Counter
	relayLatency *prometheus.HistogramVec
	sessions     prometheus.GaugeFunc
}

func newMetrics(reg prometheus.Registerer, activeSessions func() float64) *metrics {
	m := &metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Contact form submissions by final status.",
		}, []string{"status"}),
		ignored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contact_submissions_ignored_total",
			Help: "Submits dropped because one was already in flight.",
		}),
		relayLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contact_relay_request_duration_seconds",
			Help:    "Time spent waiting on the form relay.",
			Buckets: prometheus.DefBuckets,
		}, []string{"result"}),
		sessions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "contact_sessions_active",
			Help: "Contact form controllers currently held in memory.",
		}, activeSessions),
	}
	reg.MustRegister(m.submissions, m.ignored, m.relayLatency, m.sessions)
	return m
}

func (m *metrics) observeSubmit(st contact.Status, started bool) {
	if !started {
		m.ignored.Inc()
		return
	}
	m.submissions.WithLabelValues(st.Kind.String()).Inc()
}

// timedSender records relay latency around another sender.
type timedSender struct {
	next    contact.Sender
	latency *prometheus.HistogramVec
}

func (t timedSender) Send(ctx context.Context, sub relay.Submission) (relay.Reply, error) {
	start := time.Now()
	reply, err := t.next.Send(ctx, sub)

	result := "ok"
	switch {
	case err == nil:
	case relay.IsTransport(err):
		result = "transport_error"
	default:
		result = "rejected"
	}
	t.latency.WithLabelValues(result).Observe(time.Since(start).Seconds())
	return reply, err
}
