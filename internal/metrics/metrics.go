// Package metrics exposes Prometheus instruments for dashboard renders and
// summary generation.
package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aurora_inventory"

// Metrics exposes application-level instruments.
type Metrics struct {
	registry       *prometheus.Registry
	renders        *prometheus.CounterVec
	summaries      *prometheus.CounterVec
	summaryLatency *prometheus.HistogramVec
}

// New registers the instruments on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Dashboard views served, by view.",
		}, []string{"view"}),
		summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summaries_total",
			Help:      "Narrative summaries produced, by source and failure reason.",
		}, []string{"source", "reason"}),
		summaryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "summary_duration_seconds",
			Help:      "Time to produce a narrative summary.",
			Buckets:   []float64{0.05, 0.25, 1, 2.5, 5, 10, 20, 30},
		}, []string{"source"}),
	}

	registry.MustRegister(m.renders, m.summaries, m.summaryLatency)
	return m
}

// RecordRender counts one served view.
func (m *Metrics) RecordRender(view string) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(strings.TrimSpace(view)).Inc()
}

// RecordSummary counts a summary outcome and observes its latency.
func (m *Metrics) RecordSummary(source, reason string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "none"
	}
	m.summaries.WithLabelValues(source, reason).Inc()
	m.summaryLatency.WithLabelValues(source).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
