package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles Prometheus collectors for the gateway.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	Registry       *prometheus.Registry
	ScrapesTotal   *prometheus.CounterVec
	ScrapeDuration *prometheus.HistogramVec
	SessionsOpen   prometheus.Gauge
	StreamEvents   *prometheus.CounterVec
}

// New constructs and registers all metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	scrapes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagelens_scrapes_total",
			Help: "Scrape requests by profile and outcome code.",
		},
		[]string{"profile", "outcome"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pagelens_scrape_duration_seconds",
			Help:    "End-to-end scrape latency by profile.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 90, 120},
		},
		[]string{"profile"},
	)
	sessions := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pagelens_sessions_open",
			Help: "Remote browser sessions currently held.",
		},
	)
	events := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagelens_stream_events_total",
			Help: "Stream events written to callers by type.",
		},
		[]string{"type"},
	)

	registry.MustRegister(scrapes, duration, sessions, events)

	return &Metrics{
		Registry:       registry,
		ScrapesTotal:   scrapes,
		ScrapeDuration: duration,
		SessionsOpen:   sessions,
		StreamEvents:   events,
	}
}

// ObserveScrape records the outcome and latency of one scrape.
// outcome is "ok" or an error code.
func (m *Metrics) ObserveScrape(profile, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.ScrapesTotal.WithLabelValues(profile, outcome).Inc()
	m.ScrapeDuration.WithLabelValues(profile).Observe(d.Seconds())
}

// SessionOpened increments the open sessions gauge.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.SessionsOpen.Inc()
}

// SessionClosed decrements the open sessions gauge.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.SessionsOpen.Dec()
}

// IncStreamEvent counts one emitted stream event.
func (m *Metrics) IncStreamEvent(eventType string) {
	if m == nil {
		return
	}
	m.StreamEvents.WithLabelValues(eventType).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
