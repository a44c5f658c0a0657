// Package metrics holds all Prometheus instrumentation for the service.
// A single Metrics struct is created in main and injected where needed so
// tests can pass nil (every method is nil-safe).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the application.
type Metrics struct {
	AlertsSent        *prometheus.CounterVec
	AlertsSuppressed  prometheus.Counter
	DispatchFailures  prometheus.Counter
	SimulationsRun    prometheus.Counter
	SummariesComputed prometheus.Counter
	SummaryCacheHits  prometheus.Counter
	RequestDuration   *prometheus.HistogramVec
}

// New creates and registers all Prometheus collectors on the default registry.
func New() *Metrics {
	return &Metrics{
		AlertsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "compliance_alerts_sent_total",
			Help: "Alert emails dispatched, by alert level.",
		}, []string{"level"}),
		AlertsSuppressed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "compliance_alerts_suppressed_total",
			Help: "Alert evaluations suppressed by the same-level cooldown.",
		}),
		DispatchFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "compliance_alert_dispatch_failures_total",
			Help: "Notification sends that failed; retried on the next daily tick.",
		}),
		SimulationsRun: promauto.NewCounter(prometheus.CounterOpts{
			Name: "compliance_simulations_total",
			Help: "Trip simulations executed.",
		}),
		SummariesComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "compliance_summaries_computed_total",
			Help: "Compliance summaries computed from the trip list.",
		}),
		SummaryCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "compliance_summary_cache_hits_total",
			Help: "Compliance summaries served from the Redis cache.",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method, route pattern, and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ObserveRequest records one HTTP request. Nil-safe.
func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

// AlertSent records a dispatched alert at the given level. Nil-safe.
func (m *Metrics) AlertSent(level string) {
	if m == nil {
		return
	}
	m.AlertsSent.WithLabelValues(level).Inc()
}

// AlertSuppressed records a cooldown suppression. Nil-safe.
func (m *Metrics) AlertSuppressed() {
	if m == nil {
		return
	}
	m.AlertsSuppressed.Inc()
}

// DispatchFailed records a failed notification send. Nil-safe.
func (m *Metrics) DispatchFailed() {
	if m == nil {
		return
	}
	m.DispatchFailures.Inc()
}

// SimulationRun records one executed simulation. Nil-safe.
func (m *Metrics) SimulationRun() {
	if m == nil {
		return
	}
	m.SimulationsRun.Inc()
}

// SummaryComputed records a summary computed from scratch. Nil-safe.
func (m *Metrics) SummaryComputed() {
	if m == nil {
		return
	}
	m.SummariesComputed.Inc()
}

// SummaryCacheHit records a summary served from cache. Nil-safe.
func (m *Metrics) SummaryCacheHit() {
	if m == nil {
		return
	}
	m.SummaryCacheHits.Inc()
}
