// Package metrics exposes Prometheus collectors for the audit service.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	auditsTotal                *prometheus.CounterVec
	auditDurationSeconds       prometheus.Histogram
	collectorDegradationsTotal *prometheus.CounterVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		auditsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seoaudit_audits_total",
				Help: "Total number of audits served, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		auditDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "seoaudit_duration_seconds",
				Help:    "Histogram of end-to-end audit latencies.",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
		)

		collectorDegradationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seoaudit_collector_degradations_total",
				Help: "Total collector degradations, labeled by collector and reason.",
			},
			[]string{"collector", "reason"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveAudit records one finished audit.
func ObserveAudit(outcome string, duration time.Duration) {
	auditsTotal.WithLabelValues(outcome).Inc()
	auditDurationSeconds.Observe(duration.Seconds())
}

// Observer adapts the package counters to the audit.Observer interface.
type Observer struct{}

// CollectorDegraded increments the degradation counter. Free-form error
// text is collapsed to "error" to keep label cardinality bounded.
func (Observer) CollectorDegraded(collector string, reason string) {
	switch reason {
	case "timeout", "no-data", "no-serp-key":
	default:
		reason = "error"
	}
	collectorDegradationsTotal.WithLabelValues(collector, reason).Inc()
}
