// Package metrics exposes prometheus collectors for the engines. Every
// method is safe to call on a nil *Metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "aiready"

// Provider call outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeCacheHit = "cache_hit"
)

// Metrics groups the collectors registered by New.
type Metrics struct {
	Registry *prometheus.Registry

	providerCalls     *prometheus.CounterVec
	providerFallbacks *prometheus.CounterVec
	writesInFlight    prometheus.Gauge
	writeErrors       prometheus.Counter
	reports           prometheus.Counter
	merges            prometheus.Counter
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "Recommendation provider calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		providerFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_fallbacks_total",
			Help:      "Provider results replaced by deterministic fallbacks.",
		}, []string{"op"}),
		writesInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "capability_writes_in_flight",
			Help:      "Capability persistence writes currently executing.",
		}),
		writeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capability_write_errors_total",
			Help:      "Capability recommendations that failed to persist.",
		}),
		reports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "Prioritization runs that produced a report.",
		}),
		merges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rationalizer_merges_total",
			Help:      "Capabilities marked as duplicates by the rationalizer.",
		}),
	}
	m.Registry.MustRegister(
		m.providerCalls,
		m.providerFallbacks,
		m.writesInFlight,
		m.writeErrors,
		m.reports,
		m.merges,
	)
	return m
}

// ProviderCall records one provider call outcome.
func (m *Metrics) ProviderCall(op, outcome string) {
	if m == nil {
		return
	}
	m.providerCalls.WithLabelValues(op, outcome).Inc()
}

// Fallback records a fallback substitution for op.
func (m *Metrics) Fallback(op string) {
	if m == nil {
		return
	}
	m.providerFallbacks.WithLabelValues(op).Inc()
}

// WriteStarted marks a persistence write as in flight.
func (m *Metrics) WriteStarted() {
	if m == nil {
		return
	}
	m.writesInFlight.Inc()
}

// WriteFinished marks a persistence write as done.
func (m *Metrics) WriteFinished() {
	if m == nil {
		return
	}
	m.writesInFlight.Dec()
}

// WriteFailed counts a recommendation that could not be persisted.
func (m *Metrics) WriteFailed() {
	if m == nil {
		return
	}
	m.writeErrors.Inc()
}

// ReportGenerated counts a completed prioritization run.
func (m *Metrics) ReportGenerated() {
	if m == nil {
		return
	}
	m.reports.Inc()
}

// Merged counts capabilities marked duplicate.
func (m *Metrics) Merged(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.merges.Add(float64(n))
}

// WriteTextfile writes the current values in the node exporter textfile
// format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
