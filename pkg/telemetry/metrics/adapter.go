package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AdapterMetrics tracks transport-level performance of the namespace
// adapters, independent of the check outcome they produced.
//
// Metrics:
//   - coe_engine_adapter_call_duration_seconds: Transport call latency by namespace
//   - coe_engine_adapter_rate_limited_total: Rate-limit responses by namespace
type AdapterMetrics struct {
	callDuration *prometheus.HistogramVec
	rateLimited  *prometheus.CounterVec
}

// NewAdapterMetrics creates and registers adapter metrics with the provided
// registry. Buckets are sized for HTTP calls bounded by the per-call
// timeout (default 10s).
func NewAdapterMetrics(registry *prometheus.Registry) *AdapterMetrics {
	am := &AdapterMetrics{
		callDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "adapter_call_duration_seconds",
				Help:      "Duration of a single namespace adapter transport call, in seconds.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"namespace"},
		),
		rateLimited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "adapter_rate_limited_total",
				Help:      "Total number of HTTP 429 responses observed, by namespace.",
			},
			[]string{"namespace"},
		),
	}

	registry.MustRegister(am.callDuration, am.rateLimited)

	return am
}

// RecordCall records the duration of one transport call for namespace ns.
func (am *AdapterMetrics) RecordCall(ns string, seconds float64) {
	am.callDuration.WithLabelValues(ns).Observe(seconds)
}

// RecordRateLimited records a 429 response for namespace ns.
func (am *AdapterMetrics) RecordRateLimited(ns string) {
	am.rateLimited.WithLabelValues(ns).Inc()
}
