package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CheckMetrics tracks namespace check outcomes.
//
// Metrics:
//   - coe_engine_checks_total: Total checks by namespace and status
//   - coe_engine_check_errors_total: Total adapter errors by namespace and error code
type CheckMetrics struct {
	checksTotal    *prometheus.CounterVec
	checkErrors    *prometheus.CounterVec
	authorityTotal *prometheus.CounterVec
	claimableTotal *prometheus.CounterVec
}

// NewCheckMetrics creates and registers check-outcome metrics with the
// provided registry.
func NewCheckMetrics(registry *prometheus.Registry) *CheckMetrics {
	cm := &CheckMetrics{
		checksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checks_total",
				Help:      "Total number of namespace checks, by namespace and status.",
			},
			[]string{"namespace", "status"},
		),
		checkErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "check_errors_total",
				Help:      "Total number of adapter errors, by namespace and error code.",
			},
			[]string{"namespace", "code"},
		),
		authorityTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "check_authority_total",
				Help:      "Total number of checks, by namespace and authority (authoritative/indicative).",
			},
			[]string{"namespace", "authority"},
		),
		claimableTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "check_claimability_total",
				Help:      "Total number of checks with a known claimability, by namespace and claimability.",
			},
			[]string{"namespace", "claimability"},
		),
	}

	registry.MustRegister(cm.checksTotal, cm.checkErrors, cm.authorityTotal, cm.claimableTotal)

	return cm
}

// RecordCheck records the outcome of a single namespace check.
func (cm *CheckMetrics) RecordCheck(ns, status, authority string) {
	cm.checksTotal.WithLabelValues(ns, status).Inc()
	cm.authorityTotal.WithLabelValues(ns, authority).Inc()
}

// RecordClaimability records a check's claimability, when known.
func (cm *CheckMetrics) RecordClaimability(ns, claimability string) {
	if claimability == "" {
		return
	}
	cm.claimableTotal.WithLabelValues(ns, claimability).Inc()
}

// RecordError records an adapter error code for a namespace.
func (cm *CheckMetrics) RecordError(ns, code string) {
	cm.checkErrors.WithLabelValues(ns, code).Inc()
}
