package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RadarMetrics tracks the fuzzy collision-neighborhood search.
//
// Metrics:
//   - coe_engine_radar_variants_total: Variants generated, by category
//   - coe_engine_radar_near_matches_total: Near-match hits above the similarity threshold
type RadarMetrics struct {
	variantsTotal  *prometheus.CounterVec
	nearMatchTotal prometheus.Counter
}

// NewRadarMetrics creates and registers radar metrics with the provided registry.
func NewRadarMetrics(registry *prometheus.Registry) *RadarMetrics {
	rm := &RadarMetrics{
		variantsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "radar_variants_total",
				Help:      "Total number of candidate-mark variants generated, by category.",
			},
			[]string{"category"},
		),
		nearMatchTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "radar_near_matches_total",
			Help:      "Total number of radar hits scoring above the similarity threshold.",
		}),
	}

	registry.MustRegister(rm.variantsTotal, rm.nearMatchTotal)

	return rm
}

// RecordVariants records n variants generated for the given category.
func (rm *RadarMetrics) RecordVariants(category string, n int) {
	if n > 0 {
		rm.variantsTotal.WithLabelValues(category).Add(float64(n))
	}
}

// RecordNearMatch records a single radar hit above the similarity threshold.
func (rm *RadarMetrics) RecordNearMatch() {
	rm.nearMatchTotal.Inc()
}
