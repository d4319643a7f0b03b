package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "coe"
	subsystem = "engine"
)

// CacheMetrics tracks the content-addressed disk cache's performance.
//
// Metrics:
//   - coe_engine_cache_hits_total: Total cache hits
//   - coe_engine_cache_misses_total: Total cache misses
//   - coe_engine_cache_entries: Current number of entries on disk
//   - coe_engine_cache_evictions_total: Total entries removed by the janitor
type CacheMetrics struct {
	hitsTotal      prometheus.Counter
	missesTotal    prometheus.Counter
	entries        prometheus.Gauge
	evictionsTotal prometheus.Counter
}

// NewCacheMetrics creates and registers cache metrics with the provided registry.
func NewCacheMetrics(registry *prometheus.Registry) *CacheMetrics {
	cm := &CacheMetrics{
		hitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cache_hits_total",
			Help:      "Total number of content-addressed cache hits.",
		}),
		missesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cache_misses_total",
			Help:      "Total number of content-addressed cache misses.",
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cache_entries",
			Help:      "Current number of entries in the disk cache.",
		}),
		evictionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cache_evictions_total",
			Help:      "Total number of cache entries removed by the janitor sweep.",
		}),
	}

	registry.MustRegister(cm.hitsTotal, cm.missesTotal, cm.entries, cm.evictionsTotal)

	return cm
}

// RecordHit records a cache hit from Cache.Get.
func (cm *CacheMetrics) RecordHit() {
	cm.hitsTotal.Inc()
}

// RecordMiss records a cache miss from Cache.Get (absent, expired, or corrupt).
func (cm *CacheMetrics) RecordMiss() {
	cm.missesTotal.Inc()
}

// UpdateEntries sets the current on-disk entry count, as reported by Cache.Stats.
func (cm *CacheMetrics) UpdateEntries(n int) {
	cm.entries.Set(float64(n))
}

// RecordEvictions adds n entries removed by a janitor sweep to the total.
func (cm *CacheMetrics) RecordEvictions(n int) {
	if n > 0 {
		cm.evictionsTotal.Add(float64(n))
	}
}
