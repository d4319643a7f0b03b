package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the main orchestrator for all Prometheus metrics emitted by
// the engine. It manages metric registration and provides a unified
// interface for recording metrics across the cache, adapter, check, and
// radar subsystems.
type Collector struct {
	registry *prometheus.Registry

	cache   *CacheMetrics
	check   *CheckMetrics
	adapter *AdapterMetrics
	radar   *RadarMetrics

	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector against the given Prometheus
// registry. If registry is nil, a fresh registry is created. The global
// default registry is never used, so a run's metrics never leak into
// another run's process if both are hosted in the same binary.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(10000),
	}

	c.cache = NewCacheMetrics(registry)
	c.check = NewCheckMetrics(registry)
	c.adapter = NewAdapterMetrics(registry)
	c.radar = NewRadarMetrics(registry)

	return c
}

// RecordCacheHit records a content-addressed cache hit.
func (c *Collector) RecordCacheHit() {
	c.cache.RecordHit()
}

// RecordCacheMiss records a content-addressed cache miss.
func (c *Collector) RecordCacheMiss() {
	c.cache.RecordMiss()
}

// UpdateCacheEntries sets the current on-disk cache entry count.
func (c *Collector) UpdateCacheEntries(n int) {
	c.cache.UpdateEntries(n)
}

// RecordCacheEvictions adds n janitor-evicted entries to the running total.
func (c *Collector) RecordCacheEvictions(n int) {
	c.cache.RecordEvictions(n)
}

// RecordCheck records the outcome of a namespace check, applying the
// cardinality limiter to the namespace label so an unbounded stream of
// distinct namespace strings cannot grow the metric unbounded.
func (c *Collector) RecordCheck(ns, status, authority string) {
	ns = c.limitNamespace(ns)
	c.check.RecordCheck(ns, status, authority)
}

// RecordClaimability records a check's claimability, when known.
func (c *Collector) RecordClaimability(ns, claimability string) {
	ns = c.limitNamespace(ns)
	c.check.RecordClaimability(ns, claimability)
}

// RecordCheckError records an adapter error code for a namespace.
func (c *Collector) RecordCheckError(ns, code string) {
	ns = c.limitNamespace(ns)
	c.check.RecordError(ns, code)
}

// RecordAdapterCall records the duration of one transport call.
func (c *Collector) RecordAdapterCall(ns string, seconds float64) {
	ns = c.limitNamespace(ns)
	c.adapter.RecordCall(ns, seconds)
}

// RecordAdapterRateLimited records a 429 response observed for a namespace.
func (c *Collector) RecordAdapterRateLimited(ns string) {
	ns = c.limitNamespace(ns)
	c.adapter.RecordRateLimited(ns)
}

// RecordRadarVariants records n variants generated for the given category.
func (c *Collector) RecordRadarVariants(category string, n int) {
	c.radar.RecordVariants(category, n)
}

// RecordRadarNearMatch records a single radar hit above the similarity
// threshold.
func (c *Collector) RecordRadarNearMatch() {
	c.radar.RecordNearMatch()
}

// Registry returns the Prometheus registry used by this collector, so a
// caller can wire it into its own transport (e.g. an HTTP /metrics handler)
// or a push-gateway client. The collector itself never starts a server.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// limitNamespace caps the number of distinct namespace label values this
// collector will track, folding anything past the limit into "other" so a
// caller-supplied namespace string (rather than one of the nine fixed
// namespaces) cannot explode metric cardinality.
func (c *Collector) limitNamespace(ns string) string {
	if !c.cardinalityLimiter.Allow("namespace:" + ns) {
		return "other"
	}
	return ns
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values seen per collector.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether a label value is allowed. It returns true if the
// value has already been seen or the cardinality limit has not yet been
// reached, false if admitting this value would exceed the limit.
func (cl *CardinalityLimiter) Allow(label string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[label]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[label]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[label] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
