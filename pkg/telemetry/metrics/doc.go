// Package metrics provides Prometheus metrics collection for the clearance
// opinion engine.
//
// # Overview
//
// The metrics package tracks the performance and outcomes of the engine's
// four moving parts: the content-addressed disk cache, the namespace
// adapters' transport calls, the check outcomes those adapters produce, and
// the radar's fuzzy neighborhood search.
//
// # Metrics Categories
//
//   - Cache Metrics: hits, misses, entry count, janitor evictions
//   - Check Metrics: checks by namespace/status, claimability, adapter errors
//   - Adapter Metrics: transport call latency, rate-limit responses
//   - Radar Metrics: variants generated, near-match hits
//
// # Usage
//
//	collector := metrics.NewCollector(registry)
//
//	collector.RecordCheck("npm", "green", "authoritative")
//	collector.RecordClaimability("npm", "claimable")
//
//	collector.RecordAdapterCall("npm", elapsed.Seconds())
//	collector.RecordAdapterRateLimited("github_repo")
//
//	collector.RecordCacheHit()
//	collector.UpdateCacheEntries(cache.Stats().Entries)
//
//	collector.RecordRadarVariants("homoglyph", 4)
//	collector.RecordRadarNearMatch()
//
// # Cardinality Management
//
// Namespace is normally one of the nine fixed namespace names, but the
// collector still runs every namespace label through a CardinalityLimiter
// before recording, folding anything past the limit into "other" so a
// misbehaving caller cannot grow an unbounded set of distinct label values.
//
// # No HTTP Endpoint
//
// The collector never starts a server and never imports promhttp: serving
// /metrics is a transport concern, out of scope for this package. Registry
// exposes the underlying *prometheus.Registry so a caller can wire it into
// whatever transport it already runs.
package metrics
