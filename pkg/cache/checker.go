package cache

import (
	"context"
	"encoding/json"

	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/model"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/telemetry/logging"
)

// EngineVersion is folded into every cache key alongside the adapter name
// and query, so a change to the adapter/opinion algorithm invalidates
// previously memoized results without an explicit cache clear.
const EngineVersion = "1"

// Checker is the subset of a namespace adapter the cache wraps: turn a
// query into a (Check, Evidence) pair. Declared locally, matching
// pkg/runner.Checker's and pkg/radar.Checker's shape structurally, so this
// package stays a leaf with no dependency on either.
type Checker interface {
	Check(ctx context.Context, query any) (model.Check, model.Evidence)
}

// MetricsRecorder is notified of cache hits and misses, mirroring the hook
// pattern pkg/radar uses to stay decoupled from pkg/telemetry/metrics.
type MetricsRecorder interface {
	RecordCacheHit()
	RecordCacheMiss()
}

// checkedPair is the on-disk shape of one memoized (Check, Evidence) result.
type checkedPair struct {
	Check    model.Check    `json:"check"`
	Evidence model.Evidence `json:"evidence"`
}

// cachingChecker wraps a namespace adapter with content-addressed
// memoization: a repeated check against the same namespace and
// query within the cache's TTL is served from disk instead of hitting the
// network again.
type cachingChecker struct {
	cache   *Cache
	next    Checker
	adapter string
	metrics MetricsRecorder
	logger  *logging.Logger
}

// Wrap returns a Checker that consults c, keyed on (adapter, query,
// EngineVersion), before delegating to next, and memoizes next's result on
// a miss. adapter is typically the namespace string (e.g. "npm"); metrics
// and logger may both be nil.
func (c *Cache) Wrap(adapter string, next Checker, metrics MetricsRecorder, logger *logging.Logger) Checker {
	return &cachingChecker{cache: c, next: next, adapter: adapter, metrics: metrics, logger: logger}
}

func (cc *cachingChecker) Check(ctx context.Context, query any) (model.Check, model.Evidence) {
	if entry, err := cc.cache.Get(cc.adapter, query, EngineVersion); err == nil && entry != nil {
		var pair checkedPair
		if err := json.Unmarshal(entry.Data, &pair); err == nil {
			if cc.logger != nil {
				cc.logger.DebugContext(ctx, "cache hit", "namespace", cc.adapter)
			}
			if cc.metrics != nil {
				cc.metrics.RecordCacheHit()
			}
			return pair.Check, pair.Evidence
		}
	}

	if cc.logger != nil {
		cc.logger.DebugContext(ctx, "cache miss", "namespace", cc.adapter)
	}
	if cc.metrics != nil {
		cc.metrics.RecordCacheMiss()
	}

	check, evidence := cc.next.Check(ctx, query)
	_ = cc.cache.Set(cc.adapter, query, EngineVersion, checkedPair{Check: check, Evidence: evidence})
	return check, evidence
}
