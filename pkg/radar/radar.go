package radar

import (
	"context"
	"sort"

	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/model"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/telemetry/logging"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/variants"
)

// SimilarityThreshold is the default cutoff above which a radar result
// counts as a near-match hit.
const SimilarityThreshold = 0.75

// Checker is the subset of adapters.Adapter the radar depends on: any
// namespace adapter that can turn a query into a Check.
type Checker interface {
	Check(ctx context.Context, query any) (model.Check, model.Evidence)
}

// QueryBuilder builds the namespace-appropriate query for one variant
// value, so the radar can drive adapters whose query shapes differ
// (e.g. NPMQuery{Name: v} vs DockerHubQuery{Name: v}).
type QueryBuilder func(namespace model.Namespace, variantValue string) any

// Hit is one radar result scoring above SimilarityThreshold.
type Hit struct {
	Namespace  model.Namespace
	Variant    variants.Variant
	Check      model.Check
	Similarity float64
}

// MetricsRecorder is notified of radar activity, so a caller can feed counts
// into a metrics collector without the radar importing it directly.
type MetricsRecorder interface {
	RecordRadarVariants(category string, n int)
	RecordRadarNearMatch()
}

// ScanOptions tunes a Scan. The zero value is valid: threshold falls back
// to SimilarityThreshold, no per-category cap, no metrics, no logging.
type ScanOptions struct {
	// Threshold overrides SimilarityThreshold when > 0.
	Threshold float64

	// MaxPerCategory caps how many variants each generator category
	// contributes to the scan when > 0.
	MaxPerCategory int

	Metrics MetricsRecorder
	Logger  *logging.Logger
}

// Scan generates mark's variants and checks each through every namespace in
// checkers, returning the hits that score at or above the similarity
// threshold against mark itself, sorted by (namespace, variant value) for
// determinism independent of completion order.
func Scan(ctx context.Context, mark string, checkers map[model.Namespace]Checker, queryFor QueryBuilder, opts ScanOptions) []Hit {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = SimilarityThreshold
	}
	metrics, logger := opts.Metrics, opts.Logger

	generated := variants.Generate(mark)
	if opts.MaxPerCategory > 0 {
		generated = capPerCategory(generated, opts.MaxPerCategory)
	}

	if logger != nil {
		logger.DebugContext(ctx, "radar scan starting", "candidate_mark", mark, "variants", len(generated), "namespaces", len(checkers))
	}

	if metrics != nil {
		for cat, values := range variants.ByCategory(generated) {
			metrics.RecordRadarVariants(string(cat), len(values))
		}
	}

	var hits []Hit
	for namespace, checker := range checkers {
		for _, v := range generated {
			similarity := Similarity(mark, v.Value)
			if similarity < threshold {
				continue
			}

			query := queryFor(namespace, v.Value)
			check, _ := checker.Check(ctx, query)

			if check.Status != model.StatusTaken {
				continue
			}

			hits = append(hits, Hit{
				Namespace:  namespace,
				Variant:    v,
				Check:      check,
				Similarity: similarity,
			})

			if logger != nil {
				logger.InfoContext(ctx, "radar near-match hit", "namespace", namespace, "variant", v.Value, "similarity", similarity)
			}
			if metrics != nil {
				metrics.RecordRadarNearMatch()
			}
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Namespace != hits[j].Namespace {
			return hits[i].Namespace < hits[j].Namespace
		}
		return hits[i].Variant.Value < hits[j].Variant.Value
	})

	return hits
}

// capPerCategory truncates each category's variant list to n, preserving
// the generator's category-then-lexicographic ordering.
func capPerCategory(vs []variants.Variant, n int) []variants.Variant {
	counts := make(map[variants.Category]int)
	out := vs[:0]
	for _, v := range vs {
		if counts[v.Category] >= n {
			continue
		}
		counts[v.Category]++
		out = append(out, v)
	}
	return out
}

// MaxSimilarity returns the highest Similarity among hits, or 0 if hits is
// empty. This is the value the opinion engine's no-close-collisions
// dimension subtracts from 1.
func MaxSimilarity(hits []Hit) float64 {
	var max float64
	for _, h := range hits {
		if h.Similarity > max {
			max = h.Similarity
		}
	}
	return max
}
