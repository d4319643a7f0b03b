package opinion

import (
	"fmt"
	"math"
	"sort"

	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/model"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/radar"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/variants"
)

// Dimension name constants, matching config.DefaultWeights' keys exactly:
// the engine and the config package must agree on this vocabulary.
const (
	DimensionPrimaryAvailable   = "primary-namespaces-available"
	DimensionSecondaryAvailable = "secondary-namespaces-available"
	DimensionDomainAvailable    = "domain-available"
	DimensionNoCloseCollisions  = "no-close-collisions"
	DimensionLinguisticClean    = "linguistic-cleanliness"
)

var primaryNamespaces = map[model.Namespace]bool{
	model.NamespaceNPM:        true,
	model.NamespaceGitHubOrg:  true,
	model.NamespaceGitHubRepo: true,
	model.NamespacePyPI:       true,
}

var secondaryNamespaces = map[model.Namespace]bool{
	model.NamespaceCratesIO:         true,
	model.NamespaceDockerHub:        true,
	model.NamespaceHuggingFaceModel: true,
	model.NamespaceHuggingFaceSpace: true,
}

// Thresholds are the tier cutoffs applied to the composite score.
type Thresholds struct {
	Green  float64
	Yellow float64
}

// Input bundles everything Evaluate needs to produce an Opinion.
type Input struct {
	Checks      []model.Check
	RadarHits   []radar.Hit
	AllVariants []variants.Variant
	Weights     map[string]float64
	Thresholds  Thresholds
}

// Evaluate turns Input into a single Opinion: a weighted sum of
// per-dimension scores, tiered by threshold, with a primary-namespace
// authoritative-taken forced downgrade applied after scoring.
func Evaluate(in Input) (model.Opinion, error) {
	if err := validateWeights(in.Weights); err != nil {
		return model.Opinion{}, err
	}

	dims := []struct {
		name  string
		value float64
	}{
		{DimensionPrimaryAvailable, meanAvailability(in.Checks, primaryNamespaces)},
		{DimensionSecondaryAvailable, meanAvailability(in.Checks, secondaryNamespaces)},
		{DimensionDomainAvailable, meanAvailability(in.Checks, map[model.Namespace]bool{model.NamespaceDomain: true})},
		{DimensionNoCloseCollisions, noCloseCollisionsScore(in.RadarHits)},
		{DimensionLinguisticClean, linguisticCleanlinessScore(in.Checks, in.AllVariants)},
	}

	var breakdown []model.DimensionScore
	var composite float64
	for _, d := range dims {
		weight := in.Weights[d.name]
		contribution := weight * d.value * 100
		composite += weight * d.value
		breakdown = append(breakdown, model.DimensionScore{
			Dimension:    d.name,
			Weight:       weight,
			Value:        d.value,
			Contribution: contribution,
		})
	}

	score := int(math.Round(composite * 100))

	tier := tierFor(score, in.Thresholds)
	tier = applyForcedDowngrade(tier, in.Checks)

	return model.Opinion{
		Tier:      tier,
		Score:     score,
		Breakdown: breakdown,
		Rationale: rationale(tier, score, in.Checks),
	}, nil
}

func validateWeights(weights map[string]float64) error {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("opinion: weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// statusScore maps a Check's status to the [0,1] value the scoring table
// assigns it: available=1, unknown=0.5, taken=0.
func statusScore(s model.Status) float64 {
	switch s {
	case model.StatusAvailable:
		return 1.0
	case model.StatusUnknown:
		return 0.5
	default:
		return 0.0
	}
}

func meanAvailability(checks []model.Check, namespaces map[model.Namespace]bool) float64 {
	var sum float64
	var n int
	for _, c := range checks {
		if !namespaces[c.Namespace] {
			continue
		}
		sum += statusScore(c.Status)
		n++
	}
	if n == 0 {
		return 0.5 // no data for this dimension; treat as indeterminate
	}
	return sum / float64(n)
}

func noCloseCollisionsScore(hits []radar.Hit) float64 {
	var qualifying []radar.Hit
	for _, h := range hits {
		if h.Similarity >= radar.SimilarityThreshold {
			qualifying = append(qualifying, h)
		}
	}
	return 1.0 - radar.MaxSimilarity(qualifying)
}

func linguisticCleanlinessScore(checks []model.Check, all []variants.Variant) float64 {
	total := make(map[variants.Category]bool)
	for _, v := range all {
		total[v.Category] = true
	}
	if len(total) == 0 {
		return 1.0
	}

	taken := make(map[variants.Category]bool)
	for _, c := range checks {
		if c.Status == model.StatusTaken {
			if cat, ok := categoryOfQuery(c, all); ok {
				taken[cat] = true
			}
		}
	}

	return 1.0 - float64(len(taken))/float64(len(total))
}

// categoryOfQuery finds which variant category produced a given Check's
// query value, by matching the query's string form against the variant's
// value. Checks that don't correspond to any generated variant (the
// original mark's own direct checks) are simply not attributed.
func categoryOfQuery(c model.Check, all []variants.Variant) (variants.Category, bool) {
	q := fmt.Sprintf("%v", c.Query)
	for _, v := range all {
		if q == v.Value || containsValue(q, v.Value) {
			return v.Category, true
		}
	}
	return "", false
}

func containsValue(query, value string) bool {
	return value != "" && (query == value || fmt.Sprintf("{%s}", value) == query)
}

func tierFor(score int, t Thresholds) model.Tier {
	switch {
	case float64(score) >= t.Green:
		return model.TierGreen
	case float64(score) >= t.Yellow:
		return model.TierYellow
	default:
		return model.TierRed
	}
}

// applyForcedDowngrade enforces: any authoritative taken in a primary
// namespace bounds the tier to at most YELLOW; two or more force RED,
// regardless of the composite score.
func applyForcedDowngrade(tier model.Tier, checks []model.Check) model.Tier {
	var authoritativeTakenPrimary int
	for _, c := range checks {
		if primaryNamespaces[c.Namespace] && c.Status == model.StatusTaken && c.Authority == model.AuthorityAuthoritative {
			authoritativeTakenPrimary++
		}
	}

	switch {
	case authoritativeTakenPrimary >= 2:
		return model.TierRed
	case authoritativeTakenPrimary == 1 && tier == model.TierGreen:
		return model.TierYellow
	default:
		return tier
	}
}

func rationale(tier model.Tier, score int, checks []model.Check) string {
	var taken []string
	for _, c := range checks {
		if c.Status == model.StatusTaken && c.Authority == model.AuthorityAuthoritative {
			taken = append(taken, string(c.Namespace))
		}
	}
	sort.Strings(taken)

	if len(taken) == 0 {
		return fmt.Sprintf("score %d, no authoritative conflicts found", score)
	}
	return fmt.Sprintf("score %d, taken in: %v", score, taken)
}
