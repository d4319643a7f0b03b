package config

import "fmt"

// weightSumEpsilon tolerates float64 accumulation error when checking that
// opinion weights sum to 1.0.
const weightSumEpsilon = 1e-6

// Validate checks cfg for internal consistency. It must be called after
// ApplyDefaults, since it assumes zero-valued fields have already been
// populated with their defaults.
func Validate(cfg *Config) error {
	if cfg.Cache.MaxAgeHours < 0 {
		return fmt.Errorf("cache.max_age_hours must be >= 0, got %d", cfg.Cache.MaxAgeHours)
	}

	if cfg.Adapters.Concurrency <= 0 {
		return fmt.Errorf("adapters.concurrency must be > 0, got %d", cfg.Adapters.Concurrency)
	}
	if cfg.Adapters.TimeoutSeconds <= 0 {
		return fmt.Errorf("adapters.timeout_seconds must be > 0, got %d", cfg.Adapters.TimeoutSeconds)
	}
	if len(cfg.Adapters.DomainTLDs) == 0 {
		return fmt.Errorf("adapters.domain_tlds must not be empty")
	}

	if err := validateWeights(cfg.Opinion.Weights); err != nil {
		return fmt.Errorf("opinion.weights: %w", err)
	}
	if cfg.Opinion.GreenThreshold <= cfg.Opinion.YellowThreshold {
		return fmt.Errorf("opinion.green_threshold (%.2f) must be greater than opinion.yellow_threshold (%.2f)",
			cfg.Opinion.GreenThreshold, cfg.Opinion.YellowThreshold)
	}
	if cfg.Opinion.YellowThreshold < 0 || cfg.Opinion.GreenThreshold > 100 {
		return fmt.Errorf("opinion thresholds must fall within [0, 100]")
	}

	if cfg.Radar.SimilarityThreshold < 0 || cfg.Radar.SimilarityThreshold > 1 {
		return fmt.Errorf("radar.similarity_threshold must fall within [0, 1], got %.2f", cfg.Radar.SimilarityThreshold)
	}
	if cfg.Radar.MaxVariantsPerCategory <= 0 {
		return fmt.Errorf("radar.max_variants_per_category must be > 0, got %d", cfg.Radar.MaxVariantsPerCategory)
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level must be one of debug/info/warn/error, got %q", cfg.Telemetry.Logging.Level)
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text", "console":
	default:
		return fmt.Errorf("telemetry.logging.format must be one of json/text/console, got %q", cfg.Telemetry.Logging.Format)
	}

	return nil
}

// validateWeights checks that the weight map covers the five scoring
// dimensions the opinion engine expects and sums to 1.0.
func validateWeights(weights map[string]float64) error {
	required := []string{
		"primary-namespaces-available",
		"secondary-namespaces-available",
		"domain-available",
		"no-close-collisions",
		"linguistic-cleanliness",
	}

	var sum float64
	for _, dim := range required {
		w, ok := weights[dim]
		if !ok {
			return fmt.Errorf("missing weight for dimension %q", dim)
		}
		if w < 0 {
			return fmt.Errorf("weight for dimension %q must be >= 0, got %.4f", dim, w)
		}
		sum += w
	}

	if len(weights) != len(required) {
		return fmt.Errorf("weights must cover exactly the %d known dimensions, got %d entries", len(required), len(weights))
	}

	if diff := sum - 1.0; diff > weightSumEpsilon || diff < -weightSumEpsilon {
		return fmt.Errorf("weights must sum to 1.0, got %.6f", sum)
	}

	return nil
}
