package config

// ApplyDefaults fills every zero-valued field of cfg with its documented
// default. Fields already set (by the YAML file) are left untouched.
func ApplyDefaults(cfg *Config) {
	if cfg.Cache.MaxAgeHours == 0 {
		cfg.Cache.MaxAgeHours = 168
	}

	if cfg.Adapters.Concurrency == 0 {
		cfg.Adapters.Concurrency = 8
	}
	if cfg.Adapters.TimeoutSeconds == 0 {
		cfg.Adapters.TimeoutSeconds = 10
	}
	if cfg.Adapters.GitHubTokenEnv == "" {
		cfg.Adapters.GitHubTokenEnv = "GITHUB_TOKEN"
	}
	if len(cfg.Adapters.DomainTLDs) == 0 {
		cfg.Adapters.DomainTLDs = []string{"com", "io", "dev"}
	}

	if cfg.Opinion.Weights == nil {
		cfg.Opinion.Weights = DefaultWeights()
	}
	if cfg.Opinion.GreenThreshold == 0 {
		cfg.Opinion.GreenThreshold = 85
	}
	if cfg.Opinion.YellowThreshold == 0 {
		cfg.Opinion.YellowThreshold = 60
	}

	if cfg.Radar.SimilarityThreshold == 0 {
		cfg.Radar.SimilarityThreshold = 0.75
	}
	if cfg.Radar.MaxVariantsPerCategory == 0 {
		cfg.Radar.MaxVariantsPerCategory = 25
	}

	if cfg.Ledger.Path == "" {
		if cfg.Cache.Dir != "" {
			cfg.Ledger.Path = cfg.Cache.Dir + "/ledger.db"
		} else {
			cfg.Ledger.Path = "./ledger.db"
		}
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = "info"
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = "json"
	}
}

// DefaultWeights returns the default opinion-engine dimension weights, per
// the scoring table: they sum to exactly 1.0.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		"primary-namespaces-available":   0.45,
		"secondary-namespaces-available": 0.15,
		"domain-available":               0.15,
		"no-close-collisions":            0.15,
		"linguistic-cleanliness":         0.10,
	}
}
