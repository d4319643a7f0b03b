package config

import "time"

// Config is the root configuration structure for the Clearance Opinion Engine.
type Config struct {
	// Cache contains the disk cache's directory, TTL, and janitor schedule.
	Cache CacheConfig `yaml:"cache"`

	// Adapters contains per-namespace HTTP adapter behavior: concurrency,
	// timeouts, and the GitHub token environment variable name.
	Adapters AdaptersConfig `yaml:"adapters"`

	// Opinion contains the scoring weights and tier thresholds used by the
	// opinion engine to turn checks into a GREEN/YELLOW/RED verdict.
	Opinion OpinionConfig `yaml:"opinion"`

	// Radar contains tuning for the fuzzy collision-neighborhood search.
	Radar RadarConfig `yaml:"radar"`

	// Ledger contains the SQLite-backed run history store settings.
	Ledger LedgerConfig `yaml:"ledger"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CacheConfig configures the content-addressed disk cache.
type CacheConfig struct {
	// Dir is the cache directory. Empty means caching is disabled.
	// Default: "" (disabled); overridden by COE_CACHE_DIR.
	Dir string `yaml:"dir"`

	// MaxAgeHours is how long an entry remains valid before it's treated as
	// expired by Get and eligible for removal by Clear(expiredOnly: true).
	// Default: 168 (7 days).
	MaxAgeHours int `yaml:"max_age_hours"`

	// JanitorSchedule is a standard 5-field cron expression controlling how
	// often the background janitor sweeps expired entries. Empty disables
	// the janitor (the cache still honors TTL on every Get regardless).
	// Default: "" (disabled).
	JanitorSchedule string `yaml:"janitor_schedule"`
}

// AdaptersConfig configures namespace adapter behavior.
type AdaptersConfig struct {
	// Concurrency bounds how many adapter calls run in parallel per batch.
	// Default: 8.
	Concurrency int `yaml:"concurrency"`

	// TimeoutSeconds is the per-call transport timeout.
	// Default: 10.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// GitHubTokenEnv names the environment variable holding an optional
	// GitHub token used to raise API rate limits.
	// Default: "GITHUB_TOKEN".
	GitHubTokenEnv string `yaml:"github_token_env"`

	// DomainTLDs is the set of top-level domains checked for a candidate
	// mark when running the domain namespace adapter.
	// Default: ["com", "io", "dev"].
	DomainTLDs []string `yaml:"domain_tlds"`
}

// OpinionConfig configures the scoring/tiering behavior of the opinion engine.
type OpinionConfig struct {
	// Weights maps dimension name to weight in [0,1]; must sum to 1.0.
	// Dimensions: primary-namespaces-available, secondary-namespaces-available,
	// domain-available, no-close-collisions, linguistic-cleanliness.
	Weights map[string]float64 `yaml:"weights"`

	// GreenThreshold is the minimum composite score (0-100) for GREEN.
	// Default: 85.
	GreenThreshold float64 `yaml:"green_threshold"`

	// YellowThreshold is the minimum composite score (0-100) for YELLOW.
	// Default: 60.
	YellowThreshold float64 `yaml:"yellow_threshold"`

	// WeightsFile, if set, is watched for changes and reloaded into Weights
	// without restarting the process.
	WeightsFile string `yaml:"weights_file"`
}

// RadarConfig tunes the fuzzy collision-neighborhood search.
type RadarConfig struct {
	// SimilarityThreshold is the minimum similarity (0-1) for a radar hit to
	// count against the no-close-collisions dimension.
	// Default: 0.75.
	SimilarityThreshold float64 `yaml:"similarity_threshold"`

	// MaxVariantsPerCategory caps how many variants each generator category
	// (homoglyph, edit-distance) emits.
	// Default: 25.
	MaxVariantsPerCategory int `yaml:"max_variants_per_category"`
}

// LedgerConfig configures the historical run-manifest index.
type LedgerConfig struct {
	// Enabled controls whether RunManifest.Generate records a ledger entry.
	// A pointer so an explicit `enabled: false` in YAML is distinguishable
	// from an unset field. Default: true.
	Enabled *bool `yaml:"enabled"`

	// Path is the SQLite database file path.
	// Default: "<cache dir>/ledger.db", or "./ledger.db" with no cache dir.
	Path string `yaml:"path"`
}

// LedgerEnabled reports whether the ledger is enabled, applying the default
// of true when unset.
func (c LedgerConfig) LedgerEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// TelemetryConfig configures logging and metrics.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info".
	Level string `yaml:"level"`

	// Format is the output encoding: "json", "text", "console".
	// Default: "json".
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus metrics collector.
type MetricsConfig struct {
	// Enabled controls whether a metrics collector is constructed.
	// Default: true.
	Enabled bool `yaml:"enabled"`
}

// Timeout returns the per-call adapter timeout as a time.Duration, derived
// from TimeoutSeconds.
func (c AdaptersConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MaxAge returns the cache TTL as a time.Duration.
func (c CacheConfig) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeHours) * time.Hour
}
