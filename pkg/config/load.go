package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at path, applies defaults,
// validates the result, and returns it. It never reads environment
// variables; use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from path and then applies
// COE_-prefixed environment variable overrides, which always take
// precedence over file-based configuration. The result is re-validated.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies COE_SECTION_FIELD environment variables to cfg.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("COE_CACHE_DIR"); val != "" {
		cfg.Cache.Dir = val
	}
	if val := os.Getenv("COE_CACHE_MAX_AGE_HOURS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Cache.MaxAgeHours = i
		}
	}
	if val := os.Getenv("COE_CACHE_JANITOR_SCHEDULE"); val != "" {
		cfg.Cache.JanitorSchedule = val
	}

	if val := os.Getenv("COE_ADAPTERS_CONCURRENCY"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Adapters.Concurrency = i
		}
	}
	if val := os.Getenv("COE_ADAPTERS_TIMEOUT_SECONDS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Adapters.TimeoutSeconds = i
		}
	}
	if val := os.Getenv("COE_ADAPTERS_GITHUB_TOKEN_ENV"); val != "" {
		cfg.Adapters.GitHubTokenEnv = val
	}
	if val := os.Getenv("COE_ADAPTERS_DOMAIN_TLDS"); val != "" {
		cfg.Adapters.DomainTLDs = strings.Split(val, ",")
	}

	if val := os.Getenv("COE_OPINION_GREEN_THRESHOLD"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Opinion.GreenThreshold = f
		}
	}
	if val := os.Getenv("COE_OPINION_YELLOW_THRESHOLD"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Opinion.YellowThreshold = f
		}
	}
	if val := os.Getenv("COE_OPINION_WEIGHTS_FILE"); val != "" {
		cfg.Opinion.WeightsFile = val
	}

	if val := os.Getenv("COE_RADAR_SIMILARITY_THRESHOLD"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Radar.SimilarityThreshold = f
		}
	}

	if val := os.Getenv("COE_LEDGER_PATH"); val != "" {
		cfg.Ledger.Path = val
	}
	if val := os.Getenv("COE_LEDGER_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Ledger.Enabled = &b
		}
	}

	if val := os.Getenv("COE_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("COE_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("COE_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
