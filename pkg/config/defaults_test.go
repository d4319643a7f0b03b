package config

import "testing"

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	cfg := Config{}
	ApplyDefaults(&cfg)

	if cfg.Cache.MaxAgeHours != 168 {
		t.Errorf("Cache.MaxAgeHours = %d, want 168", cfg.Cache.MaxAgeHours)
	}
	if cfg.Adapters.Concurrency != 8 {
		t.Errorf("Adapters.Concurrency = %d, want 8", cfg.Adapters.Concurrency)
	}
	if cfg.Adapters.TimeoutSeconds != 10 {
		t.Errorf("Adapters.TimeoutSeconds = %d, want 10", cfg.Adapters.TimeoutSeconds)
	}
	if cfg.Adapters.GitHubTokenEnv != "GITHUB_TOKEN" {
		t.Errorf("Adapters.GitHubTokenEnv = %q, want GITHUB_TOKEN", cfg.Adapters.GitHubTokenEnv)
	}
	if len(cfg.Adapters.DomainTLDs) == 0 {
		t.Error("Adapters.DomainTLDs should not be empty")
	}
	if cfg.Opinion.GreenThreshold != 85 {
		t.Errorf("Opinion.GreenThreshold = %.2f, want 85", cfg.Opinion.GreenThreshold)
	}
	if cfg.Opinion.YellowThreshold != 60 {
		t.Errorf("Opinion.YellowThreshold = %.2f, want 60", cfg.Opinion.YellowThreshold)
	}
	if !cfg.Ledger.LedgerEnabled() {
		t.Error("Ledger should default to enabled")
	}
	if cfg.Ledger.Path != "./ledger.db" {
		t.Errorf("Ledger.Path = %q, want ./ledger.db", cfg.Ledger.Path)
	}
}

func TestApplyDefaults_LedgerPathFollowsCacheDir(t *testing.T) {
	cfg := Config{Cache: CacheConfig{Dir: "/var/coe/cache"}}
	ApplyDefaults(&cfg)

	want := "/var/coe/cache/ledger.db"
	if cfg.Ledger.Path != want {
		t.Errorf("Ledger.Path = %q, want %q", cfg.Ledger.Path, want)
	}
}

func TestApplyDefaults_PreservesExplicitDisable(t *testing.T) {
	disabled := false
	cfg := Config{Ledger: LedgerConfig{Enabled: &disabled}}
	ApplyDefaults(&cfg)

	if cfg.Ledger.LedgerEnabled() {
		t.Error("explicit enabled: false should survive ApplyDefaults")
	}
}

func TestDefaultWeights_SumToOne(t *testing.T) {
	var sum float64
	for _, w := range DefaultWeights() {
		sum += w
	}
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("default weights sum to %.6f, want 1.0", sum)
	}
}
