package main

import (
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/adapters"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/cache"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/clock"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/config"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/model"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/runner"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/telemetry/logging"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/telemetry/metrics"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/transport"
)

// engine bundles the wired namespace adapters a run needs, keyed by
// namespace so the runner and radar can both dispatch through it.
type engine struct {
	checkers map[model.Namespace]runner.Checker
	tlds     []string
}

// buildEngine wires the transport, every namespace adapter, and, when
// configured, the content-addressed cache, the structured logger, and the
// metrics collector into a single checker map the runner and radar both
// dispatch through. diskCache, logger, and collector may all be nil; each
// is independently optional.
func buildEngine(cfg *config.Config, now clock.Clock, diskCache *cache.Cache, logger *logging.Logger, collector *metrics.Collector) *engine {
	t := transport.New(transport.Config{Timeout: cfg.Adapters.Timeout()})

	var adapterMetrics adapters.MetricsRecorder
	var cacheMetrics cache.MetricsRecorder
	if collector != nil {
		adapterMetrics = collector
		cacheMetrics = collector
	}

	tokenEnv := adapters.WithTokenEnv(cfg.Adapters.GitHubTokenEnv)
	adapterList := map[model.Namespace]*adapters.Adapter{
		model.NamespaceGitHubOrg:        adapters.NewGitHubOrgAdapter(t, now, tokenEnv),
		model.NamespaceGitHubRepo:       adapters.NewGitHubRepoAdapter(t, now, tokenEnv),
		model.NamespaceNPM:              adapters.NewNPMAdapter(t, now),
		model.NamespacePyPI:             adapters.NewPyPIAdapter(t, now),
		model.NamespaceCratesIO:         adapters.NewCratesAdapter(t, now),
		model.NamespaceDockerHub:        adapters.NewDockerHubAdapter(t, now),
		model.NamespaceHuggingFaceModel: adapters.NewHuggingFaceModelAdapter(t, now),
		model.NamespaceHuggingFaceSpace: adapters.NewHuggingFaceSpaceAdapter(t, now),
		model.NamespaceDomain:           adapters.NewDomainAdapter(t, now),
	}

	out := make(map[model.Namespace]runner.Checker, len(adapterList))
	for ns, a := range adapterList {
		a.WithObservability(logger, adapterMetrics)

		var checker runner.Checker = a
		if diskCache != nil {
			checker = diskCache.Wrap(string(ns), a, cacheMetrics, logger)
		}
		out[ns] = checker
	}

	return &engine{checkers: out, tlds: cfg.Adapters.DomainTLDs}
}

// openCacheFromConfig opens the content-addressed disk cache cfg names, or
// returns (nil, nil) when no cache directory is configured; caching is
// then simply skipped rather than treated as an error.
func openCacheFromConfig(cfg *config.Config, now clock.Clock) (*cache.Cache, error) {
	if cfg.Cache.Dir == "" {
		return nil, nil
	}
	return cache.New(cfg.Cache.Dir, cache.Options{MaxAgeHours: cfg.Cache.MaxAgeHours, Now: now})
}

// buildLogger constructs the structured logger described by
// cfg.Telemetry.Logging, redacting secrets by default.
func buildLogger(cfg *config.Config) (*logging.Logger, error) {
	return logging.New(logging.Config{
		Level:         cfg.Telemetry.Logging.Level,
		Format:        cfg.Telemetry.Logging.Format,
		RedactSecrets: true,
	})
}

// buildMetricsCollector constructs a Prometheus collector against a fresh
// registry when metrics are enabled, or returns nil when they are not.
func buildMetricsCollector(cfg *config.Config) *metrics.Collector {
	if !cfg.Telemetry.Metrics.Enabled {
		return nil
	}
	return metrics.NewCollector(nil)
}

// queryFor builds the canonical query shape for a candidate value against
// one namespace, shared by both the direct-check task list and the radar's
// QueryBuilder.
func queryFor(namespace model.Namespace, candidateMark, value string) any {
	switch namespace {
	case model.NamespaceGitHubOrg:
		return adapters.GitHubOrgQuery{Org: value}
	case model.NamespaceGitHubRepo:
		return adapters.GitHubRepoQuery{Owner: value, Name: value}
	case model.NamespaceNPM:
		return adapters.NPMQuery{Name: value}
	case model.NamespacePyPI:
		return adapters.PyPIQuery{Name: value}
	case model.NamespaceCratesIO:
		return adapters.CratesQuery{Name: value}
	case model.NamespaceDockerHub:
		return adapters.DockerHubQuery{Name: value}
	case model.NamespaceHuggingFaceModel:
		return adapters.HuggingFaceModelQuery{Name: value}
	case model.NamespaceHuggingFaceSpace:
		return adapters.HuggingFaceSpaceQuery{Name: value}
	case model.NamespaceDomain:
		return adapters.DomainQuery{CandidateMark: candidateMark, Value: value}
	default:
		return nil
	}
}
