package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/cache"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/cache/janitor"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/cli"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/clock"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/config"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/telemetry/logging"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/telemetry/metrics"
)

var (
	// cfgFile is the --config global flag; cfg is the loaded result every
	// subcommand's RunE reads from, populated by rootCmd's PersistentPreRunE.
	cfgFile string
	cfg     *config.Config

	// bgCtx is cancelled on SIGINT/SIGTERM and bounds every background
	// service loadConfig starts (the cache janitor, the weights watcher).
	bgCtx context.Context

	logger           *logging.Logger
	metricsCollector *metrics.Collector
	diskCache        *cache.Cache
	cacheJanitor     *janitor.Janitor
	weightsWatcher   *config.WeightsWatcher
	weightsMu        sync.Mutex
)

var rootCmd = &cobra.Command{
	Use:   "coe",
	Short: "Clearance Opinion Engine - is this name safe to use?",
	Long: `coe answers whether a proposed project name is safely usable across
public code hosts, package registries, container registries, model hubs,
and DNS. It produces a tiered clearance opinion (GREEN/YELLOW/RED) backed
by a content-addressed evidence chain a third party can replay.`,
	Version:           Version,
	PersistentPreRunE: loadConfig,
}

func loadConfig(cmd *cobra.Command, args []string) error {
	// The --config flag wins over COE_CONFIG, which wins over the default.
	if !cmd.Root().PersistentFlags().Changed("config") {
		if env := os.Getenv("COE_CONFIG"); env != "" {
			cfgFile = env
		}
	}

	loaded, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// coe is usable with zero configuration; a missing --config
			// file falls back to defaults. Any other load error -
			// malformed YAML, failed validation - still aborts.
			loaded = &config.Config{}
			config.ApplyDefaults(loaded)
		} else {
			return fmt.Errorf("coe: %w", err)
		}
	}
	cfg = loaded
	bgCtx = cli.SetupSignalHandler()

	logger, err = buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("coe: %w", err)
	}
	metricsCollector = buildMetricsCollector(cfg)

	diskCache, err = openCacheFromConfig(cfg, clock.SystemClock)
	if err != nil {
		return fmt.Errorf("coe: %w", err)
	}

	startJanitor()
	startWeightsWatcher()

	return nil
}

// startJanitor starts the content-addressed cache's expired-entry sweep
// when both a cache directory and a janitor schedule are configured, per
// CacheConfig.JanitorSchedule's doc: "empty disables the janitor".
func startJanitor() {
	if diskCache == nil || cfg.Cache.JanitorSchedule == "" {
		return
	}

	var evictions janitor.EvictionRecorder
	if metricsCollector != nil {
		evictions = metricsCollector
	}

	cacheJanitor = janitor.New(diskCache, cfg.Cache.JanitorSchedule, evictions, slog.Default())
	if err := cacheJanitor.Start(bgCtx); err != nil {
		slog.Warn("failed to start cache janitor", "error", err)
		cacheJanitor = nil
	}
}

// startWeightsWatcher watches Opinion.WeightsFile, when configured, and
// reloads cfg.Opinion.Weights in place on every valid edit, matching the
// field's own doc comment: "watched for changes and reloaded into Weights
// without restarting the process."
func startWeightsWatcher() {
	if cfg.Opinion.WeightsFile == "" {
		return
	}

	w, err := config.NewWeightsWatcher(cfg.Opinion.WeightsFile, slog.Default())
	if err != nil {
		slog.Warn("failed to start weights watcher", "error", err)
		return
	}
	weightsWatcher = w

	go func() {
		if err := w.Watch(func(weights map[string]float64) {
			weightsMu.Lock()
			cfg.Opinion.Weights = weights
			weightsMu.Unlock()
		}); err != nil {
			slog.Warn("weights watcher stopped", "error", err)
		}
	}()

	go func() {
		<-bgCtx.Done()
		w.Stop()
	}()
}

// Execute runs the root command, mapping errors to the exit-code contract:
// 1 for a manifest mismatch, 2 for everything else (configuration/usage
// errors, adapter/transport failures surfaced as command errors).
func Execute() {
	err := rootCmd.Execute()

	if cacheJanitor != nil {
		cacheJanitor.Stop()
	}
	if weightsWatcher != nil {
		weightsWatcher.Stop()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		var mismatch *cli.MismatchError
		if errors.As(err, &mismatch) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "coe.yaml", "config file path")
}
