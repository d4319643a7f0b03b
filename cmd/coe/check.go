package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/cli"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/clock"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/model"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/opinion"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/radar"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/runner"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/telemetry/logging"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/variants"
)

// radarMetrics returns the package-level metrics collector as a
// radar.MetricsRecorder, or a true nil interface when metrics are disabled
// (never a (*metrics.Collector)(nil) wrapped in a non-nil interface).
func radarMetrics() radar.MetricsRecorder {
	if metricsCollector == nil {
		return nil
	}
	return metricsCollector
}

var (
	checkOutputFormat string
	checkNamespaces   []string
)

var checkCmd = &cobra.Command{
	Use:   "check <name>",
	Short: "Produce a clearance opinion for a candidate project name",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return &cli.UsageError{Code: cli.CodeNoArgs, Message: "a candidate mark is required"}
		}
		if len(args) > 1 {
			return fmt.Errorf("coe check: expected exactly one candidate mark, got %d", len(args))
		}
		return nil
	},
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkOutputFormat, "output", "o", "text", "output format: text|json|csv")
	checkCmd.Flags().StringSliceVarP(&checkNamespaces, "namespaces", "n", nil,
		"restrict checks to these namespace channels (default: all)")
	rootCmd.AddCommand(checkCmd)
}

// knownNamespaces is the closed set of namespace channels --namespaces
// accepts; anything else is a usage error before a single check runs.
var knownNamespaces = map[model.Namespace]bool{
	model.NamespaceGitHubOrg:        true,
	model.NamespaceGitHubRepo:       true,
	model.NamespaceNPM:              true,
	model.NamespacePyPI:             true,
	model.NamespaceCratesIO:         true,
	model.NamespaceDockerHub:        true,
	model.NamespaceHuggingFaceModel: true,
	model.NamespaceHuggingFaceSpace: true,
	model.NamespaceDomain:           true,
}

// selectedNamespaces resolves the --namespaces flag to a filter set, or nil
// when every channel should run.
func selectedNamespaces(names []string) (map[model.Namespace]bool, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make(map[model.Namespace]bool, len(names))
	for _, n := range names {
		ns := model.Namespace(n)
		if !knownNamespaces[ns] {
			return nil, &cli.UsageError{
				Code:    cli.CodeBadChannel,
				Message: fmt.Sprintf("unknown namespace channel %q", n),
			}
		}
		out[ns] = true
	}
	return out, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	mark := args[0]
	ctx := logging.WithCandidateMark(logging.WithRunID(bgCtx, uuid.New().String()), mark)
	if logger != nil {
		logger.InfoContext(ctx, "check started", "tlds", cfg.Adapters.DomainTLDs)
	}

	selected, err := selectedNamespaces(checkNamespaces)
	if err != nil {
		return err
	}

	eng := buildEngine(cfg, clock.SystemClock, diskCache, logger, metricsCollector)

	tasks := directTasks(mark, eng.tlds)
	if selected != nil {
		filtered := tasks[:0]
		for _, task := range tasks {
			if selected[task.Namespace] {
				filtered = append(filtered, task)
			}
		}
		tasks = filtered
	}
	run := runner.New(eng.checkers, cfg.Adapters.Concurrency).
		WithProgress(cli.NewProgressReporter(os.Stderr)).
		WithLogger(logger)
	results, err := run.Run(ctx, tasks)
	if err != nil {
		return fmt.Errorf("coe check: %w", err)
	}

	checks := make([]model.Check, 0, len(results))
	for _, r := range results {
		checks = append(checks, r.Check)
	}

	radarCheckers := make(map[model.Namespace]radar.Checker, len(eng.checkers))
	for ns, c := range eng.checkers {
		radarCheckers[ns] = c
	}
	hits := radar.Scan(ctx, mark, radarCheckers, func(ns model.Namespace, value string) any {
		return queryFor(ns, mark, value)
	}, radar.ScanOptions{
		Threshold:      cfg.Radar.SimilarityThreshold,
		MaxPerCategory: cfg.Radar.MaxVariantsPerCategory,
		Metrics:        radarMetrics(),
		Logger:         logger,
	})

	weightsMu.Lock()
	weights := cfg.Opinion.Weights
	weightsMu.Unlock()

	op, err := opinion.Evaluate(opinion.Input{
		Checks:      checks,
		RadarHits:   hits,
		AllVariants: variants.Generate(mark),
		Weights:     weights,
		Thresholds: opinion.Thresholds{
			Green:  cfg.Opinion.GreenThreshold,
			Yellow: cfg.Opinion.YellowThreshold,
		},
	})
	if err != nil {
		return fmt.Errorf("coe check: %w", err)
	}

	format := cli.OutputFormat(checkOutputFormat)
	formatter := cli.NewFormatter(format)
	return formatter.FormatTo(os.Stdout, op)
}

// directTasks builds the default task list, minus github_repo (ambiguous
// without an --owner the candidate mark doesn't supply): one domain task
// per configured TLD, one task per registry.
func directTasks(mark string, tlds []string) []runner.Task {
	tasks := []runner.Task{
		{Namespace: model.NamespaceGitHubOrg, Query: queryFor(model.NamespaceGitHubOrg, mark, mark)},
		{Namespace: model.NamespaceNPM, Query: queryFor(model.NamespaceNPM, mark, mark)},
		{Namespace: model.NamespacePyPI, Query: queryFor(model.NamespacePyPI, mark, mark)},
		{Namespace: model.NamespaceCratesIO, Query: queryFor(model.NamespaceCratesIO, mark, mark)},
		{Namespace: model.NamespaceDockerHub, Query: queryFor(model.NamespaceDockerHub, mark, mark)},
		{Namespace: model.NamespaceHuggingFaceModel, Query: queryFor(model.NamespaceHuggingFaceModel, mark, mark)},
		{Namespace: model.NamespaceHuggingFaceSpace, Query: queryFor(model.NamespaceHuggingFaceSpace, mark, mark)},
	}

	for _, tld := range tlds {
		fqdn := mark + "." + tld
		tasks = append(tasks, runner.Task{
			Namespace: model.NamespaceDomain,
			Query:     queryFor(model.NamespaceDomain, mark, fqdn),
		})
	}

	return tasks
}
