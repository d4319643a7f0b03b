package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/cli"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/clock"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/ledger"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/manifest"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Generate or verify a run directory's hash manifest",
}

var manifestGenerateCmd = &cobra.Command{
	Use:   "generate <dir>",
	Short: "Hash every file in a run directory into manifest.json",
	Args:  cobra.ExactArgs(1),
	RunE:  runManifestGenerate,
}

var manifestVerifyCmd = &cobra.Command{
	Use:   "verify <manifest-path>",
	Short: "Rehash every file a manifest lists and report mismatches",
	Args:  cobra.ExactArgs(1),
	RunE:  runManifestVerify,
}

func init() {
	manifestCmd.AddCommand(manifestGenerateCmd, manifestVerifyCmd)
	rootCmd.AddCommand(manifestCmd)
}

func runManifestGenerate(cmd *cobra.Command, args []string) error {
	dir := args[0]

	m, err := manifest.Generate(dir, clock.SystemClock)
	if err != nil {
		return fmt.Errorf("coe manifest generate: %w", err)
	}

	path := filepath.Join(dir, manifest.ManifestFileName)
	if err := manifest.Write(path, m); err != nil {
		return &cli.RenderError{Path: path, Cause: err}
	}

	if cfg.Ledger.LedgerEnabled() {
		l, err := ledger.Open(cfg.Ledger.Path, nil)
		if err == nil {
			defer l.Close()
			_, _ = l.Record(cmd.Context(), path, m)
		}
	}

	fmt.Printf("wrote %s (rootSha256 %s, %d files)\n", path, m.RootSHA256, len(m.Files))
	return nil
}

func runManifestVerify(cmd *cobra.Command, args []string) error {
	result, err := manifest.Verify(args[0])
	if err != nil {
		return fmt.Errorf("coe manifest verify: %w", err)
	}

	if result.Verified {
		fmt.Println("verified: true")
		return nil
	}

	fmt.Println("verified: false")
	for _, mm := range result.Mismatches {
		fmt.Printf("  %s: %s\n", mm.Path, mm.Reason)
	}
	return &cli.MismatchError{Count: len(result.Mismatches)}
}
