package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/ledger"
)

var ledgerLimit int

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Browse the SQLite-backed history of past run manifests",
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded run manifests, newest first",
	RunE:  runLedgerList,
}

var ledgerShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded run manifest by its run ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runLedgerShow,
}

func init() {
	ledgerListCmd.Flags().IntVar(&ledgerLimit, "limit", 20, "maximum entries to return")
	ledgerCmd.AddCommand(ledgerListCmd, ledgerShowCmd)
	rootCmd.AddCommand(ledgerCmd)
}

func runLedgerList(cmd *cobra.Command, args []string) error {
	l, err := ledger.Open(cfg.Ledger.Path, nil)
	if err != nil {
		return fmt.Errorf("coe ledger list: %w", err)
	}
	defer l.Close()

	entries, err := l.Query(cmd.Context(), ledger.Query{Limit: ledgerLimit})
	if err != nil {
		return fmt.Errorf("coe ledger list: %w", err)
	}

	for _, e := range entries {
		fmt.Printf("%s  %s  %s  files=%d bytes=%d  %s\n",
			e.GeneratedAt, e.RunID, e.RootSHA256[:12], e.FileCount, e.TotalBytes, e.ManifestPath)
	}
	return nil
}

func runLedgerShow(cmd *cobra.Command, args []string) error {
	l, err := ledger.Open(cfg.Ledger.Path, nil)
	if err != nil {
		return fmt.Errorf("coe ledger show: %w", err)
	}
	defer l.Close()

	e, err := l.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("coe ledger show: %w", err)
	}

	fmt.Printf("runId:        %s\n", e.RunID)
	fmt.Printf("generatedAt:  %s\n", e.GeneratedAt)
	fmt.Printf("rootSha256:   %s\n", e.RootSHA256)
	fmt.Printf("manifestPath: %s\n", e.ManifestPath)
	fmt.Printf("files:        %d\n", e.FileCount)
	fmt.Printf("totalBytes:   %d\n", e.TotalBytes)
	return nil
}
