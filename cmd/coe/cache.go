package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/cache"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/clock"
)

var cacheExpiredOnly bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the content-addressed disk cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report cache entry count and total size on disk",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cache entries",
	RunE:  runCacheClear,
}

func init() {
	cacheClearCmd.Flags().BoolVar(&cacheExpiredOnly, "expired-only", false, "only remove entries past their TTL")
	cacheCmd.AddCommand(cacheStatsCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openCache() (*cache.Cache, error) {
	if cfg.Cache.Dir == "" {
		return nil, fmt.Errorf("coe cache: no cache directory configured (set cache.dir or COE_CACHE_DIR)")
	}
	return cache.New(cfg.Cache.Dir, cache.Options{
		MaxAgeHours: cfg.Cache.MaxAgeHours,
		Now:         clock.SystemClock,
	})
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	c, err := openCache()
	if err != nil {
		return err
	}
	stats, err := c.Stats()
	if err != nil {
		return fmt.Errorf("coe cache stats: %w", err)
	}
	fmt.Printf("entries: %d\ntotalBytes: %d\n", stats.Entries, stats.TotalBytes)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	c, err := openCache()
	if err != nil {
		return err
	}
	result, err := c.Clear(cache.ClearOptions{ExpiredOnly: cacheExpiredOnly})
	if err != nil {
		return fmt.Errorf("coe cache clear: %w", err)
	}
	fmt.Printf("cleared: %d\n", result.Cleared)
	return nil
}
