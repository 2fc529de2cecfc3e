package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-fit-analyzer/internal/analysis"
	"github.com/jonathan/job-fit-analyzer/internal/types"
)

var cacheStatsCmd = &cobra.Command{
	Use:   "cache-stats [posting files...]",
	Short: "Print AI result cache statistics",
	Long: `Cache-stats builds the in-process AI result cache with the configured size and TTL,
warms it by analyzing each given posting file with the AI path (twice, so the second
pass is served from the cache) and prints its statistics. --clear empties the
in-process cache and the shared Redis cache, when configured, before printing.`,
	RunE: runCacheStats,
}

var cacheStatsClear bool

func init() {
	cacheStatsCmd.Flags().BoolVar(&cacheStatsClear, "clear", false, "Clear cached AI results, including the shared Redis cache")
	rootCmd.AddCommand(cacheStatsCmd)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	svc, err := a.service(ctx, len(args) > 0, false)
	if err != nil {
		return err
	}

	for pass := 0; pass < 2; pass++ {
		for _, path := range args {
			description, err := readInput(cmd, path)
			if err != nil {
				return err
			}
			svc.Analyze(ctx, types.Posting{ID: path, Description: description}, analysis.Options{UseAI: true})
		}
	}

	if cacheStatsClear {
		if err := svc.ClearCache(ctx); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
	}

	stats := svc.Cache().Stats()
	if jsonOutput {
		return a.printJSON(stats)
	}
	a.printer().PrintCacheStats(stats)
	return nil
}
