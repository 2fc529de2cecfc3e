package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-fit-analyzer/internal/analysis"
	"github.com/jonathan/job-fit-analyzer/internal/store"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze stored jobs that have no analysis yet",
	Long:  "Batch analyzes up to --limit stored jobs whose description is at least --min-length characters and writes priority, role and analysis back to the store.",
	RunE:  runBatch,
}

var (
	batchLimit       int
	batchMinLength   int
	batchDelay       time.Duration
	batchUseAI       bool
	batchParallelism int
)

func init() {
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "Maximum jobs to process (default from config)")
	batchCmd.Flags().IntVar(&batchMinLength, "min-length", 0, "Minimum description length (default from config)")
	batchCmd.Flags().DurationVar(&batchDelay, "delay", -1, "Delay between AI calls (default from config)")
	batchCmd.Flags().BoolVar(&batchUseAI, "ai", false, "Use AI analysis when an API key is configured")
	batchCmd.Flags().IntVar(&batchParallelism, "parallelism", 0, "Workers for rule-only runs (default: number of CPUs)")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := analysis.BatchOptions{
		Limit:                a.cfg.Batch.Limit,
		MinDescriptionLength: a.cfg.Batch.MinDescriptionLength,
		Delay:                a.cfg.Batch.Delay,
		UseAI:                batchUseAI,
		Parallelism:          batchParallelism,
	}
	if batchLimit > 0 {
		opts.Limit = batchLimit
	}
	if batchMinLength > 0 {
		opts.MinDescriptionLength = batchMinLength
	}
	if batchDelay >= 0 {
		opts.Delay = batchDelay
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openStore(ctx, a)
	if err != nil {
		return err
	}

	svc, err := a.service(ctx, batchUseAI, false)
	if err != nil {
		return err
	}

	result, err := analysis.NewBatch(st, svc, a.log).Run(ctx, opts)
	if err != nil {
		return err
	}
	if jsonOutput {
		return a.printJSON(result)
	}
	a.printer().PrintBatch(result)
	return nil
}

func openStore(ctx context.Context, a *app) (store.JobStore, error) {
	if a.cfg.Store.DSN == "" {
		return nil, fmt.Errorf("no job store configured (set DATABASE_URL or store.dsn)")
	}
	st, err := store.Open(ctx, a.cfg.Store.Driver, a.cfg.Store.DSN)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = st.Close() })
	return st, nil
}
