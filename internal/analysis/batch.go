package analysis

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-fit-analyzer/internal/logger"
	"github.com/jonathan/job-fit-analyzer/internal/store"
	"github.com/jonathan/job-fit-analyzer/internal/types"
)

// Batch defaults
const (
	DefaultBatchLimit           = 10
	DefaultMinDescriptionLength = 500
	DefaultBatchDelay           = time.Second
)

// BatchOptions controls a batch run. Zero values take the defaults, except
// Delay, which is only applied between AI calls.
type BatchOptions struct {
	Limit                int
	MinDescriptionLength int
	Delay                time.Duration
	// UseAI runs jobs one at a time through the model. Without a configured model
	// the run takes the parallel rule-only path.
	UseAI bool
	// Parallelism bounds rule-only runs; zero means one worker per CPU
	Parallelism int
}

// BatchJobResult is the outcome for one job
type BatchJobResult struct {
	JobID    string         `json:"job_id"`
	Success  bool           `json:"success"`
	Priority int            `json:"priority,omitempty"`
	Role     types.RoleType `json:"role,omitempty"`
	Source   string         `json:"source,omitempty"`
	Error    string         `json:"error,omitempty"`

	analysis types.Analysis
}

// BatchResult summarizes a batch run
type BatchResult struct {
	RunID         string           `json:"run_id"`
	TotalEligible int              `json:"total_eligible"`
	Processed     int              `json:"processed"`
	Successful    int              `json:"successful"`
	Failed        int              `json:"failed"`
	// Results lists successful jobs best fit first, then failures in processing order
	Results []BatchJobResult `json:"results"`
}

// Batch analyzes stored jobs that have no analysis yet and writes the results back
type Batch struct {
	store   store.JobStore
	service *Service
	logger  *zap.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewBatch creates a batch runner
func NewBatch(st store.JobStore, service *Service, log *zap.Logger) *Batch {
	return &Batch{
		store:   st,
		service: service,
		logger:  logger.WithFields(log, zap.String("component", "batch")),
		sleep:   sleepContext,
	}
}

// Run processes up to opts.Limit eligible jobs. AI runs go one job at a time with
// opts.Delay between calls; rule-only runs fan out over a bounded worker pool.
// Per-job failures are recorded in the result; only listing failures are returned.
func (b *Batch) Run(ctx context.Context, opts BatchOptions) (BatchResult, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultBatchLimit
	}
	if opts.MinDescriptionLength <= 0 {
		opts.MinDescriptionLength = DefaultMinDescriptionLength
	}

	result := BatchResult{RunID: uuid.NewString(), Results: []BatchJobResult{}}
	log := b.logger.With(zap.String("run_id", result.RunID))

	postings, err := b.store.ListUnanalyzed(ctx, opts.MinDescriptionLength, opts.Limit)
	if err != nil {
		return result, fmt.Errorf("failed to list eligible jobs: %w", err)
	}
	result.TotalEligible = len(postings)

	var results []BatchJobResult
	if opts.UseAI && b.service.AIConfigured() {
		results = b.runSequential(ctx, log, postings, opts.Delay)
	} else {
		if opts.UseAI {
			log.Warn("batch_ai_not_configured")
		}
		results = b.runParallel(ctx, log, postings, opts.Parallelism)
	}

	ranked := make([]Ranked, 0, len(results))
	byID := make(map[string]BatchJobResult, len(results))
	var failed []BatchJobResult
	for _, r := range results {
		result.Processed++
		if !r.Success {
			result.Failed++
			failed = append(failed, r)
			continue
		}
		result.Successful++
		ranked = append(ranked, Ranked{JobID: r.JobID, Analysis: r.analysis})
		byID[r.JobID] = r
	}
	b.service.Rules().SortByFit(ranked)
	for _, r := range ranked {
		result.Results = append(result.Results, byID[r.JobID])
	}
	result.Results = append(result.Results, failed...)

	log.Info("batch_complete",
		zap.Int("total_eligible", result.TotalEligible),
		zap.Int("processed", result.Processed),
		zap.Int("successful", result.Successful),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func (b *Batch) runSequential(ctx context.Context, log *zap.Logger, postings []types.Posting, delay time.Duration) []BatchJobResult {
	results := make([]BatchJobResult, 0, len(postings))
	for i, posting := range postings {
		if i > 0 && delay > 0 {
			if err := b.sleep(ctx, delay); err != nil {
				b.logSkipped(log, postings[i:], err)
				break
			}
		}
		if err := ctx.Err(); err != nil {
			b.logSkipped(log, postings[i:], err)
			break
		}
		results = append(results, b.process(ctx, log, posting, Options{UseAI: true}))
	}
	return results
}

func (b *Batch) runParallel(ctx context.Context, log *zap.Logger, postings []types.Posting, parallelism int) []BatchJobResult {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	done := make([]bool, len(postings))
	results := make([]BatchJobResult, len(postings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, posting := range postings {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			results[i], done[i] = b.process(gctx, log, posting, Options{}), true
			return nil
		})
	}
	_ = g.Wait()

	out := make([]BatchJobResult, 0, len(postings))
	var skipped []types.Posting
	for i, r := range results {
		if done[i] {
			out = append(out, r)
		} else {
			skipped = append(skipped, postings[i])
		}
	}
	if len(skipped) > 0 {
		b.logSkipped(log, skipped, ctx.Err())
	}
	return out
}

func (b *Batch) process(ctx context.Context, log *zap.Logger, posting types.Posting, opts Options) BatchJobResult {
	outcome := b.service.Analyze(ctx, posting, opts)
	priority := outcome.Result.SuggestedPriority

	err := b.store.SaveAnalysis(ctx, posting.ID, store.AnalysisUpdate{
		Priority:    priority,
		IsAIForward: outcome.Result.IsAIForward,
		TargetRole:  outcome.Result.SuggestedRole,
		Analysis:    outcome.Document(),
		Notes:       outcome.Notes,
	})
	if err != nil {
		log.Error("batch_job_failed", zap.String(logger.FieldJobID, posting.ID), zap.Error(err))
		return BatchJobResult{JobID: posting.ID, Error: err.Error()}
	}
	return BatchJobResult{
		JobID:    posting.ID,
		Success:  true,
		Priority: priority,
		Role:     outcome.Result.SuggestedRole,
		Source:   string(outcome.Analysis.Source()),
		analysis: outcome.Analysis,
	}
}

func (b *Batch) logSkipped(log *zap.Logger, postings []types.Posting, cause error) {
	for _, p := range postings {
		log.Warn("batch_job_skipped", zap.String(logger.FieldJobID, p.ID), zap.Error(cause))
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
