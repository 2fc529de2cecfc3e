package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/job-fit-analyzer/internal/llm/llmtest"
	"github.com/jonathan/job-fit-analyzer/internal/profile"
	"github.com/jonathan/job-fit-analyzer/internal/store"
	"github.com/jonathan/job-fit-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBatchStore(t *testing.T, postings ...types.Posting) *store.SQLite {
	t.Helper()
	st, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	for _, p := range postings {
		_, err := st.Insert(context.Background(), p)
		require.NoError(t, err)
	}
	return st
}

func numberedPostings(n int) []types.Posting {
	postings := make([]types.Posting, 0, n)
	for i := 1; i <= n; i++ {
		p := directorPosting()
		p.ID = fmt.Sprintf("job-%d", i)
		postings = append(postings, p)
	}
	return postings
}

// failingStore rejects writes for one job
type failingStore struct {
	*store.SQLite
	failID string
}

func (f failingStore) SaveAnalysis(ctx context.Context, id string, update store.AnalysisUpdate) error {
	if id == f.failID {
		return errors.New("disk full")
	}
	return f.SQLite.SaveAnalysis(ctx, id, update)
}

func newBatch(t *testing.T, st store.JobStore, fake *llmtest.Fake) (*Batch, *observer.ObservedLogs) {
	t.Helper()
	s, _ := newTestService(t, fake)
	core, logs := observer.New(zapcore.DebugLevel)
	return NewBatch(st, s, zap.New(core)), logs
}

func TestBatch_EmptyStore(t *testing.T) {
	b, logs := newBatch(t, openBatchStore(t), &llmtest.Fake{})

	got, err := b.Run(context.Background(), BatchOptions{})

	require.NoError(t, err)
	assert.NotEmpty(t, got.RunID)
	assert.Zero(t, got.TotalEligible)
	assert.Zero(t, got.Processed)
	assert.Empty(t, got.Results)
	assert.NotNil(t, got.Results)
	assert.Equal(t, 1, logs.FilterMessage("batch_complete").Len())
}

func TestBatch_RuleBasedWritesBack(t *testing.T) {
	short := directorPosting()
	short.ID = "job-short"
	short.Description = "Too short to analyze"
	st := openBatchStore(t, append(numberedPostings(3), short)...)
	b, _ := newBatch(t, st, &llmtest.Fake{})
	ctx := context.Background()

	got, err := b.Run(ctx, BatchOptions{MinDescriptionLength: 100, Parallelism: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalEligible)
	assert.Equal(t, 3, got.Processed)
	assert.Equal(t, 3, got.Successful)
	assert.Zero(t, got.Failed)
	for i, r := range got.Results {
		assert.Equal(t, fmt.Sprintf("job-%d", i+1), r.JobID)
		assert.Equal(t, 81, r.Priority)
		assert.Equal(t, string(types.SourceRuleBased), r.Source)
	}

	rec, err := st.Get(ctx, "job-2")
	require.NoError(t, err)
	assert.True(t, rec.Analyzed())
	require.NotNil(t, rec.Priority)
	assert.Equal(t, 81, *rec.Priority)
	assert.Equal(t, types.RoleDirector, rec.TargetRole)

	var doc Document
	require.NoError(t, json.Unmarshal(rec.Analysis, &doc))
	assert.Equal(t, types.SourceRuleBased, doc.Source)
	assert.Equal(t, 81, doc.Result.SuggestedPriority)

	shortRec, err := st.Get(ctx, "job-short")
	require.NoError(t, err)
	assert.False(t, shortRec.Analyzed())

	again, err := b.Run(ctx, BatchOptions{MinDescriptionLength: 100})
	require.NoError(t, err)
	assert.Zero(t, again.TotalEligible, "analyzed jobs are not picked up twice")
}

func TestBatch_RespectsLimit(t *testing.T) {
	b, _ := newBatch(t, openBatchStore(t, numberedPostings(4)...), &llmtest.Fake{})

	got, err := b.Run(context.Background(), BatchOptions{Limit: 2, MinDescriptionLength: 100})

	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalEligible)
	assert.Equal(t, 2, got.Processed)
}

func TestBatch_SaveFailureIsCounted(t *testing.T) {
	st := failingStore{SQLite: openBatchStore(t, numberedPostings(2)...), failID: "job-1"}
	b, logs := newBatch(t, st, &llmtest.Fake{})

	got, err := b.Run(context.Background(), BatchOptions{MinDescriptionLength: 100, Parallelism: 1})

	require.NoError(t, err)
	assert.Equal(t, 2, got.Processed)
	assert.Equal(t, 1, got.Successful)
	assert.Equal(t, 1, got.Failed)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "job-2", got.Results[0].JobID)
	assert.Equal(t, BatchJobResult{JobID: "job-1", Error: "disk full"}, got.Results[1], "failures are listed after ranked jobs")
	assert.Equal(t, 1, logs.FilterMessage("batch_job_failed").Len())
}

func TestBatch_ResultsRankedByFit(t *testing.T) {
	weak := types.Posting{
		ID:    "job-1",
		Title: "Support Specialist",
		Description: "Requirements:\n- Experience with Java, PHP and Kotlin\n" +
			"- Friendly phone manner for our accounting customers in the downtown office",
		Location:         "Seattle, WA",
		WorkLocationType: types.WorkOnSite,
	}
	strong := directorPosting()
	strong.ID = "job-2"
	b, _ := newBatch(t, openBatchStore(t, weak, strong), &llmtest.Fake{})

	got, err := b.Run(context.Background(), BatchOptions{MinDescriptionLength: 100, Parallelism: 1})

	require.NoError(t, err)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "job-2", got.Results[0].JobID)
	assert.Equal(t, types.RoleDirector, got.Results[0].Role)
	assert.Equal(t, "job-1", got.Results[1].JobID)
	assert.Greater(t, got.Results[0].Priority, got.Results[1].Priority)
}

func TestBatch_AIRequestedWithoutModelRunsRuleOnly(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewService(NewAnalyzer(profile.Default()))
	b := NewBatch(openBatchStore(t, numberedPostings(3)...), s, zap.New(core))
	b.sleep = func(context.Context, time.Duration) error {
		t.Fatal("no delay expected without a model")
		return nil
	}

	got, err := b.Run(context.Background(), BatchOptions{MinDescriptionLength: 100, UseAI: true, Delay: time.Second})

	require.NoError(t, err)
	assert.Equal(t, 3, got.Successful)
	assert.Equal(t, 1, logs.FilterMessage("batch_ai_not_configured").Len())
	for _, r := range got.Results {
		assert.Equal(t, string(types.SourceRuleBased), r.Source)
	}
}

func TestBatch_AISequentialWithDelay(t *testing.T) {
	fake := &llmtest.Fake{Response: vpResponse}
	b, _ := newBatch(t, openBatchStore(t, numberedPostings(3)...), fake)
	var slept []time.Duration
	b.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	got, err := b.Run(context.Background(), BatchOptions{MinDescriptionLength: 100, UseAI: true, Delay: 2 * time.Second})

	require.NoError(t, err)
	assert.Equal(t, 3, got.Successful)
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, slept)
	assert.Equal(t, 3, fake.Calls())
	for _, r := range got.Results {
		assert.Equal(t, 77, r.Priority)
		assert.Equal(t, string(types.SourceAIAssisted), r.Source)
	}
}

func TestBatch_CancelledDuringDelay(t *testing.T) {
	fake := &llmtest.Fake{Response: vpResponse}
	st := openBatchStore(t, numberedPostings(3)...)
	b, logs := newBatch(t, st, fake)
	ctx, cancel := context.WithCancel(context.Background())
	b.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	got, err := b.Run(ctx, BatchOptions{MinDescriptionLength: 100, UseAI: true, Delay: time.Second})

	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalEligible)
	assert.Equal(t, 1, got.Processed)
	assert.Equal(t, 2, logs.FilterMessage("batch_job_skipped").Len())

	rec, err := st.Get(context.Background(), "job-3")
	require.NoError(t, err)
	assert.False(t, rec.Analyzed())
}
