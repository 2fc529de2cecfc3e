//go:build integration

package store

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/job-fit-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestPostgres(t *testing.T) *Postgres {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	p, err := OpenPostgres(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestIntegration_Postgres_AnalysisRoundTrip(t *testing.T) {
	p := getTestPostgres(t)
	ctx := context.Background()

	id, err := p.Insert(ctx, types.Posting{
		Title:       "Integration Director " + uuid.NewString(),
		Company:     "Test Corp",
		Description: strings.Repeat("d", 600),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = p.pool.Exec(context.Background(), "DELETE FROM jobs WHERE id = $1", id) })

	pending, err := p.ListUnanalyzed(ctx, 500, 1000)
	require.NoError(t, err)
	var ids []string
	for _, j := range pending {
		ids = append(ids, j.ID)
	}
	assert.Contains(t, ids, id)

	require.NoError(t, p.SaveAnalysis(ctx, id, AnalysisUpdate{Priority: 81, TargetRole: types.RoleDirector, Analysis: map[string]int{"priority": 81}}))

	got, err := p.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.Priority)
	assert.Equal(t, 81, *got.Priority)
	assert.True(t, got.Analyzed())

	_, err = p.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}
