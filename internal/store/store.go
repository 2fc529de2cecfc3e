// Package store persists job postings and the analyses written back onto them.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/job-fit-analyzer/internal/types"
)

// ErrNotFound is returned when a job does not exist
var ErrNotFound = errors.New("job not found")

// Drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// JobRecord is a stored posting with its analysis fields
type JobRecord struct {
	Posting     types.Posting
	Priority    *int
	IsAIForward *bool
	TargetRole  types.RoleType
	Analysis    json.RawMessage
	Notes       []types.JobNote
	AnalyzedAt  *time.Time
	CreatedAt   time.Time
}

// Analyzed reports whether an analysis was written back
func (r *JobRecord) Analyzed() bool {
	return r.AnalyzedAt != nil
}

// AnalysisUpdate is the subset of an analysis persisted onto a job
type AnalysisUpdate struct {
	Priority    int
	IsAIForward bool
	TargetRole  types.RoleType
	// Analysis is any JSON-serializable analysis document
	Analysis any
	Notes    []types.JobNote
}

// JobStore is the storage used by batch analysis
type JobStore interface {
	// Insert stores a posting, assigning an ID when it has none, and returns the ID
	Insert(ctx context.Context, posting types.Posting) (string, error)
	// Get returns a job or ErrNotFound
	Get(ctx context.Context, id string) (*JobRecord, error)
	// ListUnanalyzed returns up to limit jobs without an analysis whose description
	// has at least minDescriptionLength characters, oldest first
	ListUnanalyzed(ctx context.Context, minDescriptionLength, limit int) ([]types.Posting, error)
	// SaveAnalysis writes analysis fields onto a job or returns ErrNotFound
	SaveAnalysis(ctx context.Context, id string, update AnalysisUpdate) error
	Close() error
}

// Open connects to the store selected by driver and ensures its schema exists
func Open(ctx context.Context, driver, dsn string) (JobStore, error) {
	switch driver {
	case DriverPostgres:
		return OpenPostgres(ctx, dsn)
	case DriverSQLite, "":
		return OpenSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
}

func marshalUpdate(update AnalysisUpdate) (analysis, notes []byte, err error) {
	analysis, err = json.Marshal(update.Analysis)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}
	if update.Notes == nil {
		update.Notes = []types.JobNote{}
	}
	notes, err = json.Marshal(update.Notes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal notes: %w", err)
	}
	return analysis, notes, nil
}

func unmarshalNotes(data []byte) []types.JobNote {
	if len(data) == 0 {
		return nil
	}
	var notes []types.JobNote
	_ = json.Unmarshal(data, &notes)
	return notes
}
