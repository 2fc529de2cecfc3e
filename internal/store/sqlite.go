package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/jonathan/job-fit-analyzer/internal/types"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS jobs (
	id                 TEXT PRIMARY KEY,
	title              TEXT NOT NULL,
	company            TEXT NOT NULL,
	description        TEXT NOT NULL DEFAULT '',
	location           TEXT NOT NULL DEFAULT '',
	work_location_type TEXT NOT NULL DEFAULT '',
	employment_type    TEXT NOT NULL DEFAULT '',
	priority           INTEGER,
	is_ai_forward      INTEGER,
	target_role        TEXT NOT NULL DEFAULT '',
	analysis           TEXT,
	notes              TEXT,
	analyzed_at        TEXT,
	created_at         TEXT NOT NULL,
	seq                INTEGER NOT NULL DEFAULT 0
)`

// SQLite is a JobStore backed by a local database file
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a database file and ensures the jobs table exists
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create jobs table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Insert implements JobStore
func (s *SQLite) Insert(ctx context.Context, posting types.Posting) (string, error) {
	id := posting.ID
	if id == "" {
		id = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, title, company, description, location, work_location_type, employment_type, created_at, seq)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM jobs))`,
		id, posting.Title, posting.Company, posting.Description, posting.Location,
		string(posting.WorkLocationType), posting.EmploymentType, formatTime(time.Now()),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert job: %w", err)
	}
	return id, nil
}

// Get implements JobStore
func (s *SQLite) Get(ctx context.Context, id string) (*JobRecord, error) {
	var (
		r                    JobRecord
		workType, targetRole string
		priority             sql.NullInt64
		aiForward            sql.NullBool
		analysis, notes      sql.NullString
		analyzedAt           sql.NullString
		createdAt            string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, company, description, location, work_location_type, employment_type,
		        priority, is_ai_forward, target_role, analysis, notes, analyzed_at, created_at
		 FROM jobs WHERE id = ?`,
		id,
	).Scan(&r.Posting.ID, &r.Posting.Title, &r.Posting.Company, &r.Posting.Description, &r.Posting.Location,
		&workType, &r.Posting.EmploymentType, &priority, &aiForward, &targetRole,
		&analysis, &notes, &analyzedAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	r.Posting.WorkLocationType = types.ParseWorkLocationType(workType)
	r.TargetRole = types.RoleType(targetRole)
	if priority.Valid {
		v := int(priority.Int64)
		r.Priority = &v
	}
	if aiForward.Valid {
		v := aiForward.Bool
		r.IsAIForward = &v
	}
	if analysis.Valid {
		r.Analysis = []byte(analysis.String)
	}
	if notes.Valid {
		r.Notes = unmarshalNotes([]byte(notes.String))
	}
	if analyzedAt.Valid {
		if t, err := parseTime(analyzedAt.String); err == nil {
			r.AnalyzedAt = &t
		}
	}
	r.CreatedAt, _ = parseTime(createdAt)
	return &r, nil
}

// ListUnanalyzed implements JobStore
func (s *SQLite) ListUnanalyzed(ctx context.Context, minDescriptionLength, limit int) ([]types.Posting, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, company, description, location, work_location_type, employment_type
		 FROM jobs
		 WHERE analyzed_at IS NULL AND length(description) >= ?
		 ORDER BY seq
		 LIMIT ?`,
		minDescriptionLength, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list unanalyzed jobs: %w", err)
	}
	defer rows.Close()

	postings := []types.Posting{}
	for rows.Next() {
		var (
			posting  types.Posting
			workType string
		)
		if err := rows.Scan(&posting.ID, &posting.Title, &posting.Company, &posting.Description,
			&posting.Location, &workType, &posting.EmploymentType); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		posting.WorkLocationType = types.ParseWorkLocationType(workType)
		postings = append(postings, posting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}
	return postings, nil
}

// SaveAnalysis implements JobStore
func (s *SQLite) SaveAnalysis(ctx context.Context, id string, update AnalysisUpdate) error {
	analysis, notes, err := marshalUpdate(update)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs
		 SET priority = ?, is_ai_forward = ?, target_role = ?, analysis = ?, notes = ?, analyzed_at = ?
		 WHERE id = ?`,
		types.ClampScore(update.Priority), update.IsAIForward, string(update.TargetRole),
		string(analysis), string(notes), formatTime(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
