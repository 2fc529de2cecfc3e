package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/job-fit-analyzer/internal/types"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS jobs (
	id                 UUID PRIMARY KEY,
	title              TEXT NOT NULL,
	company            TEXT NOT NULL,
	description        TEXT NOT NULL DEFAULT '',
	location           TEXT NOT NULL DEFAULT '',
	work_location_type TEXT NOT NULL DEFAULT '',
	employment_type    TEXT NOT NULL DEFAULT '',
	priority           INTEGER,
	is_ai_forward      BOOLEAN,
	target_role        TEXT NOT NULL DEFAULT '',
	analysis           JSONB,
	notes              JSONB,
	analyzed_at        TIMESTAMPTZ,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Postgres is a JobStore backed by a PostgreSQL connection pool
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres establishes a connection pool and ensures the jobs table exists
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create jobs table: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// Insert implements JobStore
func (p *Postgres) Insert(ctx context.Context, posting types.Posting) (string, error) {
	id, err := postingUUID(posting.ID)
	if err != nil {
		return "", err
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO jobs (id, title, company, description, location, work_location_type, employment_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, posting.Title, posting.Company, posting.Description, posting.Location,
		string(posting.WorkLocationType), posting.EmploymentType,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert job: %w", err)
	}
	return id.String(), nil
}

// Get implements JobStore
func (p *Postgres) Get(ctx context.Context, id string) (*JobRecord, error) {
	jobID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var (
		r          JobRecord
		uid        uuid.UUID
		workType   string
		targetRole string
		notes      []byte
	)
	err = p.pool.QueryRow(ctx,
		`SELECT id, title, company, description, location, work_location_type, employment_type,
		        priority, is_ai_forward, target_role, analysis, notes, analyzed_at, created_at
		 FROM jobs WHERE id = $1`,
		jobID,
	).Scan(&uid, &r.Posting.Title, &r.Posting.Company, &r.Posting.Description, &r.Posting.Location,
		&workType, &r.Posting.EmploymentType, &r.Priority, &r.IsAIForward, &targetRole,
		&r.Analysis, &notes, &r.AnalyzedAt, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	r.Posting.ID = uid.String()
	r.Posting.WorkLocationType = types.ParseWorkLocationType(workType)
	r.TargetRole = types.RoleType(targetRole)
	r.Notes = unmarshalNotes(notes)
	return &r, nil
}

// ListUnanalyzed implements JobStore
func (p *Postgres) ListUnanalyzed(ctx context.Context, minDescriptionLength, limit int) ([]types.Posting, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, title, company, description, location, work_location_type, employment_type
		 FROM jobs
		 WHERE analyzed_at IS NULL AND char_length(description) >= $1
		 ORDER BY created_at, id
		 LIMIT $2`,
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
			uid      uuid.UUID
			workType string
		)
		if err := rows.Scan(&uid, &posting.Title, &posting.Company, &posting.Description,
			&posting.Location, &workType, &posting.EmploymentType); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		posting.ID = uid.String()
		posting.WorkLocationType = types.ParseWorkLocationType(workType)
		postings = append(postings, posting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}
	return postings, nil
}

// SaveAnalysis implements JobStore
func (p *Postgres) SaveAnalysis(ctx context.Context, id string, update AnalysisUpdate) error {
	jobID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	analysis, notes, err := marshalUpdate(update)
	if err != nil {
		return err
	}

	tag, err := p.pool.Exec(ctx,
		`UPDATE jobs
		 SET priority = $1, is_ai_forward = $2, target_role = $3, analysis = $4, notes = $5, analyzed_at = $6
		 WHERE id = $7`,
		types.ClampScore(update.Priority), update.IsAIForward, string(update.TargetRole),
		analysis, notes, time.Now().UTC(), jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func postingUUID(id string) (uuid.UUID, error) {
	if id == "" {
		return uuid.New(), nil
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid job id %q: %w", id, err)
	}
	return parsed, nil
}
