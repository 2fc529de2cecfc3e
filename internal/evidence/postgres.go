package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/job-fit-analyzer/internal/types"
)

const (
	matchChunksSQL = `SELECT id::text, content, metadata, similarity
		FROM match_resume_chunks(
			query_embedding => $1::vector,
			query_text => $2,
			match_threshold => $3,
			match_count => $4)`

	matchChunksByCategorySQL = `SELECT id::text, content, metadata, similarity
		FROM match_resume_chunks_by_category(
			query_embedding => $1::vector,
			categories => $2,
			query_text => $3,
			match_threshold => $4,
			match_count => $5)`
)

// PgSearcher calls the pgvector match functions of the career document database
type PgSearcher struct {
	pool *pgxpool.Pool
}

// NewPgSearcher wraps an existing pool
func NewPgSearcher(pool *pgxpool.Pool) *PgSearcher {
	return &PgSearcher{pool: pool}
}

// ConnectPgSearcher opens a pool to the document database
func ConnectPgSearcher(ctx context.Context, databaseURL string) (*PgSearcher, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to evidence database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping evidence database: %w", err)
	}
	return NewPgSearcher(pool), nil
}

// Close closes the connection pool
func (s *PgSearcher) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Search implements Searcher
func (s *PgSearcher) Search(ctx context.Context, q Query) ([]types.ResumeSearchResult, error) {
	vector := vectorLiteral(q.Embedding)

	var (
		rows pgx.Rows
		err  error
	)
	if len(q.Categories) > 0 {
		rows, err = s.pool.Query(ctx, matchChunksByCategorySQL, vector, q.Categories, q.Text, q.Threshold, q.Limit)
	} else {
		rows, err = s.pool.Query(ctx, matchChunksSQL, vector, q.Text, q.Threshold, q.Limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query resume chunks: %w", err)
	}
	defer rows.Close()

	var results []types.ResumeSearchResult
	for rows.Next() {
		var (
			id, content string
			metadata    []byte
			similarity  float64
		)
		if err := rows.Scan(&id, &content, &metadata, &similarity); err != nil {
			return nil, fmt.Errorf("failed to scan resume chunk: %w", err)
		}
		results = append(results, chunkResult(id, content, metadata, similarity))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resume chunks: %w", err)
	}
	return results, nil
}

type chunkMetadata struct {
	Source   string `json:"source"`
	Category string `json:"category"`
	Section  string `json:"section"`
}

// chunkResult builds a search result, reading source, category and section from
// the chunk's metadata. Unreadable metadata leaves them unknown.
func chunkResult(id, content string, metadata []byte, similarity float64) types.ResumeSearchResult {
	var meta chunkMetadata
	if len(metadata) > 0 {
		_ = json.Unmarshal(metadata, &meta)
	}
	if meta.Source == "" {
		meta.Source = "unknown"
	}
	if meta.Category == "" {
		meta.Category = "unknown"
	}
	return types.ResumeSearchResult{
		ID:         id,
		Content:    content,
		Source:     meta.Source,
		Category:   meta.Category,
		Similarity: similarity,
		Section:    meta.Section,
	}
}

// vectorLiteral renders an embedding in pgvector's text form, e.g. [0.1,0.2]
func vectorLiteral(v []float32) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	sb.WriteByte(']')
	return sb.String()
}
