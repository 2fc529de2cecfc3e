// Package evidence searches the candidate's career documents for passages that
// support a posting's requirements. Queries are embedded and matched by vector
// similarity; an unconfigured client degrades to returning no evidence.
package evidence

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-fit-analyzer/internal/logger"
	"github.com/jonathan/job-fit-analyzer/internal/types"
)

// Defaults for unqualified searches
const (
	DefaultThreshold  = 0.5
	DefaultMaxResults = 5
	DefaultTimeout    = 10 * time.Second

	maxQueryChars = 8000
)

// Query is a similarity search against the document store
type Query struct {
	Text      string
	Embedding []float32
	// Categories restricts the search when non-empty
	Categories []string
	Threshold  float64
	Limit      int
}

// Searcher runs similarity queries against stored document chunks
type Searcher interface {
	Search(ctx context.Context, q Query) ([]types.ResumeSearchResult, error)
}

// Embedder turns query text into a vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Client combines an embedder and a searcher
type Client struct {
	searcher   Searcher
	embedder   Embedder
	threshold  float64
	maxResults int
	timeout    time.Duration
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithThreshold sets the similarity cutoff for searches that do not specify one
func WithThreshold(t float64) Option {
	return func(c *Client) {
		if t > 0 {
			c.threshold = t
		}
	}
}

// WithMaxResults sets the result limit for searches that do not specify one
func WithMaxResults(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// WithTimeout bounds each search
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger.WithFields(l, zap.String("component", "evidence"))
	}
}

// New creates a Client. Either dependency may be nil, leaving the client unconfigured.
func New(searcher Searcher, embedder Embedder, opts ...Option) *Client {
	c := &Client{
		searcher:   searcher,
		embedder:   embedder,
		threshold:  DefaultThreshold,
		maxResults: DefaultMaxResults,
		timeout:    DefaultTimeout,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsConfigured reports whether both a searcher and an embedder are present
func (c *Client) IsConfigured() bool {
	return c != nil && c.searcher != nil && c.embedder != nil
}

// Search embeds the query and returns matching chunks. Zero threshold or limit
// take the client defaults. Failures are logged and yield no results.
func (c *Client) Search(ctx context.Context, query string, categories []string, threshold float64, limit int) []types.ResumeSearchResult {
	if !c.IsConfigured() {
		c.logNotConfigured()
		return []types.ResumeSearchResult{}
	}
	if threshold <= 0 {
		threshold = c.threshold
	}
	if limit <= 0 {
		limit = c.maxResults
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	embedding, err := c.embedder.Embed(ctx, truncateRunes(query, maxQueryChars))
	if err != nil {
		c.logger.Error("evidence_search_error", zap.String("stage", "embed"), zap.Error(err))
		return []types.ResumeSearchResult{}
	}

	results, err := c.searcher.Search(ctx, Query{
		Text:       query,
		Embedding:  embedding,
		Categories: categories,
		Threshold:  threshold,
		Limit:      limit,
	})
	if err != nil {
		c.logger.Error("evidence_search_error", zap.String("stage", "search"), zap.Error(err))
		return []types.ResumeSearchResult{}
	}
	if results == nil {
		results = []types.ResumeSearchResult{}
	}

	c.logger.Info("evidence_search_complete",
		zap.Int("query_length", len(query)),
		zap.Int("results_count", len(results)),
	)
	return results
}

func (c *Client) logNotConfigured() {
	if c == nil {
		return
	}
	c.logger.Warn("evidence_not_configured")
}

// MatchStrength grades a similarity score
func MatchStrength(similarity float64) types.MatchStrength {
	switch {
	case similarity >= 0.75:
		return types.MatchStrong
	case similarity >= 0.60:
		return types.MatchModerate
	case similarity >= 0.45:
		return types.MatchWeak
	default:
		return types.MatchNone
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
