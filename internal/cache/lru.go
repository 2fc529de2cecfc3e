// Package cache keeps AI analysis results so unchanged postings are not re-sent to the model.
package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-fit-analyzer/internal/logger"
	"github.com/jonathan/job-fit-analyzer/internal/types"
)

const (
	// DefaultTTL is how long an entry stays valid
	DefaultTTL = 24 * time.Hour
	// DefaultMaxSize bounds the number of entries
	DefaultMaxSize = 500
)

// Entry is a cached analysis with its metadata
type Entry struct {
	Result          types.AIJobAnalysisResult
	CreatedAt       time.Time
	DescriptionHash string
}

type element struct {
	key   string
	entry Entry
}

// Stats describes the current cache contents
type Stats struct {
	Size         int   `json:"size"`
	MaxSize      int   `json:"max_size"`
	ExpiredCount int   `json:"expired_count"`
	TTLSeconds   int64 `json:"ttl_seconds"`
}

// Option configures an AnalysisCache
type Option func(*AnalysisCache)

// WithTTL overrides DefaultTTL
func WithTTL(ttl time.Duration) Option {
	return func(c *AnalysisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithMaxSize overrides DefaultMaxSize
func WithMaxSize(n int) Option {
	return func(c *AnalysisCache) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(c *AnalysisCache) {
		c.now = now
	}
}

// WithLogger sets the logger for cache events
func WithLogger(l *zap.Logger) Option {
	return func(c *AnalysisCache) {
		c.logger = logger.WithFields(l, zap.String("component", "analysis_cache"))
	}
}

// AnalysisCache is an in-process LRU keyed by job ID and description hash.
// Expired entries are removed lazily on lookup. It is safe for concurrent use.
type AnalysisCache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front is least recently used

	maxSize int
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// New creates an empty cache
func New(opts ...Option) *AnalysisCache {
	c := &AnalysisCache{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		maxSize: DefaultMaxSize,
		ttl:     DefaultTTL,
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HashDescription returns the first 16 hex characters of the description's SHA-256, or "empty"
func HashDescription(description string) string {
	if description == "" {
		return "empty"
	}
	sum := sha256.Sum256([]byte(description))
	return hex.EncodeToString(sum[:])[:16]
}

// Key builds the cache key for a job and description
func Key(jobID, description string) string {
	return jobID + ":" + HashDescription(description)
}

// Get returns the cached result for the job and description, if present and unexpired
func (c *AnalysisCache) Get(jobID, description string) (types.AIJobAnalysisResult, bool) {
	key := Key(jobID, description)

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.logger.Debug("cache_miss", zap.String(logger.FieldJobID, jobID), zap.String("reason", "not_found"))
		return types.AIJobAnalysisResult{}, false
	}

	item := el.Value.(*element)
	if c.expired(item.entry) {
		c.removeElement(el)
		c.logger.Debug("cache_miss", zap.String(logger.FieldJobID, jobID), zap.String("reason", "expired"))
		return types.AIJobAnalysisResult{}, false
	}

	c.order.MoveToBack(el)
	c.logger.Debug("cache_hit", zap.String(logger.FieldJobID, jobID))
	return item.entry.Result, true
}

// Set stores a result, evicting least recently used entries while the cache is full
func (c *AnalysisCache) Set(jobID, description string, result types.AIJobAnalysisResult) {
	key := Key(jobID, description)
	entry := Entry{
		Result:          result,
		CreatedAt:       c.now(),
		DescriptionHash: HashDescription(description),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*element).entry = entry
		c.order.MoveToBack(el)
		c.logger.Debug("cache_set", zap.String(logger.FieldJobID, jobID), zap.Int("cache_size", len(c.entries)))
		return
	}

	for len(c.entries) >= c.maxSize {
		front := c.order.Front()
		if front == nil {
			break
		}
		c.removeElement(front)
		c.logger.Debug("cache_evict", zap.String("key", front.Value.(*element).key))
	}

	c.entries[key] = c.order.PushBack(&element{key: key, entry: entry})
	c.logger.Debug("cache_set", zap.String(logger.FieldJobID, jobID), zap.Int("cache_size", len(c.entries)))
}

// Invalidate removes every entry for the job, whatever its description hash
func (c *AnalysisCache) Invalidate(jobID string) int {
	prefix := jobID + ":"

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, el := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.removeElement(el)
			removed++
		}
	}
	if removed > 0 {
		c.logger.Debug("cache_invalidate", zap.String(logger.FieldJobID, jobID), zap.Int("count", removed))
	}
	return removed
}

// Clear removes everything
func (c *AnalysisCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := len(c.entries)
	c.entries = make(map[string]*list.Element)
	c.order.Init()
	c.logger.Info("cache_clear", zap.Int("count", count))
}

// Stats reports size and how many stored entries have already expired
func (c *AnalysisCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	expired := 0
	for _, el := range c.entries {
		if c.expired(el.Value.(*element).entry) {
			expired++
		}
	}
	return Stats{
		Size:         len(c.entries),
		MaxSize:      c.maxSize,
		ExpiredCount: expired,
		TTLSeconds:   int64(c.ttl / time.Second),
	}
}

func (c *AnalysisCache) expired(e Entry) bool {
	return c.now().Sub(e.CreatedAt) > c.ttl
}

// removeElement must be called with mu held
func (c *AnalysisCache) removeElement(el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, el.Value.(*element).key)
}
