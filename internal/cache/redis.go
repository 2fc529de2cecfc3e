package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/job-fit-analyzer/internal/types"
)

const redisKeyPrefix = "fitagent:analysis:"

// RedisMirror shares cached AI results between processes. A nil or unreachable
// mirror behaves as an always-empty cache.
type RedisMirror struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger

	warnedUnavailable atomic.Bool
}

// NewRedisMirror connects to the given redis URL. When the server cannot be reached
// the mirror is returned in bypass mode rather than failing.
func NewRedisMirror(ctx context.Context, url string, ttl time.Duration, logger *zap.Logger) (*RedisMirror, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis_unavailable", zap.Error(err))
		_ = client.Close()
		return &RedisMirror{ttl: ttl, logger: logger}, nil
	}

	return NewRedisMirrorWithClient(client, ttl, logger), nil
}

// NewRedisMirrorWithClient wraps an existing client
func NewRedisMirrorWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisMirror {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisMirror{client: client, ttl: ttl, logger: logger}
}

// Available reports whether the mirror has a live client
func (r *RedisMirror) Available() bool {
	return r != nil && r.client != nil
}

func (r *RedisMirror) warnUnavailableOnce(err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn("redis_unavailable", zap.Error(err))
	}
}

// Get loads a result written by any process for this job and description
func (r *RedisMirror) Get(ctx context.Context, jobID, description string) (types.AIJobAnalysisResult, bool, error) {
	var out types.AIJobAnalysisResult
	if !r.Available() {
		return out, false, nil
	}

	b, err := r.client.Get(ctx, redisKeyPrefix+Key(jobID, description)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return out, false, nil
		}
		r.warnUnavailableOnce(err)
		return out, false, err
	}
	if len(b) == 0 {
		return out, false, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, false, err
	}
	return out, true, nil
}

// Set writes a result with the mirror's TTL
func (r *RedisMirror) Set(ctx context.Context, jobID, description string, result types.AIJobAnalysisResult) error {
	if !r.Available() {
		return nil
	}
	b, err := json.Marshal(result)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, redisKeyPrefix+Key(jobID, description), b, r.ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// Invalidate deletes every mirrored entry for the job
func (r *RedisMirror) Invalidate(ctx context.Context, jobID string) error {
	if !r.Available() || strings.TrimSpace(jobID) == "" {
		return nil
	}
	return r.deleteByPattern(ctx, redisKeyPrefix+jobID+":*")
}

// Clear deletes every mirrored entry
func (r *RedisMirror) Clear(ctx context.Context) error {
	if !r.Available() {
		return nil
	}
	return r.deleteByPattern(ctx, redisKeyPrefix+"*")
}

// Close releases the client
func (r *RedisMirror) Close() error {
	if !r.Available() {
		return nil
	}
	return r.client.Close()
}

func (r *RedisMirror) deleteByPattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if err := r.client.Del(ctx, k).Err(); err != nil {
			r.logger.Warn("redis_delete_failed", zap.String("key", k), zap.String("pattern", pattern), zap.Error(err))
		}
	}
	return iter.Err()
}
