package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/job-fit-analyzer/internal/types"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func result(score int) types.AIJobAnalysisResult {
	return types.AIJobAnalysisResult{
		OverallAssessment: types.OverallAssessment{PriorityScore: score},
		ModelUsed:         "test-model",
	}
}

func TestHashDescription(t *testing.T) {
	assert.Equal(t, "empty", HashDescription(""))
	// sha256("hello")
	assert.Equal(t, "2cf24dba5fb0a30e", HashDescription("hello"))
	assert.Equal(t, "job-1:2cf24dba5fb0a30e", Key("job-1", "hello"))
	assert.Equal(t, "job-1:empty", Key("job-1", ""))
}

func TestAnalysisCache_SetThenGet(t *testing.T) {
	c := New()

	c.Set("job-1", "desc", result(80))

	got, ok := c.Get("job-1", "desc")
	require.True(t, ok)
	assert.Equal(t, 80, got.OverallAssessment.PriorityScore)

	_, ok = c.Get("job-1", "changed desc")
	assert.False(t, ok, "different description must miss")

	_, ok = c.Get("job-2", "desc")
	assert.False(t, ok)
}

func TestAnalysisCache_EmptyDescription(t *testing.T) {
	c := New()

	c.Set("job-1", "", result(10))

	got, ok := c.Get("job-1", "")
	require.True(t, ok)
	assert.Equal(t, 10, got.OverallAssessment.PriorityScore)
}

func TestAnalysisCache_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New(WithClock(clock.Now))

	c.Set("job-1", "desc", result(80))

	clock.Advance(DefaultTTL)
	_, ok := c.Get("job-1", "desc")
	assert.True(t, ok, "entry exactly at the TTL is still valid")

	clock.Advance(time.Second)
	assert.Equal(t, 1, c.Stats().ExpiredCount)

	_, ok = c.Get("job-1", "desc")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Stats().Size, "expired entry is removed on lookup")
}

func TestAnalysisCache_EvictsLeastRecentlyUsed(t *testing.T) {
	const n = 3
	c := New(WithMaxSize(n))

	for i := 0; i < n; i++ {
		c.Set(fmt.Sprintf("job-%d", i), "desc", result(i))
	}

	// touch job-0 so job-1 becomes the least recently used
	_, ok := c.Get("job-0", "desc")
	require.True(t, ok)

	c.Set("job-new", "desc", result(99))

	assert.Equal(t, n, c.Stats().Size)
	_, ok = c.Get("job-1", "desc")
	assert.False(t, ok, "least recently touched entry is evicted")
	for _, id := range []string{"job-0", "job-2", "job-new"} {
		_, ok := c.Get(id, "desc")
		assert.True(t, ok, id)
	}
}

func TestAnalysisCache_OverwriteDoesNotEvict(t *testing.T) {
	c := New(WithMaxSize(2))
	c.Set("a", "d", result(1))
	c.Set("b", "d", result(2))

	c.Set("a", "d", result(3))

	assert.Equal(t, 2, c.Stats().Size)
	got, ok := c.Get("a", "d")
	require.True(t, ok)
	assert.Equal(t, 3, got.OverallAssessment.PriorityScore)
	_, ok = c.Get("b", "d")
	assert.True(t, ok)
}

func TestAnalysisCache_Invalidate(t *testing.T) {
	c := New()
	c.Set("job-1", "v1", result(1))
	c.Set("job-1", "v2", result(2))
	c.Set("job-10", "v1", result(3))

	removed := c.Invalidate("job-1")

	assert.Equal(t, 2, removed)
	_, ok := c.Get("job-1", "v1")
	assert.False(t, ok)
	_, ok = c.Get("job-1", "v2")
	assert.False(t, ok)
	_, ok = c.Get("job-10", "v1")
	assert.True(t, ok, "prefix match stops at the separator")
}

func TestAnalysisCache_ClearAndStats(t *testing.T) {
	c := New(WithMaxSize(10), WithTTL(time.Hour))
	c.Set("a", "d", result(1))
	c.Set("b", "d", result(2))

	assert.Equal(t, Stats{Size: 2, MaxSize: 10, ExpiredCount: 0, TTLSeconds: 3600}, c.Stats())

	c.Clear()

	assert.Equal(t, 0, c.Stats().Size)
	_, ok := c.Get("a", "d")
	assert.False(t, ok)
}

func TestAnalysisCache_LogsEvents(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	c := New(WithMaxSize(1), WithLogger(zap.New(core)))

	c.Get("a", "d")
	c.Set("a", "d", result(1))
	c.Get("a", "d")
	c.Set("b", "d", result(2))
	c.Invalidate("b")
	c.Clear()

	var events []string
	for _, e := range observed.All() {
		events = append(events, e.Message)
	}
	assert.Equal(t, []string{"cache_miss", "cache_set", "cache_hit", "cache_evict", "cache_set", "cache_invalidate", "cache_clear"}, events)
	assert.Equal(t, "not_found", observed.All()[0].ContextMap()["reason"])
}

func TestAnalysisCache_ConcurrentAccess(t *testing.T) {
	c := New(WithMaxSize(50))
	var wg sync.WaitGroup

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id := fmt.Sprintf("job-%d", (g*200+i)%75)
				c.Set(id, "desc", result(i))
				c.Get(id, "desc")
				if i%50 == 0 {
					c.Invalidate(id)
				}
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Stats().Size, 50)
	assert.Equal(t, c.Stats().Size, c.order.Len(), "map and access list stay in sync")
}
