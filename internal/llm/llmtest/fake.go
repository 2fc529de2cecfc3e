// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/jonathan/job-fit-analyzer/internal/llm"
)

// Fake returns canned responses and records every request
type Fake struct {
	mu       sync.Mutex
	Response string
	Err      error
	// Block makes calls wait for context cancellation
	Block    bool
	requests []llm.Request
}

// GenerateContent implements llm.Client
func (f *Fake) GenerateContent(ctx context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	block, resp, err := f.Block, f.Response, f.Err
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return resp, err
}

// GenerateJSON implements llm.Client
func (f *Fake) GenerateJSON(ctx context.Context, req llm.Request) (string, error) {
	resp, err := f.GenerateContent(ctx, req)
	if err != nil {
		return "", err
	}
	return llm.CleanJSONBlock(resp), nil
}

// GetModel implements llm.Client
func (f *Fake) GetModel(tier llm.ModelTier) string {
	return "fake-" + string(tier)
}

// Provider implements llm.Client
func (f *Fake) Provider() llm.Provider {
	return "fake"
}

// Close implements llm.Client
func (f *Fake) Close() error {
	return nil
}

// Requests returns a copy of the requests seen so far
func (f *Fake) Requests() []llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.Request(nil), f.requests...)
}

// Calls returns the number of requests seen so far
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}
