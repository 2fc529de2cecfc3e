package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned when a backend has nothing to authenticate with
var ErrMissingCredentials = errors.New("llm credentials are not configured")

// Request is a single prompt sent to a model
type Request struct {
	// System carries standing instructions such as the candidate profile
	System string
	Prompt string
	Tier   ModelTier
	// MaxOutputTokens caps the response; zero leaves the provider default
	MaxOutputTokens int32
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent returns the model's text response
	GenerateContent(ctx context.Context, req Request) (string, error)
	// GenerateJSON asks for a JSON response and strips markdown fences from it
	GenerateJSON(ctx context.Context, req Request) (string, error)
	// GetModel returns the model name used for a tier
	GetModel(tier ModelTier) string
	// Provider names the backend, for logging
	Provider() Provider
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a client for the configured provider
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderVertex:
		c, err := NewVertexClient(ctx, config)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderGemini, "":
		c, err := NewGeminiClient(ctx, config, apiKey)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", config.Provider)
	}
}

const defaultTemperature = 0.1
