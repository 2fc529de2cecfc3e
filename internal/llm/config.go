// Package llm wraps the Gemini model backends behind one client interface
// so analysis code can switch providers and model tiers from configuration.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short classification calls
	TierLite ModelTier = "lite"
	// TierStandard is for structured posting analysis
	TierStandard ModelTier = "standard"
	// TierAdvanced is for evidence-enriched coaching analysis
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM backend
type Provider string

// Supported backends
const (
	// ProviderGemini uses the Gemini developer API with an API key
	ProviderGemini Provider = "gemini"
	// ProviderVertex uses Gemini on Vertex AI with application default credentials
	ProviderVertex Provider = "vertex"
)

// Config holds the model configuration
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// Project and Location are only read by the Vertex backend
	Project  string
	Location string
	// EmbeddingModel is used for evidence search queries
	EmbeddingModel string
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Location:       "us-central1",
		EmbeddingModel: "gemini-embedding-001",
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}
