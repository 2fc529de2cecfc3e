package evidence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultDimensions matches the width of the stored document embeddings
const DefaultDimensions = 1536

// EmbedderConfig selects the embedding backend. An API key selects the Gemini
// API; otherwise Project and Location select Vertex AI.
type EmbedderConfig struct {
	APIKey     string
	Project    string
	Location   string
	Model      string
	Dimensions int32
}

// GenAIEmbedder embeds text with a Gemini embedding model
type GenAIEmbedder struct {
	client     *genai.Client
	model      string
	dimensions int32
}

// NewGenAIEmbedder creates an embedder for the configured backend
func NewGenAIEmbedder(ctx context.Context, cfg EmbedderConfig) (*GenAIEmbedder, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("embedding model is required")
	}

	cc := &genai.ClientConfig{}
	switch {
	case strings.TrimSpace(cfg.APIKey) != "":
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = cfg.APIKey
	case strings.TrimSpace(cfg.Project) != "":
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.Project
		cc.Location = cfg.Location
	default:
		return nil, errors.New("embedder needs an API key or a Vertex project")
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	dims := cfg.Dimensions
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &GenAIEmbedder{client: client, model: cfg.Model, dimensions: dims}, nil
}

// Embed implements Embedder
func (e *GenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), &genai.EmbedContentConfig{
		TaskType:             "RETRIEVAL_QUERY",
		OutputDimensionality: genai.Ptr(e.dimensions),
	})
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("no embedding returned")
	}
	return resp.Embeddings[0].Values, nil
}
