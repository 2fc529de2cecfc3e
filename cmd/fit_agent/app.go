package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/job-fit-analyzer/internal/aianalysis"
	"github.com/jonathan/job-fit-analyzer/internal/analysis"
	"github.com/jonathan/job-fit-analyzer/internal/cache"
	"github.com/jonathan/job-fit-analyzer/internal/config"
	"github.com/jonathan/job-fit-analyzer/internal/evidence"
	"github.com/jonathan/job-fit-analyzer/internal/llm"
	"github.com/jonathan/job-fit-analyzer/internal/logger"
	"github.com/jonathan/job-fit-analyzer/internal/observability"
	"github.com/jonathan/job-fit-analyzer/internal/profile"
)

// app carries what every subcommand needs
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	out     io.Writer
	closers []func()
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := logger.New(jsonOutput, debugLogs)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &app{cfg: cfg, log: log, out: cmd.OutOrStdout()}, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.log.Sync()
}

func (a *app) profile() *profile.CandidateProfile {
	p := profile.Default()
	if len(a.cfg.Profile.Skills) > 0 {
		p = p.WithSkills(a.cfg.Profile.Skills)
	}
	p.HomeState = a.cfg.Profile.HomeState
	return p
}

func (a *app) printer() *observability.Printer {
	return observability.NewPrinter(a.out)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) newCache() *cache.AnalysisCache {
	return cache.New(
		cache.WithMaxSize(a.cfg.Cache.MaxSize),
		cache.WithTTL(a.cfg.Cache.TTL),
		cache.WithLogger(a.log),
	)
}

// service wires the analysis service. Missing AI, Redis or evidence configuration
// leaves the corresponding feature off rather than failing.
func (a *app) service(ctx context.Context, useAI, coaching bool) (*analysis.Service, error) {
	p := a.profile()
	opts := []analysis.ServiceOption{
		analysis.WithLogger(a.log),
		analysis.WithCache(a.newCache()),
		analysis.WithAITimeout(a.cfg.LLM.Timeout),
	}

	if a.cfg.Cache.RedisURL != "" {
		mirror, err := cache.NewRedisMirror(ctx, a.cfg.Cache.RedisURL, a.cfg.Cache.TTL, a.log)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		a.closers = append(a.closers, func() { _ = mirror.Close() })
		opts = append(opts, analysis.WithMirror(mirror))
	}

	if !useAI {
		return analysis.NewService(analysis.NewAnalyzer(p), opts...), nil
	}

	apiKey, keyErr := a.cfg.APIKey()
	if keyErr != nil && a.cfg.LLM.Provider == string(llm.ProviderGemini) {
		a.log.Warn("ai_not_configured", zap.Error(keyErr))
		return analysis.NewService(analysis.NewAnalyzer(p), opts...), nil
	}

	client, err := llm.NewClient(ctx, a.cfg.LLMClientConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	a.closers = append(a.closers, func() { _ = client.Close() })

	ai, err := aianalysis.New(client, p, a.log)
	if err != nil {
		return nil, err
	}
	opts = append(opts, analysis.WithAI(ai))

	if coaching {
		ev, err := a.evidenceClient(ctx, apiKey)
		if err != nil {
			return nil, err
		}
		opts = append(opts, analysis.WithEvidence(ev))
	}
	return analysis.NewService(analysis.NewAnalyzer(p), opts...), nil
}

func (a *app) evidenceClient(ctx context.Context, apiKey string) (*evidence.Client, error) {
	ec := a.cfg.Evidence
	if ec.DatabaseURL == "" {
		a.log.Warn("evidence_not_configured", zap.String("hint", "set EVIDENCE_DATABASE_URL to enable coaching evidence"))
		return nil, nil
	}

	searcher, err := evidence.ConnectPgSearcher(ctx, ec.DatabaseURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, searcher.Close)

	embedder, err := evidence.NewGenAIEmbedder(ctx, evidence.EmbedderConfig{
		APIKey:     apiKey,
		Project:    a.cfg.LLM.Project,
		Location:   a.cfg.LLM.Location,
		Model:      ec.EmbeddingModel,
		Dimensions: int32(ec.Dimensions),
	})
	if err != nil {
		return nil, err
	}

	return evidence.New(searcher, embedder,
		evidence.WithThreshold(ec.SimilarityThreshold),
		evidence.WithMaxResults(ec.MaxResults),
		evidence.WithTimeout(ec.Timeout),
		evidence.WithLogger(a.log),
	), nil
}

// readInput returns the contents of path, or stdin for "-"
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("--in is required")
	}
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("input is empty")
	}
	return string(data), nil
}
