// Package aianalysis runs the LLM-assisted posting analysis: it renders the
// prompts, calls the model and decodes the JSON response contract.
package aianalysis

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/job-fit-analyzer/internal/llm"
	"github.com/jonathan/job-fit-analyzer/internal/logger"
	"github.com/jonathan/job-fit-analyzer/internal/profile"
	"github.com/jonathan/job-fit-analyzer/internal/types"
)

const (
	maxTokens         int32 = 4000
	maxTokensCoaching int32 = 6000
)

// Analyzer calls the model for a single posting. It does not cache or fall back;
// callers decide what to do with errors.
type Analyzer struct {
	client    llm.Client
	system    string
	homeState string
	logger    *zap.Logger
}

// New creates an Analyzer. A nil client yields an analyzer that reports not configured.
func New(client llm.Client, p *profile.CandidateProfile, log *zap.Logger) (*Analyzer, error) {
	system, err := BuildSystemPrompt(p)
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		client:    client,
		system:    system,
		homeState: p.HomeState,
		logger:    logger.WithFields(log, zap.String("component", "ai_analysis")),
	}, nil
}

// IsConfigured reports whether a model is available
func (a *Analyzer) IsConfigured() bool {
	return a != nil && a.client != nil
}

// Model returns the model name used for plain analyses
func (a *Analyzer) Model() string {
	if !a.IsConfigured() {
		return ""
	}
	return a.client.GetModel(llm.TierStandard)
}

// Analyze asks the model for a structured analysis of the posting
func (a *Analyzer) Analyze(ctx context.Context, posting types.Posting) (types.AIJobAnalysisResult, error) {
	parsed, err := a.run(ctx, posting, "")
	if err != nil {
		return types.AIJobAnalysisResult{}, err
	}
	return parsed.Result, nil
}

// AnalyzeWithCoaching adds the evidence context and a coaching request to the prompt.
// The returned coaching is never nil; it is empty when the model omitted it.
func (a *Analyzer) AnalyzeWithCoaching(ctx context.Context, posting types.Posting, evidenceContext string) (types.AIJobAnalysisResult, *types.CoachingInsights, error) {
	parsed, err := a.run(ctx, posting, evidenceContext)
	if err != nil {
		return types.AIJobAnalysisResult{}, nil, err
	}
	coaching := parsed.Coaching
	if coaching == nil {
		coaching = decodeCoaching(object{})
	}
	return parsed.Result, coaching, nil
}

func (a *Analyzer) run(ctx context.Context, posting types.Posting, evidenceContext string) (Parsed, error) {
	if !a.IsConfigured() {
		return Parsed{}, ErrNotConfigured
	}

	event := "ai_analysis"
	tier := llm.TierStandard
	tokens := maxTokens
	if evidenceContext != "" {
		event = "enhanced_ai_analysis"
		tier = llm.TierAdvanced
		tokens = maxTokensCoaching
	}

	model := a.client.GetModel(tier)
	log := logger.WithFields(a.logger, zap.String(logger.FieldJobID, posting.ID))
	log = logger.WithCommonFields(log, string(a.client.Provider()), model)
	log.Info(event+"_start",
		zap.String("company", posting.Company),
		zap.String("title", posting.Title),
		zap.Bool("has_evidence_context", evidenceContext != ""),
	)

	prompt, err := BuildUserPrompt(posting, a.homeState)
	if err != nil {
		return Parsed{}, err
	}
	coaching, err := BuildCoachingSection(evidenceContext)
	if err != nil {
		return Parsed{}, err
	}

	content, err := a.client.GenerateJSON(ctx, llm.Request{
		System:          a.system,
		Prompt:          prompt + coaching,
		Tier:            tier,
		MaxOutputTokens: tokens,
	})
	if err != nil {
		callErr := &APICallError{Message: "failed to generate analysis", Cause: err}
		log.Error(event+"_error", zap.Error(callErr))
		return Parsed{}, callErr
	}

	parsed, err := Parse(content)
	if err != nil {
		log.Error(event+"_error", zap.Error(err), zap.String("response", logger.TruncateForLog(content, 200)))
		return Parsed{}, err
	}
	if parsed.SchemaErr != nil {
		log.Warn("ai_analysis_schema_violation", zap.Error(parsed.SchemaErr))
	}
	parsed.Result.ModelUsed = model

	fields := []zap.Field{
		zap.Int("priority", parsed.Result.OverallAssessment.PriorityScore),
		zap.String("recommendation", string(parsed.Result.OverallAssessment.Recommendation)),
	}
	if evidenceContext != "" {
		fields = append(fields, zap.Bool("has_coaching", parsed.Coaching != nil && len(parsed.Coaching.TalkingPoints) > 0))
	}
	log.Info(event+"_success", fields...)
	return parsed, nil
}
