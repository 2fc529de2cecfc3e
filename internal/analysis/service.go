package analysis

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-fit-analyzer/internal/aianalysis"
	"github.com/jonathan/job-fit-analyzer/internal/cache"
	"github.com/jonathan/job-fit-analyzer/internal/evidence"
	"github.com/jonathan/job-fit-analyzer/internal/jd"
	"github.com/jonathan/job-fit-analyzer/internal/logger"
	"github.com/jonathan/job-fit-analyzer/internal/types"
)

// DefaultAITimeout bounds a single model call
const DefaultAITimeout = 60 * time.Second

// Options selects the analysis path for one posting
type Options struct {
	// UseAI requests the AI-assisted path when a model is configured
	UseAI bool
	// Coaching adds career-document evidence and coaching to the AI path
	Coaching bool
}

// Outcome is the result of Service.Analyze
type Outcome struct {
	Analysis types.Analysis
	// Result is the unified view of either path
	Result   types.JobAnalysisResult
	Notes    []types.JobNote
	CacheHit bool
	// FellBack is set when the AI path was requested but the rule-based result was returned.
	// When the model failed, Notes carry the neutral fallback assessment.
	FellBack bool
}

// Document is the persisted form of an Outcome
type Document struct {
	Source   types.AnalysisSource       `json:"source"`
	Result   types.JobAnalysisResult    `json:"result"`
	AI       *types.AIJobAnalysisResult `json:"ai_analysis,omitempty"`
	Coaching *types.CoachingInsights    `json:"coaching_insights,omitempty"`
	Matches  []types.JDMatchResult      `json:"requirement_matches,omitempty"`
}

// Document returns the persisted form of the outcome
func (o Outcome) Document() Document {
	doc := Document{Source: types.SourceRuleBased, Result: o.Result}
	if ai, ok := o.Analysis.(*types.AIAssisted); ok {
		doc.Source = types.SourceAIAssisted
		doc.AI = &ai.Result
		doc.Coaching = ai.Coaching
		doc.Matches = ai.Matches
	}
	return doc
}

// Service runs the rule-based path and, when asked and configured, the AI path,
// falling back to the rule-based result whenever the AI path fails
type Service struct {
	rules    *Analyzer
	ai       *aianalysis.Analyzer
	evidence *evidence.Client
	cache    *cache.AnalysisCache
	mirror   *cache.RedisMirror
	timeout  time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithAI sets the AI analyzer
func WithAI(a *aianalysis.Analyzer) ServiceOption {
	return func(s *Service) { s.ai = a }
}

// WithEvidence sets the evidence client used for coaching
func WithEvidence(c *evidence.Client) ServiceOption {
	return func(s *Service) { s.evidence = c }
}

// WithCache sets the in-process AI result cache
func WithCache(c *cache.AnalysisCache) ServiceOption {
	return func(s *Service) { s.cache = c }
}

// WithMirror sets the shared second-tier cache
func WithMirror(m *cache.RedisMirror) ServiceOption {
	return func(s *Service) { s.mirror = m }
}

// WithAITimeout bounds each model call
func WithAITimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock sets the time source used to stamp notes
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) { s.logger = logger.WithFields(l, zap.String("component", "analysis")) }
}

// NewService creates a Service around a rule-based analyzer
func NewService(rules *Analyzer, opts ...ServiceOption) *Service {
	s := &Service{
		rules:   rules,
		timeout: DefaultAITimeout,
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rules returns the rule-based analyzer
func (s *Service) Rules() *Analyzer {
	return s.rules
}

// Cache returns the in-process cache, which may be nil
func (s *Service) Cache() *cache.AnalysisCache {
	return s.cache
}

// Invalidate drops cached AI results for a job from both cache tiers and
// returns how many in-process entries were removed
func (s *Service) Invalidate(ctx context.Context, jobID string) int {
	removed := 0
	if s.cache != nil {
		removed = s.cache.Invalidate(jobID)
	}
	if err := s.mirror.Invalidate(ctx, jobID); err != nil {
		s.logger.Warn("cache_invalidate_failed", zap.String(logger.FieldJobID, jobID), zap.Error(err))
	}
	return removed
}

// ClearCache empties both cache tiers
func (s *Service) ClearCache(ctx context.Context) error {
	if s.cache != nil {
		s.cache.Clear()
	}
	return s.mirror.Clear(ctx)
}

// AIConfigured reports whether the AI path can run
func (s *Service) AIConfigured() bool {
	return s.ai.IsConfigured()
}

// Analyze never fails: AI errors are logged and replaced by the rule-based result
func (s *Service) Analyze(ctx context.Context, posting types.Posting, opts Options) Outcome {
	parsed := jd.DetectAndParse(posting.Description)
	rule := s.rules.AnalyzeParsed(posting, parsed)
	ruleOutcome := Outcome{Analysis: &types.RuleBased{Result: rule}, Result: rule}

	if !opts.UseAI {
		return ruleOutcome
	}
	log := logger.WithFields(s.logger, zap.String(logger.FieldJobID, posting.ID))
	if !s.ai.IsConfigured() {
		log.Debug("ai_analysis_not_configured")
		ruleOutcome.FellBack = true
		return ruleOutcome
	}

	var (
		aiResult types.AIJobAnalysisResult
		coaching *types.CoachingInsights
		matches  []types.JDMatchResult
		hit      bool
		err      error
	)
	if opts.Coaching {
		aiResult, coaching, matches, err = s.analyzeWithCoaching(ctx, posting, parsed.Requirements)
	} else {
		aiResult, hit, err = s.analyzeCached(ctx, posting)
	}
	if err != nil {
		log.Warn("ai_analysis_fallback", zap.Error(err))
		ruleOutcome.FellBack = true
		// flag the job for manual review
		ruleOutcome.Notes = aianalysis.GenerateNotes(aianalysis.Fallback(), nil, nil, s.now())
		return ruleOutcome
	}

	return Outcome{
		Analysis: &types.AIAssisted{Result: aiResult, Coaching: coaching, Matches: matches},
		Result:   Reconcile(rule, aiResult),
		Notes:    aianalysis.GenerateNotes(aiResult, coaching, matches, s.now()),
		CacheHit: hit,
	}
}

func (s *Service) analyzeCached(ctx context.Context, posting types.Posting) (types.AIJobAnalysisResult, bool, error) {
	cacheable := posting.ID != ""
	if cacheable {
		if s.cache != nil {
			if r, ok := s.cache.Get(posting.ID, posting.Description); ok {
				return r, true, nil
			}
		}
		if r, ok, err := s.mirror.Get(ctx, posting.ID, posting.Description); err == nil && ok {
			if s.cache != nil {
				s.cache.Set(posting.ID, posting.Description, r)
			}
			return r, true, nil
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	result, err := s.ai.Analyze(callCtx, posting)
	if err != nil {
		return result, false, err
	}

	if cacheable {
		if s.cache != nil {
			s.cache.Set(posting.ID, posting.Description, result)
		}
		_ = s.mirror.Set(ctx, posting.ID, posting.Description, result)
	}
	return result, false, nil
}

func (s *Service) analyzeWithCoaching(ctx context.Context, posting types.Posting, req types.ExtractedRequirements) (types.AIJobAnalysisResult, *types.CoachingInsights, []types.JDMatchResult, error) {
	evidenceContext, matches := s.evidence.CoachingContext(ctx, posting.Title, coachingRequirements(req))

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	result, coaching, err := s.ai.AnalyzeWithCoaching(callCtx, posting, evidenceContext)
	if err != nil {
		return result, nil, nil, err
	}
	coaching.EvidenceFromResume = evidence.EvidenceFor(matches)
	return result, coaching, matches, nil
}

// coachingRequirements picks the statements to look up evidence for: the
// bulleted requirements when there are any, the named technologies otherwise
func coachingRequirements(req types.ExtractedRequirements) []string {
	reqs := make([]string, 0, len(req.MustHave)+len(req.NiceToHave))
	reqs = append(reqs, req.MustHave...)
	reqs = append(reqs, req.NiceToHave...)
	if len(reqs) == 0 {
		reqs = append(reqs, req.Technologies...)
	}
	return reqs
}

// Reconcile folds an AI analysis into the rule-based result. Priority, role,
// AI-forwardness and role scores come from the model; technologies and location
// compatibility always come from the deterministic checks.
func Reconcile(rule types.JobAnalysisResult, ai types.AIJobAnalysisResult) types.JobAnalysisResult {
	out := rule
	out.SuggestedPriority = types.ClampScore(ai.OverallAssessment.PriorityScore)
	out.SuggestedRole = ai.RoleClassification.SuggestedRole
	out.IsAIForward = ai.AIForwardAssessment.IsAIForward
	out.AIConfidence = types.ClampConfidence(ai.AIForwardAssessment.Confidence)
	if out.YearsExperienceRequired == nil {
		out.YearsExperienceRequired = ai.ExperienceFit.YearsRequired
	}

	out.RoleScores = (&types.AIAssisted{Result: ai}).RoleScores()

	notes := make([]string, 0, len(rule.AnalysisNotes)+1)
	if ai.OverallAssessment.Summary != "" {
		notes = append(notes, ai.OverallAssessment.Summary)
	}
	out.AnalysisNotes = append(notes, rule.AnalysisNotes...)
	return out
}
