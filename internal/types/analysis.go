package types

import "strings"

// AnalysisSource names the path that produced an Analysis
type AnalysisSource string

// Analysis sources
const (
	SourceRuleBased  AnalysisSource = "rule_based"
	SourceAIAssisted AnalysisSource = "ai_assisted"
)

// Analysis is the result of either analysis path. The set of implementations
// is closed: *RuleBased and *AIAssisted.
type Analysis interface {
	Source() AnalysisSource
	Priority() int
	Role() RoleType
	AIForward() (bool, float64)
	RoleScores() []RoleScore
	Summary() string
	isAnalysis()
}

// RuleBased wraps the deterministic heuristic result
type RuleBased struct {
	Result JobAnalysisResult
}

// AIAssisted wraps an LLM analysis and its optional coaching material
type AIAssisted struct {
	Result   AIJobAnalysisResult
	Coaching *CoachingInsights
	Matches  []JDMatchResult
}

func (*RuleBased) isAnalysis()  {}
func (*AIAssisted) isAnalysis() {}

// Source implements Analysis
func (*RuleBased) Source() AnalysisSource { return SourceRuleBased }

// Priority implements Analysis
func (r *RuleBased) Priority() int { return ClampScore(r.Result.SuggestedPriority) }

// Role implements Analysis
func (r *RuleBased) Role() RoleType { return r.Result.SuggestedRole }

// AIForward implements Analysis
func (r *RuleBased) AIForward() (bool, float64) {
	return r.Result.IsAIForward, ClampConfidence(r.Result.AIConfidence)
}

// RoleScores implements Analysis
func (r *RuleBased) RoleScores() []RoleScore { return r.Result.RoleScores }

// Summary implements Analysis
func (r *RuleBased) Summary() string {
	if len(r.Result.AnalysisNotes) == 0 {
		return "No notable signals"
	}
	return strings.Join(r.Result.AnalysisNotes, "; ")
}

// Source implements Analysis
func (*AIAssisted) Source() AnalysisSource { return SourceAIAssisted }

// Priority implements Analysis
func (a *AIAssisted) Priority() int { return ClampScore(a.Result.OverallAssessment.PriorityScore) }

// Role implements Analysis
func (a *AIAssisted) Role() RoleType { return a.Result.RoleClassification.SuggestedRole }

// AIForward implements Analysis
func (a *AIAssisted) AIForward() (bool, float64) {
	return a.Result.AIForwardAssessment.IsAIForward, ClampConfidence(a.Result.AIForwardAssessment.Confidence)
}

// RoleScores implements Analysis
func (a *AIAssisted) RoleScores() []RoleScore {
	scores := make([]RoleScore, 0, len(a.Result.RoleScores))
	for _, rs := range a.Result.RoleScores {
		scores = append(scores, RoleScore{Role: rs.Role, Score: ClampScore(rs.Score), Label: rs.Explanation})
	}
	return scores
}

// Summary implements Analysis
func (a *AIAssisted) Summary() string { return a.Result.OverallAssessment.Summary }
