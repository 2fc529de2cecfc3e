package aianalysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/job-fit-analyzer/internal/llm"
	"github.com/jonathan/job-fit-analyzer/internal/logger"
	"github.com/jonathan/job-fit-analyzer/internal/schemas"
	"github.com/jonathan/job-fit-analyzer/internal/types"
)

const (
	defaultRoleConfidence = 0.5
	defaultScore          = 50
	missingRoleNote       = "No specific analysis"
)

// Parsed is a decoded model response
type Parsed struct {
	Result types.AIJobAnalysisResult
	// Coaching is nil when the response carries no coaching_insights object
	Coaching *types.CoachingInsights
	// SchemaErr holds contract violations. Defaults are still applied when it is set.
	SchemaErr error
}

// Parse extracts the outermost JSON object from a model response and decodes it
// leniently: absent or unrecognized values take defaults, scores are clamped to
// [0,100] and confidences to [0,1]. Every role gets a score.
func Parse(content string) (Parsed, error) {
	raw := llm.ExtractJSONObject(content)
	if raw == "" {
		return Parsed{}, &ParseError{Message: fmt.Sprintf("no JSON found in response: %s", logger.TruncateForLog(content, 200))}
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return Parsed{}, &ParseError{Message: "invalid JSON in response", Cause: err}
	}

	parsed := Parsed{
		Result:    decodeResult(object(doc)),
		SchemaErr: schemas.Validate(schemas.AIAnalysisSchema, raw),
	}
	if coaching, ok := doc["coaching_insights"].(map[string]any); ok {
		parsed.Coaching = decodeCoaching(object(coaching))
	}
	return parsed, nil
}

func decodeResult(doc object) types.AIJobAnalysisResult {
	role := doc.obj("role_classification")
	ai := doc.obj("ai_forward_assessment")
	skills := doc.obj("skills_alignment")
	exp := doc.obj("experience_fit")
	culture := doc.obj("cultural_signals")
	loc := doc.obj("location_assessment")
	overall := doc.obj("overall_assessment")

	suggested, ok := types.ParseRoleType(role.str("suggested_role"))
	if !ok {
		suggested = types.RoleDeveloper
	}

	return types.AIJobAnalysisResult{
		RoleClassification: types.RoleClassification{
			SuggestedRole: suggested,
			Confidence:    role.confidence("confidence", defaultRoleConfidence),
			Reasoning:     role.str("reasoning"),
		},
		RoleScores: decodeRoleScores(doc.list("role_scores")),
		AIForwardAssessment: types.AIForwardAssessment{
			IsAIForward:    ai.boolean("is_ai_forward", false),
			Confidence:     ai.confidence("confidence", defaultRoleConfidence),
			Evidence:       ai.stringList("evidence"),
			AssessmentType: parseAssessment(ai.str("assessment_type")),
		},
		SkillsAlignment: types.SkillsAlignment{
			StrongMatches:  skills.stringList("strong_matches"),
			PartialMatches: skills.stringList("partial_matches"),
			Gaps:           skills.stringList("gaps"),
		},
		ExperienceFit: types.ExperienceFit{
			YearsRequired:  exp.optionalInt("years_required"),
			SeniorityMatch: parseSeniorityMatch(exp.str("seniority_match")),
			Notes:          exp.str("notes"),
		},
		CulturalSignals: types.CulturalSignals{
			Positive: culture.stringList("positive"),
			Concerns: culture.stringList("concerns"),
		},
		LocationAssessment: types.LocationAssessment{
			IsCompatible:         loc.boolean("is_compatible", true),
			WorkTypeDetected:     loc.str("work_type_detected"),
			LocationRestrictions: loc.stringList("location_restrictions"),
			Notes:                loc.str("notes"),
		},
		OverallAssessment: types.OverallAssessment{
			PriorityScore:  overall.score("priority_score"),
			Recommendation: parseRecommendation(overall.str("recommendation")),
			Summary:        overall.str("summary"),
			KeyStrengths:   overall.stringList("key_strengths"),
			KeyConcerns:    overall.stringList("key_concerns"),
		},
	}
}

// decodeRoleScores keeps the first score per known role and fills the rest,
// returning them in role priority order
func decodeRoleScores(items []any) []types.RoleScoreDetail {
	byRole := make(map[types.RoleType]types.RoleScoreDetail, len(types.AllRoles))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry := object(m)
		role, ok := types.ParseRoleType(entry.str("role"))
		if !ok {
			continue
		}
		if _, dup := byRole[role]; dup {
			continue
		}
		byRole[role] = types.RoleScoreDetail{
			Role:        role,
			Score:       entry.score("score"),
			Explanation: entry.str("explanation"),
		}
	}

	scores := make([]types.RoleScoreDetail, 0, len(types.AllRoles))
	for _, role := range types.AllRoles {
		detail, ok := byRole[role]
		if !ok {
			detail = types.RoleScoreDetail{Role: role, Score: defaultScore, Explanation: missingRoleNote}
		}
		scores = append(scores, detail)
	}
	return scores
}

func decodeCoaching(c object) *types.CoachingInsights {
	return &types.CoachingInsights{
		TalkingPoints:        c.stringList("talking_points"),
		StrengthsToHighlight: c.stringList("strengths_to_highlight"),
		GapsToAddress:        c.stringList("gaps_to_address"),
		StudyRecommendations: c.stringList("study_recommendations"),
		WatchOuts:            c.stringList("watch_outs"),
		EvidenceFromResume:   []types.RAGEvidence{},
	}
}

func parseAssessment(s string) types.AssessmentType {
	switch a := types.AssessmentType(strings.ToLower(strings.TrimSpace(s))); a {
	case types.AssessmentBuildingAI, types.AssessmentUsingAI, types.AssessmentAICurious, types.AssessmentTraditional:
		return a
	}
	return types.AssessmentTraditional
}

func parseSeniorityMatch(s string) types.SeniorityMatch {
	switch m := types.SeniorityMatch(strings.ToLower(strings.TrimSpace(s))); m {
	case types.SeniorityOverQualified, types.SeniorityWellMatched, types.SenioritySlightlyUnder, types.SenioritySignificantlyUnder:
		return m
	}
	return types.SeniorityWellMatched
}

func parseRecommendation(s string) types.Recommendation {
	switch r := types.Recommendation(strings.ToLower(strings.TrimSpace(s))); r {
	case types.RecommendStrongApply, types.RecommendApply, types.RecommendResearchMore, types.RecommendSkip:
		return r
	}
	return types.RecommendResearchMore
}

// object is a decoded JSON object with typed, defaulting accessors
type object map[string]any

func (o object) obj(key string) object {
	if m, ok := o[key].(map[string]any); ok {
		return object(m)
	}
	return object{}
}

func (o object) list(key string) []any {
	if l, ok := o[key].([]any); ok {
		return l
	}
	return nil
}

func (o object) str(key string) string {
	if s, ok := o[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func (o object) boolean(key string, def bool) bool {
	if b, ok := o[key].(bool); ok {
		return b
	}
	return def
}

func (o object) number(key string) (float64, bool) {
	f, ok := o[key].(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (o object) score(key string) int {
	f, ok := o.number(key)
	if !ok {
		return defaultScore
	}
	return types.ClampScore(int(math.Round(f)))
}

func (o object) confidence(key string, def float64) float64 {
	f, ok := o.number(key)
	if !ok {
		return def
	}
	return types.ClampConfidence(f)
}

func (o object) optionalInt(key string) *int {
	f, ok := o.number(key)
	if !ok || f < 0 {
		return nil
	}
	v := int(math.Round(f))
	return &v
}

// stringList returns the string elements of a list, skipping anything else. Never nil.
func (o object) stringList(key string) []string {
	out := []string{}
	for _, item := range o.list(key) {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
