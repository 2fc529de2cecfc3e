package aianalysis

import "github.com/jonathan/job-fit-analyzer/internal/types"

// FallbackModel is recorded as ModelUsed on fallback results
const FallbackModel = "fallback"

// Fallback returns the neutral result used when the model cannot be reached or understood
func Fallback() types.AIJobAnalysisResult {
	scores := make([]types.RoleScoreDetail, 0, len(types.AllRoles))
	for _, role := range types.AllRoles {
		scores = append(scores, types.RoleScoreDetail{Role: role, Score: defaultScore, Explanation: "Fallback score"})
	}

	return types.AIJobAnalysisResult{
		RoleClassification: types.RoleClassification{
			SuggestedRole: types.RoleDeveloper,
			Confidence:    0.3,
			Reasoning:     "Fallback: AI analysis unavailable",
		},
		RoleScores: scores,
		AIForwardAssessment: types.AIForwardAssessment{
			Confidence:     0.3,
			Evidence:       []string{},
			AssessmentType: types.AssessmentTraditional,
		},
		SkillsAlignment: types.SkillsAlignment{StrongMatches: []string{}, PartialMatches: []string{}, Gaps: []string{}},
		ExperienceFit:   types.ExperienceFit{SeniorityMatch: types.SeniorityWellMatched},
		CulturalSignals: types.CulturalSignals{Positive: []string{}, Concerns: []string{}},
		LocationAssessment: types.LocationAssessment{
			IsCompatible:         true,
			LocationRestrictions: []string{},
		},
		OverallAssessment: types.OverallAssessment{
			PriorityScore:  defaultScore,
			Recommendation: types.RecommendResearchMore,
			Summary:        "AI analysis unavailable - manual review recommended",
			KeyStrengths:   []string{},
			KeyConcerns:    []string{"AI analysis failed - needs manual review"},
		},
		ModelUsed: FallbackModel,
	}
}
