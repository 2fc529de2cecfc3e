package types

// AssessmentType classifies how deeply a company is involved with AI
type AssessmentType string

// AI involvement levels
const (
	AssessmentBuildingAI  AssessmentType = "building_ai"
	AssessmentUsingAI     AssessmentType = "using_ai"
	AssessmentAICurious   AssessmentType = "ai_curious"
	AssessmentTraditional AssessmentType = "traditional"
)

// SeniorityMatch compares candidate seniority to the role
type SeniorityMatch string

// Seniority comparisons
const (
	SeniorityOverQualified      SeniorityMatch = "over_qualified"
	SeniorityWellMatched        SeniorityMatch = "well_matched"
	SenioritySlightlyUnder      SeniorityMatch = "slightly_under"
	SenioritySignificantlyUnder SeniorityMatch = "significantly_under"
)

// Recommendation is the overall action suggested for a posting
type Recommendation string

// Recommendations, strongest first
const (
	RecommendStrongApply  Recommendation = "strong_apply"
	RecommendApply        Recommendation = "apply"
	RecommendResearchMore Recommendation = "research_more"
	RecommendSkip         Recommendation = "skip"
)

// RoleClassification is the LLM's pick for the best-fitting role
type RoleClassification struct {
	SuggestedRole RoleType `json:"suggested_role"`
	Confidence    float64  `json:"confidence"`
	Reasoning     string   `json:"reasoning"`
}

// RoleScoreDetail is a per-role score with explanation from the LLM
type RoleScoreDetail struct {
	Role        RoleType `json:"role"`
	Score       int      `json:"score"`
	Explanation string   `json:"explanation"`
}

// AIForwardAssessment is the LLM's view of the company's AI involvement
type AIForwardAssessment struct {
	IsAIForward    bool           `json:"is_ai_forward"`
	Confidence     float64        `json:"confidence"`
	Evidence       []string       `json:"evidence"`
	AssessmentType AssessmentType `json:"assessment_type"`
}

// SkillsAlignment groups skills by how well the candidate covers them
type SkillsAlignment struct {
	StrongMatches  []string `json:"strong_matches"`
	PartialMatches []string `json:"partial_matches"`
	Gaps           []string `json:"gaps"`
}

// ExperienceFit compares required and actual experience
type ExperienceFit struct {
	YearsRequired  *int           `json:"years_required"`
	SeniorityMatch SeniorityMatch `json:"seniority_match"`
	Notes          string         `json:"notes,omitempty"`
}

// CulturalSignals lists culture positives and concerns
type CulturalSignals struct {
	Positive []string `json:"positive"`
	Concerns []string `json:"concerns"`
}

// LocationAssessment is the LLM's view of location compatibility
type LocationAssessment struct {
	IsCompatible         bool     `json:"is_compatible"`
	WorkTypeDetected     string   `json:"work_type_detected,omitempty"`
	LocationRestrictions []string `json:"location_restrictions"`
	Notes                string   `json:"notes,omitempty"`
}

// OverallAssessment is the LLM's final verdict
type OverallAssessment struct {
	PriorityScore  int            `json:"priority_score"`
	Recommendation Recommendation `json:"recommendation"`
	Summary        string         `json:"summary"`
	KeyStrengths   []string       `json:"key_strengths"`
	KeyConcerns    []string       `json:"key_concerns"`
}

// AIJobAnalysisResult is the parsed LLM analysis of a posting
type AIJobAnalysisResult struct {
	RoleClassification  RoleClassification  `json:"role_classification"`
	RoleScores          []RoleScoreDetail   `json:"role_scores"`
	AIForwardAssessment AIForwardAssessment `json:"ai_forward_assessment"`
	SkillsAlignment     SkillsAlignment     `json:"skills_alignment"`
	ExperienceFit       ExperienceFit       `json:"experience_fit"`
	CulturalSignals     CulturalSignals     `json:"cultural_signals"`
	LocationAssessment  LocationAssessment  `json:"location_assessment"`
	OverallAssessment   OverallAssessment   `json:"overall_assessment"`
	ModelUsed           string              `json:"model_used"`
}

// MatchStrength grades how well career evidence supports a requirement
type MatchStrength string

// Match strengths
const (
	MatchStrong   MatchStrength = "strong"
	MatchModerate MatchStrength = "moderate"
	MatchWeak     MatchStrength = "weak"
	MatchNone     MatchStrength = "none"
)

// RAGEvidence is one supporting excerpt for a requirement
type RAGEvidence struct {
	Requirement     string        `json:"requirement"`
	MatchStrength   MatchStrength `json:"match_strength"`
	EvidenceSnippet string        `json:"evidence_snippet"`
	SourceDocument  string        `json:"source_document"`
	SimilarityScore float64       `json:"similarity_score"`
}

// JDMatchResult is the evidence match for a single posting requirement
type JDMatchResult struct {
	Requirement   string        `json:"requirement"`
	MatchStrength MatchStrength `json:"match_strength"`
	Evidence      []string      `json:"evidence"`
	TopMatches    []RAGEvidence `json:"top_matches"`
	AvgSimilarity float64       `json:"avg_similarity"`
}

// ResumeSearchResult is a chunk returned by semantic search over career documents
type ResumeSearchResult struct {
	ID         string  `json:"id"`
	Content    string  `json:"content"`
	Source     string  `json:"source"`
	Category   string  `json:"category"`
	Similarity float64 `json:"similarity"`
	Section    string  `json:"section,omitempty"`
}

// CoachingInsights is the optional coaching section of an evidence-enriched analysis
type CoachingInsights struct {
	TalkingPoints        []string      `json:"talking_points"`
	StrengthsToHighlight []string      `json:"strengths_to_highlight"`
	GapsToAddress        []string      `json:"gaps_to_address"`
	StudyRecommendations []string      `json:"study_recommendations"`
	WatchOuts            []string      `json:"watch_outs"`
	EvidenceFromResume   []RAGEvidence `json:"evidence_from_resume"`
}
