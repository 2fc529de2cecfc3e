// Package analysis scores job postings against the candidate profile using
// deterministic heuristics, and reconciles AI-assisted results into the same shape.
package analysis

import (
	"sort"
	"strings"

	"github.com/jonathan/job-fit-analyzer/internal/jd"
	"github.com/jonathan/job-fit-analyzer/internal/location"
	"github.com/jonathan/job-fit-analyzer/internal/profile"
	"github.com/jonathan/job-fit-analyzer/internal/types"
)

// Analyzer runs the rule-based path. It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	profile   *profile.CandidateProfile
	skills    profile.SkillSet
	locations *location.Validator
}

// NewAnalyzer creates an Analyzer for the given candidate
func NewAnalyzer(p *profile.CandidateProfile) *Analyzer {
	return &Analyzer{
		profile:   p,
		skills:    p.SkillSet(),
		locations: location.NewValidator(p.HomeState),
	}
}

// Profile returns the candidate the analyzer scores against
func (a *Analyzer) Profile() *profile.CandidateProfile {
	return a.profile
}

// Analyze produces the rule-based result for a posting. Absent fields yield neutral signals.
func (a *Analyzer) Analyze(posting types.Posting) types.JobAnalysisResult {
	parsed := jd.DetectAndParse(posting.Description)
	return a.AnalyzeParsed(posting, parsed)
}

// AnalyzeParsed scores a posting whose description was already run through the detector
func (a *Analyzer) AnalyzeParsed(posting types.Posting, parsed types.JDAnalysisResult) types.JobAnalysisResult {
	req := parsed.Requirements
	lowerText := strings.ToLower(joinNonEmpty(posting.Title, posting.Company, posting.Description))

	isAIForward, aiConfidence := DetectAIForward(lowerText, req.Technologies)
	matched, missing := a.MatchTechnologies(req.Technologies)
	role := SuggestRole(posting.Title, req.SeniorityLevel)

	priority, notes := ScoreFit(FitInput{
		Title:           posting.Title,
		Role:            role,
		Matched:         matched,
		Missing:         missing,
		IsAIForward:     isAIForward,
		YearsExperience: req.YearsExperience,
	})

	loc := a.locations.Validate(posting.Location, posting.WorkLocationType)

	return types.JobAnalysisResult{
		IsAIForward:             isAIForward,
		AIConfidence:            types.ClampConfidence(aiConfidence),
		SuggestedPriority:       priority,
		SuggestedRole:           role,
		TechnologiesMatched:     matched,
		TechnologiesMissing:     missing,
		YearsExperienceRequired: req.YearsExperience,
		SeniorityLevel:          string(req.SeniorityLevel),
		IsLocationCompatible:    loc.IsCompatible,
		LocationNotes:           loc.Reason,
		AnalysisNotes:           notes,
		RoleScores:              a.roleScores(role, priority),
	}
}

// roleScoreStep is the score lost per step of distance from the suggested role
const roleScoreStep = 15

// roleScores spreads the fit score across the role ordering: the suggested role
// gets the priority and every other role loses roleScoreStep per step away from it.
func (a *Analyzer) roleScores(suggested types.RoleType, priority int) []types.RoleScore {
	if suggested == "" {
		return nil
	}
	anchor := a.profile.RoleRank(suggested)
	scores := make([]types.RoleScore, 0, len(a.profile.RolePriority))
	for i, role := range a.profile.RolePriority {
		distance := i - anchor
		if distance < 0 {
			distance = -distance
		}
		label := "Rule-based estimate"
		if role == suggested {
			label = "Suggested role"
		}
		scores = append(scores, types.RoleScore{
			Role:  role,
			Score: types.ClampScore(priority - distance*roleScoreStep),
			Label: label,
		})
	}
	return scores
}

// ValidateLocation checks a posting's location against the candidate's home state
func (a *Analyzer) ValidateLocation(posting types.Posting) types.LocationValidationResult {
	return a.locations.Validate(posting.Location, posting.WorkLocationType)
}

// MatchTechnologies partitions technologies into those the candidate has and those they lack,
// preserving input order. Both slices are non-nil.
func (a *Analyzer) MatchTechnologies(technologies []string) (matched, missing []string) {
	matched, missing = []string{}, []string{}
	for _, t := range technologies {
		if a.skills.Has(t) {
			matched = append(matched, t)
		} else {
			missing = append(missing, t)
		}
	}
	return matched, missing
}

// Ranked pairs an analysis with the posting it belongs to
type Ranked struct {
	JobID    string
	Analysis types.Analysis
}

// SortByFit orders analyses by priority, highest first. Equal priorities fall back
// to the candidate's role ordering, then job ID.
func (a *Analyzer) SortByFit(items []Ranked) {
	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := items[i].Analysis.Priority(), items[j].Analysis.Priority()
		if pi != pj {
			return pi > pj
		}
		ri, rj := a.profile.RoleRank(items[i].Analysis.Role()), a.profile.RoleRank(items[j].Analysis.Role())
		if ri != rj {
			return ri < rj
		}
		return items[i].JobID < items[j].JobID
	})
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
