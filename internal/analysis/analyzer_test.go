package analysis

import (
	"testing"

	"github.com/jonathan/job-fit-analyzer/internal/jd"
	"github.com/jonathan/job-fit-analyzer/internal/profile"
	"github.com/jonathan/job-fit-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const directorDescription = `About the role
We are seeking a Director of Engineering to lead our platform organization.

Requirements:
- 10+ years of experience in software engineering
- Deep expertise with Python and Azure
- Hands-on background with Docker, Rust and Scala services
- Infrastructure as code using Terraform

Nice to have:
- Kubernetes`

func directorPosting() types.Posting {
	return types.Posting{
		ID:               "job-1",
		Title:            "Director of Engineering - AI Platform",
		Company:          "Northwind Labs",
		Description:      directorDescription,
		Location:         "Remote US",
		WorkLocationType: types.WorkRemote,
	}
}

func TestAnalyze_DirectorOfAIPlatform(t *testing.T) {
	a := NewAnalyzer(profile.Default())

	got := a.Analyze(directorPosting())

	assert.Equal(t, types.RoleDirector, got.SuggestedRole)
	assert.Subset(t, got.TechnologiesMatched, []string{"Python", "Azure"})
	assert.Subset(t, got.TechnologiesMissing, []string{"Kubernetes"})
	assert.True(t, got.IsAIForward)
	assert.GreaterOrEqual(t, got.AIConfidence, 0.9)
	assert.Equal(t, intPtr(10), got.YearsExperienceRequired)
	assert.True(t, got.IsLocationCompatible)

	// 50 + 15 role + 6 partial tech credit - 10 gap + 10 AI + 5 experience + 5 title
	assert.Equal(t, 81, got.SuggestedPriority)
	assert.GreaterOrEqual(t, got.SuggestedPriority, 65)
	assert.LessOrEqual(t, got.SuggestedPriority, 85)
	assert.Equal(t, []string{
		"Director-level role",
		"Tech gap: missing Docker, Kubernetes, Rust",
		"AI-forward company",
		"Experience requirement: 10+ years (match)",
		"Technology-focused role",
	}, got.AnalysisNotes)
}

func TestAnalyze_RoleScoresFollowRoleOrdering(t *testing.T) {
	a := NewAnalyzer(profile.Default())

	got := a.Analyze(directorPosting())

	assert.Equal(t, []types.RoleScore{
		{Role: types.RoleCTO, Score: 51, Label: "Rule-based estimate"},
		{Role: types.RoleVP, Score: 66, Label: "Rule-based estimate"},
		{Role: types.RoleDirector, Score: 81, Label: "Suggested role"},
		{Role: types.RoleArchitect, Score: 66, Label: "Rule-based estimate"},
		{Role: types.RoleDeveloper, Score: 51, Label: "Rule-based estimate"},
	}, got.RoleScores)

	assert.Nil(t, a.Analyze(types.Posting{}).RoleScores, "no role suggested, no breakdown")
}

func TestAnalyze_TechnologiesPartitionExtraction(t *testing.T) {
	a := NewAnalyzer(profile.Default())
	posting := directorPosting()

	got := a.Analyze(posting)
	extracted := jd.ExtractTechnologies(posting.Description)

	require.Len(t, extracted, len(got.TechnologiesMatched)+len(got.TechnologiesMissing))
	assert.ElementsMatch(t, extracted, append(append([]string{}, got.TechnologiesMatched...), got.TechnologiesMissing...))
	for _, m := range got.TechnologiesMatched {
		assert.NotContains(t, got.TechnologiesMissing, m)
	}
}

func TestAnalyze_EmptyPosting(t *testing.T) {
	a := NewAnalyzer(profile.Default())

	got := a.Analyze(types.Posting{})

	assert.Equal(t, 50, got.SuggestedPriority)
	assert.Empty(t, got.SuggestedRole)
	assert.False(t, got.IsAIForward)
	assert.InDelta(t, 0.1, got.AIConfidence, 1e-9)
	assert.Empty(t, got.TechnologiesMatched)
	assert.NotNil(t, got.TechnologiesMissing)
	assert.Nil(t, got.YearsExperienceRequired)
	assert.True(t, got.IsLocationCompatible)
	assert.Empty(t, got.AnalysisNotes)
}

func TestAnalyze_LocationRestriction(t *testing.T) {
	a := NewAnalyzer(profile.Default())
	posting := directorPosting()
	posting.Location = "Remote US (CT, MA, NH, NJ, NY)"

	got := a.Analyze(posting)

	assert.False(t, got.IsLocationCompatible)
	assert.Equal(t, "Remote position restricted to CT, MA, NH, NJ, NY. User is in GA.", got.LocationNotes)
	assert.Equal(t, 81, got.SuggestedPriority, "location does not change the score")

	posting.WorkLocationType = types.WorkHybrid
	assert.True(t, a.Analyze(posting).IsLocationCompatible)
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := NewAnalyzer(profile.Default())

	assert.Equal(t, a.Analyze(directorPosting()), a.Analyze(directorPosting()))
}

func TestMatchTechnologies_UsesAliases(t *testing.T) {
	a := NewAnalyzer(profile.Default())

	matched, missing := a.MatchTechnologies([]string{"postgres", "Node.js", "Kubernetes", "NodeJS"})

	assert.Equal(t, []string{"postgres", "Node.js", "NodeJS"}, matched)
	assert.Equal(t, []string{"Kubernetes"}, missing)
}

func TestSortByFit(t *testing.T) {
	a := NewAnalyzer(profile.Default())
	rb := func(priority int, role types.RoleType) types.Analysis {
		return &types.RuleBased{Result: types.JobAnalysisResult{SuggestedPriority: priority, SuggestedRole: role}}
	}

	items := []Ranked{
		{JobID: "d", Analysis: rb(70, "")},
		{JobID: "c", Analysis: rb(70, types.RoleArchitect)},
		{JobID: "b", Analysis: rb(90, types.RoleDeveloper)},
		{JobID: "a", Analysis: rb(70, types.RoleVP)},
		{JobID: "e", Analysis: rb(70, types.RoleVP)},
	}

	a.SortByFit(items)

	var ids []string
	for _, it := range items {
		ids = append(ids, it.JobID)
	}
	assert.Equal(t, []string{"b", "a", "e", "c", "d"}, ids)
}
