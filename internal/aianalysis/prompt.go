package aianalysis

import (
	"strconv"
	"strings"

	"github.com/jonathan/job-fit-analyzer/internal/profile"
	"github.com/jonathan/job-fit-analyzer/internal/prompts"
	"github.com/jonathan/job-fit-analyzer/internal/types"
)

const notSpecified = "Not specified"

var roleTitles = map[types.RoleType]string{
	types.RoleCTO:       "CTO",
	types.RoleVP:        "VP of Engineering",
	types.RoleDirector:  "Director of Engineering",
	types.RoleArchitect: "Software Architect",
	types.RoleDeveloper: "Senior Developer",
}

// BuildSystemPrompt renders the standing instructions describing the candidate
func BuildSystemPrompt(p *profile.CandidateProfile) (string, error) {
	roles := make([]string, 0, len(p.RolePriority))
	for i, r := range p.RolePriority {
		title := roleTitles[r]
		if title == "" {
			title = string(r)
		}
		roles = append(roles, strconv.Itoa(i+1)+". **"+title+"**")
	}

	return prompts.Render(prompts.AnalysisFile, prompts.KeySystem, map[string]string{
		"Name":            p.Name,
		"HomeLocation":    p.HomeLocation,
		"HomeState":       p.HomeState,
		"YearsExperience": strconv.Itoa(p.YearsExperience),
		"RolePriority":    strings.Join(roles, "\n"),
		"Skills":          strings.Join(p.Skills, ", "),
	})
}

// BuildUserPrompt renders the posting details and the JSON response contract
func BuildUserPrompt(posting types.Posting, homeState string) (string, error) {
	description := posting.Description
	if strings.TrimSpace(description) == "" {
		description = "No description provided"
	}

	return prompts.Render(prompts.AnalysisFile, prompts.KeyUser, map[string]string{
		"Title":          posting.Title,
		"Company":        posting.Company,
		"Location":       orNotSpecified(posting.Location),
		"WorkType":       orNotSpecified(string(posting.WorkLocationType)),
		"EmploymentType": orNotSpecified(posting.EmploymentType),
		"Description":    description,
		"HomeState":      homeState,
	})
}

// BuildCoachingSection renders the coaching request appended to the user prompt.
// An empty evidence context yields no section.
func BuildCoachingSection(evidenceContext string) (string, error) {
	if strings.TrimSpace(evidenceContext) == "" {
		return "", nil
	}
	return prompts.Render(prompts.AnalysisFile, prompts.KeyCoaching, map[string]string{
		"EvidenceContext": evidenceContext,
	})
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}
