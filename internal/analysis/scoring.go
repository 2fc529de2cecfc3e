package analysis

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/job-fit-analyzer/internal/types"
)

const (
	baselineScore = 50

	// requirements up to this many years are treated as a fit for the candidate
	maxMatchedYears = 15
	highYears       = 20
)

// Abbreviations need word boundaries: "director" contains "cto"
var (
	ctoRe = regexp.MustCompile(`\bcto\b`)
	vpRe  = regexp.MustCompile(`\b[se]?vp\b`)
)

var (
	techTitleKeywords   = []string{"software", "engineering", "technology", "technical"}
	remoteTitleKeywords = []string{"remote", "distributed"}
)

// FitInput carries the signals the scorer combines
type FitInput struct {
	Title           string
	Role            types.RoleType
	Matched         []string
	Missing         []string
	IsAIForward     bool
	YearsExperience *int
}

// SuggestRole maps a title, then the extracted seniority, to a role archetype.
// An empty title yields no suggestion.
func SuggestRole(title string, seniority types.SeniorityLevel) types.RoleType {
	if title == "" {
		return ""
	}
	lower := strings.ToLower(title)

	switch {
	case ctoRe.MatchString(lower) || containsAny(lower, "chief technology", "chief technical"):
		return types.RoleCTO
	case vpRe.MatchString(lower) || strings.Contains(lower, "vice president"):
		return types.RoleVP
	case containsAny(lower, "director", "head of"):
		return types.RoleDirector
	case containsAny(lower, "architect", "principal"):
		return types.RoleArchitect
	}

	switch seniority {
	case types.SeniorityStaffPlus:
		return types.RoleArchitect
	case types.SenioritySenior:
		return types.RoleDirector
	}
	return ""
}

// ScoreFit applies every additive rule to the baseline and clamps once at the end.
// Notes are recorded in rule order, one per rule that fired.
func ScoreFit(in FitInput) (int, []string) {
	score := baselineScore
	notes := []string{}

	switch in.Role {
	case types.RoleCTO, types.RoleVP:
		score += 20
		notes = append(notes, fmt.Sprintf("Executive role alignment: %s", in.Role))
	case types.RoleDirector:
		score += 15
		notes = append(notes, "Director-level role")
	case types.RoleArchitect:
		score += 10
		notes = append(notes, "Architecture/Principal role")
	}

	matched, total := len(in.Matched), len(in.Matched)+len(in.Missing)
	if total > 0 {
		ratio := float64(matched) / float64(total)
		score += int(math.Round(ratio * 20))
		switch {
		case ratio >= 0.8:
			notes = append(notes, fmt.Sprintf("Strong tech match: %d/%d", matched, total))
		case ratio >= 0.5:
			notes = append(notes, fmt.Sprintf("Good tech match: %d/%d", matched, total))
		}
		if ratio < 0.3 && total > 3 {
			notes = append(notes, fmt.Sprintf("Tech gap: missing %s", strings.Join(in.Missing[:min(3, len(in.Missing))], ", ")))
			score -= 10
		}
	}

	if in.IsAIForward {
		score += 10
		notes = append(notes, "AI-forward company")
	}

	if in.YearsExperience != nil && *in.YearsExperience > 0 {
		years := *in.YearsExperience
		switch {
		case years <= maxMatchedYears:
			score += 5
			notes = append(notes, fmt.Sprintf("Experience requirement: %d+ years (match)", years))
		case years > highYears:
			notes = append(notes, fmt.Sprintf("High experience requirement: %d+ years", years))
		}
	}

	if in.Title != "" {
		lower := strings.ToLower(in.Title)
		if containsAny(lower, techTitleKeywords...) {
			score += 5
			notes = append(notes, "Technology-focused role")
		}
		if containsAny(lower, remoteTitleKeywords...) {
			score += 3
			notes = append(notes, "Remote-friendly")
		}
	}

	return types.ClampScore(score), notes
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
