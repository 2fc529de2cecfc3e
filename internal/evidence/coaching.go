package evidence

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/job-fit-analyzer/internal/types"
)

const (
	contextResults = 4
	contextChars   = 400
)

// CoachingContext assembles markdown describing how the candidate's documents
// cover the posting, for inclusion in a coaching prompt. It also returns the
// requirement matches it computed. Empty when unconfigured or nothing matched.
func (c *Client) CoachingContext(ctx context.Context, title string, requirements []string) (string, []types.JDMatchResult) {
	if !c.IsConfigured() {
		return "", []types.JDMatchResult{}
	}

	var sections []string

	matches := c.MatchRequirements(ctx, requirements)
	if len(matches) > 0 {
		sections = append(sections, formatMatches(matches))
	}

	role := c.Search(ctx, fmt.Sprintf("experience relevant to %s leadership role", title),
		[]string{"master-documents", "career-analysis"}, 0, contextResults)
	if len(role) > 0 {
		sections = append(sections, formatSection(role, "Role Experience"))
	}

	interview := c.Search(ctx, fmt.Sprintf("interview talking points for %s", title),
		[]string{"interview-prep"}, 0, contextResults)
	if len(interview) > 0 {
		sections = append(sections, formatSection(interview, "Interview Prep"))
	}

	if len(sections) == 0 {
		return "", matches
	}

	return "## RELEVANT EXPERIENCE FROM CAREER DOCUMENTS\n\n" +
		"The following excerpts are from the candidate's personal career documents including\n" +
		"project details, case studies, and interview prep materials.\n\n" +
		strings.Join(sections, "\n"), matches
}

func formatMatches(matches []types.JDMatchResult) string {
	grouped := make(map[types.MatchStrength][]types.JDMatchResult, 4)
	for _, m := range matches {
		grouped[m.MatchStrength] = append(grouped[m.MatchStrength], m)
	}
	strong, moderate := grouped[types.MatchStrong], grouped[types.MatchModerate]
	weak, gaps := grouped[types.MatchWeak], grouped[types.MatchNone]

	parts := []string{"### JD Requirements Analysis (RAG-Powered)\n"}
	if len(strong) > 0 {
		parts = append(parts, "**Strong Matches (Clear evidence):**")
		for _, m := range strong {
			evidence := "Multiple sources"
			if len(m.Evidence) > 0 {
				evidence = m.Evidence[0]
			}
			parts = append(parts, fmt.Sprintf("- %s\n  Evidence: %s", m.Requirement, evidence))
		}
	}
	parts = appendGroup(parts, "\n**Moderate Matches (Related experience):**", moderate)
	parts = appendGroup(parts, "\n**Weak Matches (Tangential):**", weak)
	parts = appendGroup(parts, "\n**Potential Gaps (Address in coaching):**", gaps)
	parts = append(parts, fmt.Sprintf("\n*Summary: %d strong, %d moderate, %d weak, %d gaps*",
		len(strong), len(moderate), len(weak), len(gaps)))

	return strings.Join(parts, "\n")
}

func appendGroup(parts []string, heading string, matches []types.JDMatchResult) []string {
	if len(matches) == 0 {
		return parts
	}
	parts = append(parts, heading)
	for _, m := range matches {
		parts = append(parts, "- "+m.Requirement)
	}
	return parts
}

func formatSection(results []types.ResumeSearchResult, title string) string {
	parts := []string{fmt.Sprintf("### %s\n", title)}
	for _, r := range results {
		source := strings.ReplaceAll(strings.ReplaceAll(r.Source, ".md", ""), "_", " ")
		if r.Section != "" {
			source += " - " + r.Section
		}
		parts = append(parts, fmt.Sprintf("**%s** (Relevance: %.0f%%)\n%s...",
			source, r.Similarity*100, truncateRunes(r.Content, contextChars)))
	}
	return strings.Join(parts, "\n\n")
}
