package evidence

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-fit-analyzer/internal/types"
)

const (
	requirementThreshold = 0.40
	requirementLimit     = 3
	requirementBatchSize = 5
	snippetChars         = 200
)

// MatchRequirements searches evidence for each requirement. Requirements are
// processed in batches of five, concurrently within a batch. Results keep input order.
func (c *Client) MatchRequirements(ctx context.Context, requirements []string) []types.JDMatchResult {
	if !c.IsConfigured() {
		c.logNotConfigured()
		return []types.JDMatchResult{}
	}

	results := make([]types.JDMatchResult, len(requirements))
	for start := 0; start < len(requirements); start += requirementBatchSize {
		end := min(start+requirementBatchSize, len(requirements))

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = c.matchRequirement(ctx, requirements[i])
				return nil
			})
		}
		_ = g.Wait()
	}

	counts := make(map[types.MatchStrength]int, 4)
	for _, r := range results {
		counts[r.MatchStrength]++
	}
	c.logger.Info("jd_requirements_matched",
		zap.Int("total_requirements", len(requirements)),
		zap.Int("strong", counts[types.MatchStrong]),
		zap.Int("moderate", counts[types.MatchModerate]),
		zap.Int("weak", counts[types.MatchWeak]),
		zap.Int("none", counts[types.MatchNone]),
	)
	return results
}

func (c *Client) matchRequirement(ctx context.Context, requirement string) types.JDMatchResult {
	matches := c.Search(ctx, requirement, nil, requirementThreshold, requirementLimit)

	result := types.JDMatchResult{
		Requirement: requirement,
		Evidence:    make([]string, 0, len(matches)),
		TopMatches:  make([]types.RAGEvidence, 0, len(matches)),
	}

	var total float64
	for _, m := range matches {
		total += m.Similarity
		s := snippet(m.Content)
		result.Evidence = append(result.Evidence, s)
		result.TopMatches = append(result.TopMatches, types.RAGEvidence{
			Requirement:     requirement,
			MatchStrength:   MatchStrength(m.Similarity),
			EvidenceSnippet: s,
			SourceDocument:  m.Source,
			SimilarityScore: m.Similarity,
		})
	}
	if len(matches) > 0 {
		result.AvgSimilarity = total / float64(len(matches))
	}
	result.MatchStrength = MatchStrength(result.AvgSimilarity)
	return result
}

// snippet flattens the first snippetChars characters of content onto one line,
// marking it with "..." when the flattened text still fills the window
func snippet(content string) string {
	s := strings.TrimSpace(strings.ReplaceAll(truncateRunes(content, snippetChars), "\n", " "))
	if len([]rune(s)) == snippetChars {
		s += "..."
	}
	return s
}

// EvidenceFor flattens the per-match evidence of requirement matches
func EvidenceFor(matches []types.JDMatchResult) []types.RAGEvidence {
	out := []types.RAGEvidence{}
	for _, m := range matches {
		out = append(out, m.TopMatches...)
	}
	return out
}
