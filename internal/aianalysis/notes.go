package aianalysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/job-fit-analyzer/internal/types"
)

const maxNoteItems = 5

// GenerateNotes turns an analysis, optional coaching and optional requirement
// matches into typed job notes, all stamped with now
func GenerateNotes(result types.AIJobAnalysisResult, coaching *types.CoachingInsights, matches []types.JDMatchResult, now time.Time) []types.JobNote {
	var notes []types.JobNote
	add := func(noteType types.NoteType, text string, metadata map[string]any) {
		notes = append(notes, types.JobNote{
			Text:      text,
			Timestamp: now,
			Source:    types.NoteSourceAgent,
			Type:      noteType,
			Metadata:  metadata,
		})
	}

	overall := result.OverallAssessment
	recommendation := strings.ToUpper(string(overall.Recommendation))
	summary := fmt.Sprintf("**%s** (%d/100)\n\n%s", recommendation, overall.PriorityScore, overall.Summary)
	if ai := result.AIForwardAssessment; ai.IsAIForward {
		summary += fmt.Sprintf("\n\n**AI Assessment:** %s (%.0f%% confidence)", titleWords(string(ai.AssessmentType)), ai.Confidence*100)
	}
	add(types.NoteAIAnalysisSummary, summary, map[string]any{
		"priority_score": overall.PriorityScore,
		"recommendation": recommendation,
		"ai_forward":     result.AIForwardAssessment.IsAIForward,
		"suggested_role": string(result.RoleClassification.SuggestedRole),
	})

	if len(overall.KeyStrengths) > 0 {
		add(types.NoteStrengths, bulletNote("Key Strengths", overall.KeyStrengths), nil)
	}
	if len(overall.KeyConcerns) > 0 {
		add(types.NoteWatchOuts, bulletNote("Concerns to Address", overall.KeyConcerns), nil)
	}

	if loc := result.LocationAssessment; !loc.IsCompatible {
		text := "**Location Issue:** " + loc.Notes
		if loc.Notes == "" {
			text = "**Location Issue:** Not compatible"
		}
		if len(loc.LocationRestrictions) > 0 {
			text += "\n\nRestricted to: " + strings.Join(loc.LocationRestrictions, ", ")
		}
		add(types.NoteWatchOuts, text, map[string]any{"location_incompatible": true})
	}

	if coaching != nil {
		if len(coaching.TalkingPoints) > 0 {
			add(types.NoteTalkingPoints, bulletNote("Interview Talking Points", coaching.TalkingPoints), nil)
		}
		if len(coaching.StrengthsToHighlight) > 0 {
			add(types.NoteCoachingNotes, bulletNote("Strengths to Emphasize", coaching.StrengthsToHighlight), nil)
		}
		if len(coaching.StudyRecommendations) > 0 {
			add(types.NoteStudyRecommendations, bulletNote("Study Before Interviewing", coaching.StudyRecommendations), nil)
		}
		if len(coaching.GapsToAddress) > 0 {
			add(types.NoteCoachingNotes, bulletNote("Skills Gaps to Address", coaching.GapsToAddress), nil)
		}
		if len(coaching.WatchOuts) > 0 {
			add(types.NoteWatchOuts, bulletNote("Additional Watch-Outs", coaching.WatchOuts), nil)
		}
		if text, count := evidenceNote(coaching.EvidenceFromResume); count > 0 {
			add(types.NoteRAGEvidence, text, map[string]any{"evidence_count": count})
		}
	}

	if text, strong, gaps := requirementsNote(matches); strong+gaps > 0 {
		add(types.NoteRAGEvidence, text, map[string]any{"strong_count": strong, "gap_count": gaps})
	}

	return notes
}

func bulletNote(heading string, items []string) string {
	var sb strings.Builder
	sb.WriteString("**" + heading + ":**")
	for _, item := range items {
		sb.WriteString("\n• " + item)
	}
	return sb.String()
}

func evidenceNote(evidence []types.RAGEvidence) (string, int) {
	var strong []types.RAGEvidence
	for _, e := range evidence {
		if e.MatchStrength == types.MatchStrong {
			strong = append(strong, e)
		}
	}
	if len(strong) == 0 {
		return "", 0
	}

	var sb strings.Builder
	sb.WriteString("**Evidence from Career Documents:**\n")
	for _, e := range firstN(strong, maxNoteItems) {
		fmt.Fprintf(&sb, "\n**%s** (from %s):\n%s\n", e.Requirement, e.SourceDocument, e.EvidenceSnippet)
	}
	return sb.String(), len(strong)
}

func requirementsNote(matches []types.JDMatchResult) (string, int, int) {
	var strong, gaps []types.JDMatchResult
	for _, m := range matches {
		switch m.MatchStrength {
		case types.MatchStrong:
			strong = append(strong, m)
		case types.MatchNone:
			gaps = append(gaps, m)
		}
	}
	if len(strong) == 0 && len(gaps) == 0 {
		return "", 0, 0
	}

	var sb strings.Builder
	sb.WriteString("**JD Requirements Analysis:**\n")
	if len(strong) > 0 {
		fmt.Fprintf(&sb, "\n✅ **Strong Matches (%d):**\n", len(strong))
		for _, m := range firstN(strong, maxNoteItems) {
			sb.WriteString("• " + m.Requirement + "\n")
		}
	}
	if len(gaps) > 0 {
		fmt.Fprintf(&sb, "\n⚠️ **Potential Gaps (%d):**\n", len(gaps))
		for _, m := range firstN(gaps, maxNoteItems) {
			sb.WriteString("• " + m.Requirement + "\n")
		}
	}
	return sb.String(), len(strong), len(gaps)
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// titleWords turns "building_ai" into "Building Ai"
func titleWords(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
