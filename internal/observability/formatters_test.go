package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/job-fit-analyzer/internal/analysis"
	"github.com/jonathan/job-fit-analyzer/internal/cache"
	"github.com/jonathan/job-fit-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintDetection(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	years := 8
	p.PrintDetection(types.JDAnalysisResult{
		IsJD:         true,
		Confidence:   0.65,
		Summary:      types.JDSummary{JobTitle: "Staff Engineer", Company: "Acme"},
		Requirements: types.ExtractedRequirements{YearsExperience: &years},
	})
	output := buf.String()

	assert.Contains(t, output, "JOB DESCRIPTION DETECTION")
	assert.Contains(t, output, "Job description: yes (confidence 0.65)")
	assert.Contains(t, output, "Title:    Staff Engineer")
	assert.Contains(t, output, "Company:  Acme")
	assert.NotContains(t, output, "Location:")
	assert.Contains(t, output, "Experience: 8+ years")
}

func TestPrintRequirements(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRequirements(types.ExtractedRequirements{
		Technologies: []string{"Go", "Python"},
		MustHave:     []string{"a", "b", "c", "d", "e", "f", "g"},
		NiceToHave:   []string{"Rust"},
	})
	output := buf.String()

	assert.Contains(t, output, "Tech:       Go, Python")
	assert.Contains(t, output, "  • e")
	assert.NotContains(t, output, "  • f")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, "  • Rust")
}

func TestPrintRequirements_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRequirements(types.ExtractedRequirements{})

	assert.Contains(t, buf.String(), "No specific requirements extracted")
}

func TestPrintLocation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLocation(types.LocationValidationResult{
		AllowedStates: []string{"CT", "NY"},
		UserState:     "GA",
		Reason:        "Remote position restricted to CT, NY. User is in GA.",
	})
	output := buf.String()

	assert.Contains(t, output, "Compatible: NO")
	assert.Contains(t, output, "Allowed:    CT, NY")
	assert.Contains(t, output, "User is in GA.")

	buf.Reset()
	p.PrintLocation(types.LocationValidationResult{IsCompatible: true, UserState: "GA"})
	assert.Contains(t, buf.String(), "Allowed:    any state")
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := types.JobAnalysisResult{
		SuggestedPriority:   72,
		SuggestedRole:       types.RoleVP,
		IsAIForward:         true,
		AIConfidence:        0.8,
		TechnologiesMatched: []string{"Python"},
		TechnologiesMissing: []string{"Rust"},
		AnalysisNotes:       []string{"VP-level role"},
		RoleScores:          []types.RoleScore{{Role: types.RoleVP, Score: 72, Label: "Suggested role"}},
	}
	p.PrintAnalysis(analysis.Outcome{
		Analysis: &types.RuleBased{Result: result},
		Result:   result,
		FellBack: true,
		Notes:    []types.JobNote{{Type: types.NoteWatchOuts, Text: "**Concerns to Address:**\n• Travel"}},
	})
	output := buf.String()

	assert.Contains(t, output, "JOB FIT ANALYSIS")
	assert.Contains(t, output, "Priority:  72/100")
	assert.Contains(t, output, "AI-first:  true (80%)")
	assert.Contains(t, output, "Source:    rule_based, AI unavailable")
	assert.Contains(t, output, "  • Rust")
	assert.Contains(t, output, "vp          72  Suggested role")
	assert.Contains(t, output, "WATCH OUTS")
	assert.Contains(t, output, "• Travel")
}

func TestPrintAnalysis_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnalysis(analysis.Outcome{})

	assert.Empty(t, buf.String())
}

func TestPrintBatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBatch(analysis.BatchResult{
		RunID:         "run-1",
		TotalEligible: 3,
		Processed:     3,
		Successful:    2,
		Failed:        1,
		Results: []analysis.BatchJobResult{
			{JobID: "job-1", Success: true, Priority: 81, Role: types.RoleDirector, Source: "rule_based"},
			{JobID: "job-3", Success: true, Priority: 40, Source: "rule_based"},
			{JobID: "job-2", Error: "disk full"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "Processed:  3 (2 ok, 1 failed)")
	assert.Contains(t, output, "✓ job-1  81  director  rule_based")
	assert.Contains(t, output, "✓ job-3  40  -  rule_based")
	assert.Contains(t, output, "✗ job-2  disk full")
}

func TestPrintCacheStats(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCacheStats(cache.Stats{Size: 3, MaxSize: 500, TTLSeconds: 86400})

	assert.Contains(t, buf.String(), "Entries:  3/500")
	assert.Contains(t, buf.String(), "TTL:      86400s")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[3], strings.Repeat("x", 53)+"...")
	assert.NotContains(t, lines[3], strings.Repeat("x", 54))
}
