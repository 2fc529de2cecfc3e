// Package observability provides formatted output utilities for human-readable CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-fit-analyzer/internal/analysis"
	"github.com/jonathan/job-fit-analyzer/internal/cache"
	"github.com/jonathan/job-fit-analyzer/internal/jd"
	"github.com/jonathan/job-fit-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", heading)
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintDetection outputs the job-description verdict with its parsed summary
func (p *Printer) PrintDetection(result types.JDAnalysisResult) {
	var sb strings.Builder

	verdict := "no"
	if result.IsJD {
		verdict = "yes"
	}
	fmt.Fprintf(&sb, "Job description: %s (confidence %.2f)\n", verdict, result.Confidence)

	s := result.Summary
	for _, field := range []struct{ label, value string }{
		{"Title", s.JobTitle},
		{"Company", s.Company},
		{"Location", s.Location},
		{"Type", s.EmploymentType},
	} {
		if field.value != "" {
			fmt.Fprintf(&sb, "%-9s %s\n", field.label+":", field.value)
		}
	}
	fmt.Fprintf(&sb, "\n%s", jd.SummarizeRequirements(result.Requirements))

	p.printBox("JOB DESCRIPTION DETECTION", sb.String())
}

// PrintRequirements outputs extracted requirements
func (p *Printer) PrintRequirements(req types.ExtractedRequirements) {
	var sb strings.Builder

	if req.SeniorityLevel != "" {
		fmt.Fprintf(&sb, "Seniority:  %s\n", req.SeniorityLevel)
	}
	if req.YearsExperience != nil {
		fmt.Fprintf(&sb, "Experience: %d+ years\n", *req.YearsExperience)
	}
	if len(req.Education) > 0 {
		fmt.Fprintf(&sb, "Education:  %s\n", strings.Join(req.Education, ", "))
	}
	if len(req.Technologies) > 0 {
		fmt.Fprintf(&sb, "Tech:       %s\n", strings.Join(req.Technologies, ", "))
	}
	writeList(&sb, "Must have", req.MustHave, maxItemsToShow)
	writeList(&sb, "Nice to have", req.NiceToHave, 3)

	content := strings.TrimSuffix(sb.String(), "\n")
	if content == "" {
		content = jd.SummarizeRequirements(req)
	}
	p.printBox("EXTRACTED REQUIREMENTS", content)
}

// PrintLocation outputs a location compatibility check
func (p *Printer) PrintLocation(result types.LocationValidationResult) {
	var sb strings.Builder

	if result.IsCompatible {
		sb.WriteString("Compatible: yes\n")
	} else {
		sb.WriteString("Compatible: NO\n")
	}
	fmt.Fprintf(&sb, "Home state: %s\n", result.UserState)
	if result.AllowedStates == nil {
		sb.WriteString("Allowed:    any state")
	} else {
		fmt.Fprintf(&sb, "Allowed:    %s", strings.Join(result.AllowedStates, ", "))
	}
	if result.Reason != "" {
		fmt.Fprintf(&sb, "\n\n%s", result.Reason)
	}

	p.printBox("LOCATION CHECK", sb.String())
}

// PrintAnalysis outputs the fit analysis of one posting
func (p *Printer) PrintAnalysis(out analysis.Outcome) {
	if out.Analysis == nil {
		return
	}
	r := out.Result
	var sb strings.Builder

	fmt.Fprintf(&sb, "Priority:  %d/100\n", r.SuggestedPriority)
	if r.SuggestedRole != "" {
		fmt.Fprintf(&sb, "Role:      %s\n", r.SuggestedRole)
	}
	fmt.Fprintf(&sb, "AI-first:  %t (%.0f%%)\n", r.IsAIForward, r.AIConfidence*100)
	source := string(out.Analysis.Source())
	switch {
	case out.CacheHit:
		source += ", cached"
	case out.FellBack:
		source += ", AI unavailable"
	}
	fmt.Fprintf(&sb, "Source:    %s\n", source)
	if !r.IsLocationCompatible {
		fmt.Fprintf(&sb, "Location:  %s\n", r.LocationNotes)
	}
	sb.WriteString("\n")

	writeList(&sb, "Matched tech", r.TechnologiesMatched, maxItemsToShow)
	writeList(&sb, "Missing tech", r.TechnologiesMissing, maxItemsToShow)
	writeList(&sb, "Notes", r.AnalysisNotes, maxItemsToShow)

	if len(r.RoleScores) > 0 {
		sb.WriteString("Role scores:\n")
		for _, rs := range r.RoleScores {
			fmt.Fprintf(&sb, "  %-10s %3d  %s\n", rs.Role, rs.Score, rs.Label)
		}
	}

	p.printBox("JOB FIT ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))

	for _, note := range out.Notes {
		p.printBox(strings.ToUpper(strings.ReplaceAll(string(note.Type), "_", " ")), note.Text)
	}
}

// PrintBatch outputs a batch run summary
func (p *Printer) PrintBatch(result analysis.BatchResult) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Run:        %s\n", result.RunID)
	fmt.Fprintf(&sb, "Eligible:   %d\n", result.TotalEligible)
	fmt.Fprintf(&sb, "Processed:  %d (%d ok, %d failed)", result.Processed, result.Successful, result.Failed)

	if len(result.Results) > 0 {
		sb.WriteString("\n")
	}
	for _, r := range result.Results {
		if r.Success {
			role := string(r.Role)
			if role == "" {
				role = "-"
			}
			fmt.Fprintf(&sb, "\n  ✓ %s  %d  %s  %s", r.JobID, r.Priority, role, r.Source)
		} else {
			fmt.Fprintf(&sb, "\n  ✗ %s  %s", r.JobID, r.Error)
		}
	}

	p.printBox("BATCH ANALYSIS", sb.String())
}

// PrintCacheStats outputs cache occupancy
func (p *Printer) PrintCacheStats(stats cache.Stats) {
	p.printBox("ANALYSIS CACHE", fmt.Sprintf(
		"Entries:  %d/%d\nExpired:  %d\nTTL:      %ds",
		stats.Size, stats.MaxSize, stats.ExpiredCount, stats.TTLSeconds))
}
