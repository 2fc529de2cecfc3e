package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-fit-analyzer/internal/analysis"
	"github.com/jonathan/job-fit-analyzer/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a posting's fit for the candidate",
	Long: `Analyze runs the rule-based fit analysis on a posting. With --ai and a configured
API key the model analysis is used instead, falling back to the rule-based result
on any model failure. --coaching adds career-document evidence when
EVIDENCE_DATABASE_URL is set.`,
	RunE: runAnalyze,
}

var (
	analyzeInputFile string
	analyzeTitle     string
	analyzeCompany   string
	analyzeLocation  string
	analyzeWorkType  string
	analyzeJobID     string
	analyzeUseAI     bool
	analyzeCoaching  bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInputFile, "in", "i", "", "Path to the posting description, or - for stdin")
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "Job title")
	analyzeCmd.Flags().StringVar(&analyzeCompany, "company", "", "Company name")
	analyzeCmd.Flags().StringVar(&analyzeLocation, "location", "", "Posting location")
	analyzeCmd.Flags().StringVar(&analyzeWorkType, "work-type", "", "Work arrangement: remote, hybrid or on_site")
	analyzeCmd.Flags().StringVar(&analyzeJobID, "job-id", "", "Posting identifier, used as the cache key")
	analyzeCmd.Flags().BoolVar(&analyzeUseAI, "ai", false, "Use AI analysis when an API key is configured")
	analyzeCmd.Flags().BoolVar(&analyzeCoaching, "coaching", false, "Add interview coaching (implies --ai)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	description, err := readInput(cmd, analyzeInputFile)
	if err != nil {
		return err
	}

	posting := types.Posting{
		ID:               analyzeJobID,
		Title:            analyzeTitle,
		Company:          analyzeCompany,
		Description:      description,
		Location:         analyzeLocation,
		WorkLocationType: types.ParseWorkLocationType(analyzeWorkType),
	}
	if analyzeWorkType != "" && posting.WorkLocationType == "" {
		return fmt.Errorf("invalid --work-type %q: must be remote, hybrid or on_site", analyzeWorkType)
	}

	ctx := context.Background()
	useAI := analyzeUseAI || analyzeCoaching
	svc, err := a.service(ctx, useAI, analyzeCoaching)
	if err != nil {
		return err
	}

	out := svc.Analyze(ctx, posting, analysis.Options{UseAI: useAI, Coaching: analyzeCoaching})
	if jsonOutput {
		return a.printJSON(struct {
			analysis.Document
			Notes    []types.JobNote `json:"notes,omitempty"`
			CacheHit bool            `json:"cache_hit"`
			FellBack bool            `json:"fell_back"`
		}{out.Document(), out.Notes, out.CacheHit, out.FellBack})
	}
	a.printer().PrintAnalysis(out)
	return nil
}
