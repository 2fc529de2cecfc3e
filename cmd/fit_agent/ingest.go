package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-fit-analyzer/internal/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Store a job posting for batch analysis",
	RunE:  runIngest,
}

var (
	ingestInputFile  string
	ingestTitle      string
	ingestCompany    string
	ingestLocation   string
	ingestWorkType   string
	ingestEmployment string
	ingestJobID      string
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestInputFile, "in", "i", "", "Path to the posting description, or - for stdin")
	ingestCmd.Flags().StringVar(&ingestTitle, "title", "", "Job title (required)")
	ingestCmd.Flags().StringVar(&ingestCompany, "company", "", "Company name (required)")
	ingestCmd.Flags().StringVar(&ingestLocation, "location", "", "Posting location")
	ingestCmd.Flags().StringVar(&ingestWorkType, "work-type", "", "Work arrangement: remote, hybrid or on_site")
	ingestCmd.Flags().StringVar(&ingestEmployment, "employment-type", "", "Employment type, e.g. full_time")
	ingestCmd.Flags().StringVar(&ingestJobID, "job-id", "", "Posting identifier (default: generated)")

	_ = ingestCmd.MarkFlagRequired("title")
	_ = ingestCmd.MarkFlagRequired("company")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	description, err := readInput(cmd, ingestInputFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	st, err := openStore(ctx, a)
	if err != nil {
		return err
	}

	id, err := st.Insert(ctx, types.Posting{
		ID:               ingestJobID,
		Title:            ingestTitle,
		Company:          ingestCompany,
		Description:      description,
		Location:         ingestLocation,
		WorkLocationType: types.ParseWorkLocationType(ingestWorkType),
		EmploymentType:   ingestEmployment,
	})
	if err != nil {
		return fmt.Errorf("failed to store job: %w", err)
	}
	if ingestJobID != "" {
		// a re-ingested posting must not be served a stale shared-cache result
		svc, err := a.service(ctx, false, false)
		if err != nil {
			return err
		}
		svc.Invalidate(ctx, id)
	}

	if jsonOutput {
		return a.printJSON(map[string]string{"job_id": id})
	}
	_, err = fmt.Fprintf(a.out, "Stored job %s\n", id)
	return err
}
