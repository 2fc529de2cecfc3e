package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/job-fit-analyzer/internal/jd"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Decide whether text is a job description",
	Long:  "Detect scores the text against job-description indicators and prints the verdict, a best-effort summary and a requirements digest.",
	RunE:  runDetect,
}

var detectInputFile string

func init() {
	detectCmd.Flags().StringVarP(&detectInputFile, "in", "i", "", "Path to the text file, or - for stdin")

	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	text, err := readInput(cmd, detectInputFile)
	if err != nil {
		return err
	}

	result := jd.DetectAndParse(text)
	if jsonOutput {
		return a.printJSON(struct {
			IsJD                bool    `json:"is_jd"`
			Confidence          float64 `json:"confidence"`
			Summary             any     `json:"summary"`
			RequirementsSummary string  `json:"requirements_summary"`
		}{result.IsJD, result.Confidence, result.Summary, jd.SummarizeRequirements(result.Requirements)})
	}
	a.printer().PrintDetection(result)
	return nil
}
