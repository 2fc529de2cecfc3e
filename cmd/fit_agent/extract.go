package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/job-fit-analyzer/internal/jd"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured requirements from a posting",
	Long:  "Extract prints must-have and nice-to-have bullets, technologies, years of experience, seniority and education as JSON.",
	RunE:  runExtract,
}

var (
	extractInputFile string
	extractPretty    bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to the posting text, or - for stdin")
	extractCmd.Flags().BoolVar(&extractPretty, "pretty", false, "Print a human-readable box instead of JSON")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	text, err := readInput(cmd, extractInputFile)
	if err != nil {
		return err
	}

	req := jd.Extract(text)
	if extractPretty && !jsonOutput {
		a.printer().PrintRequirements(req)
		return nil
	}
	return a.printJSON(req)
}
