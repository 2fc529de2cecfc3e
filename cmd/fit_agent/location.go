package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-fit-analyzer/internal/location"
	"github.com/jonathan/job-fit-analyzer/internal/types"
)

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Check a posting location against the home state",
	Long:  "Location parses state restrictions from a remote posting's location text and reports whether the candidate's home state is allowed.",
	RunE:  runLocation,
}

var (
	locationText     string
	locationWorkType string
	locationPretty   bool
)

func init() {
	locationCmd.Flags().StringVar(&locationText, "location", "", "Posting location, e.g. \"Remote US (CT, NY)\" (required)")
	locationCmd.Flags().StringVar(&locationWorkType, "work-type", "remote", "Work arrangement: remote, hybrid or on_site")
	locationCmd.Flags().BoolVar(&locationPretty, "pretty", false, "Print a human-readable box instead of JSON")

	_ = locationCmd.MarkFlagRequired("location")
	rootCmd.AddCommand(locationCmd)
}

func runLocation(cmd *cobra.Command, _ []string) error {
	workType := types.ParseWorkLocationType(locationWorkType)
	if workType == "" {
		return fmt.Errorf("invalid --work-type %q: must be remote, hybrid or on_site", locationWorkType)
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	result := location.NewValidator(a.cfg.Profile.HomeState).Validate(locationText, workType)
	if locationPretty && !jsonOutput {
		a.printer().PrintLocation(result)
		return nil
	}
	return a.printJSON(result)
}
