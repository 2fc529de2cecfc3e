// Package main provides the fit_agent CLI for scoring job postings against the candidate profile.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is overridden at build time
var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "fit_agent",
	Short:         "Executive job-fit analysis",
	Long:          "fit_agent detects job descriptions, extracts requirements, checks remote-location restrictions and scores postings for the candidate, with optional AI analysis and coaching.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	debugLogs  bool
	jsonOutput bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is fit_agent.yaml in the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&debugLogs, "debug", "d", false, "Verbose/debug logging")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "JSON output and JSON logs")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
