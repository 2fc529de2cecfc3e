package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/job-fit-analyzer/internal/mcptools"
)

var serveMCPCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Serve the analysis tools over MCP stdio",
	Long:  "Serve-mcp exposes detect_job_description, extract_requirements, validate_location and analyze_job as MCP tools on stdin/stdout. Logs go to stderr.",
	RunE:  runServeMCP,
}

var serveMCPUseAI bool

func init() {
	serveMCPCmd.Flags().BoolVar(&serveMCPUseAI, "ai", true, "Configure the AI path so analyze_job can use it")

	rootCmd.AddCommand(serveMCPCmd)
}

func runServeMCP(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	svc, err := a.service(context.Background(), serveMCPUseAI, serveMCPUseAI)
	if err != nil {
		return err
	}

	a.log.Info("mcp_server_starting", zap.String("version", version), zap.Bool("ai_configured", svc.AIConfigured()))
	return mcptools.Serve(mcptools.New(svc, a.log), version)
}
