// Package mcptools exposes the job analysis core as MCP tools over stdio.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/jonathan/job-fit-analyzer/internal/analysis"
	"github.com/jonathan/job-fit-analyzer/internal/jd"
	"github.com/jonathan/job-fit-analyzer/internal/logger"
	"github.com/jonathan/job-fit-analyzer/internal/types"
)

// ServerName is reported to MCP clients
const ServerName = "job-fit-analyzer"

// Tool names
const (
	ToolDetect   = "detect_job_description"
	ToolExtract  = "extract_requirements"
	ToolLocation = "validate_location"
	ToolAnalyze  = "analyze_job"
)

type textArgs struct {
	Text string `mapstructure:"text"`
}

type locationArgs struct {
	Location         string `mapstructure:"location"`
	WorkLocationType string `mapstructure:"work_location_type"`
}

type analyzeArgs struct {
	JobID            string `mapstructure:"job_id"`
	Title            string `mapstructure:"title"`
	Company          string `mapstructure:"company"`
	Description      string `mapstructure:"description"`
	Location         string `mapstructure:"location"`
	WorkLocationType string `mapstructure:"work_location_type"`
	EmploymentType   string `mapstructure:"employment_type"`
	UseAI            bool   `mapstructure:"use_ai"`
	Coaching         bool   `mapstructure:"coaching"`
}

type analyzeResponse struct {
	analysis.Document
	Notes    []types.JobNote `json:"notes"`
	CacheHit bool            `json:"cache_hit"`
	FellBack bool            `json:"fell_back"`
}

// Tools holds the handlers behind each MCP tool
type Tools struct {
	service *analysis.Service
	logger  *zap.Logger
}

// New creates the tool handlers
func New(service *analysis.Service, log *zap.Logger) *Tools {
	return &Tools{service: service, logger: logger.WithFields(log, zap.String("component", "mcp"))}
}

// NewServer creates an MCP server with every tool registered
func NewServer(t *Tools, version string) *server.MCPServer {
	s := server.NewMCPServer(ServerName, version)
	t.Register(s)
	return s
}

// Serve blocks serving the tools on stdin/stdout
func Serve(t *Tools, version string) error {
	return server.ServeStdio(NewServer(t, version))
}

// Register adds the tools to an existing server
func (t *Tools) Register(s *server.MCPServer) {
	textInput := mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"text": map[string]interface{}{"type": "string", "description": "Raw job posting text"},
		},
		Required: []string{"text"},
	}

	detect := mcp.NewTool(ToolDetect,
		mcp.WithDescription("Decide whether text is a job description and parse its summary and requirements"),
	)
	detect.InputSchema = textInput
	s.AddTool(detect, t.detect)

	extract := mcp.NewTool(ToolExtract,
		mcp.WithDescription("Extract must-have and nice-to-have requirements, technologies, years of experience, seniority and education"),
	)
	extract.InputSchema = textInput
	s.AddTool(extract, t.extract)

	loc := mcp.NewTool(ToolLocation,
		mcp.WithDescription("Check whether a remote posting's state restrictions include the candidate's home state"),
	)
	loc.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"location":           map[string]interface{}{"type": "string", "description": "Posting location, e.g. Remote US (CT, NY)"},
			"work_location_type": map[string]interface{}{"type": "string", "description": "remote, hybrid or on_site"},
		},
		Required: []string{"location"},
	}
	s.AddTool(loc, t.validateLocation)

	analyze := mcp.NewTool(ToolAnalyze,
		mcp.WithDescription("Score a posting's fit for the candidate, optionally with AI analysis and coaching"),
	)
	analyze.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"job_id":             map[string]interface{}{"type": "string", "description": "Stable posting identifier, used as the cache key"},
			"title":              map[string]interface{}{"type": "string", "description": "Job title"},
			"company":            map[string]interface{}{"type": "string", "description": "Company name"},
			"description":        map[string]interface{}{"type": "string", "description": "Full posting text"},
			"location":           map[string]interface{}{"type": "string", "description": "Posting location"},
			"work_location_type": map[string]interface{}{"type": "string", "description": "remote, hybrid or on_site"},
			"employment_type":    map[string]interface{}{"type": "string", "description": "e.g. full_time"},
			"use_ai":             map[string]interface{}{"type": "boolean", "description": "Use the AI-assisted path when configured"},
			"coaching":           map[string]interface{}{"type": "boolean", "description": "Add career-document evidence and interview coaching"},
		},
		Required: []string{"title"},
	}
	s.AddTool(analyze, t.analyze)
}

func (t *Tools) detect(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args textArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(jd.DetectAndParse(args.Text))
}

func (t *Tools) extract(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args textArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(jd.Extract(args.Text))
}

func (t *Tools) validateLocation(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args locationArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(t.service.Rules().ValidateLocation(types.Posting{
		Location:         args.Location,
		WorkLocationType: types.ParseWorkLocationType(args.WorkLocationType),
	}))
}

func (t *Tools) analyze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args analyzeArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(args.Title) == "" && strings.TrimSpace(args.Description) == "" {
		return mcp.NewToolResultError("title or description is required"), nil
	}

	posting := types.Posting{
		ID:               args.JobID,
		Title:            args.Title,
		Company:          args.Company,
		Description:      args.Description,
		Location:         args.Location,
		WorkLocationType: types.ParseWorkLocationType(args.WorkLocationType),
		EmploymentType:   args.EmploymentType,
	}
	out := t.service.Analyze(ctx, posting, analysis.Options{UseAI: args.UseAI, Coaching: args.Coaching})
	t.logger.Info("mcp_analyze_complete",
		zap.String(logger.FieldJobID, posting.ID),
		zap.String("source", string(out.Analysis.Source())),
		zap.Int("priority", out.Result.SuggestedPriority),
	)

	notes := out.Notes
	if notes == nil {
		notes = []types.JobNote{}
	}
	return jsonResult(analyzeResponse{Document: out.Document(), Notes: notes, CacheHit: out.CacheHit, FellBack: out.FellBack})
}

// decodeArgs maps the request arguments onto a tagged struct, rejecting unknown keys
func decodeArgs(request mcp.CallToolRequest, out any) error {
	raw := request.Params.Arguments
	if raw == nil {
		raw = map[string]interface{}{}
	}
	args, ok := raw.(map[string]interface{})
	if !ok {
		return fmt.Errorf("invalid arguments format")
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
