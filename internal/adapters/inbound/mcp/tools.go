package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/qualitygate/qualitygate/internal/adapters/outbound/changes"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/config"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/coverage"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/discovery"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/duplication"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/gitinfo"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/history"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/lint"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/report"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/runner"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/testoutput"
	"github.com/qualitygate/qualitygate/internal/application"
	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/qualitygate/qualitygate/internal/domain/changeset"
)

// registerTools registers all qualitygate MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. qualitygate_score
	scoreOpts := []mcplib.ToolOption{
		mcplib.WithDescription("Scores the change from its tool artifacts and returns the full score report as JSON"),
		mcplib.WithString("changed", mcplib.Description("Comma-separated changed file paths relative to project root")),
		mcplib.WithString("base", mcplib.Description("Git revision to diff HEAD against when changed is not given")),
		mcplib.WithString("jscpd", mcplib.Description("Path to the jscpd JSON report")),
		mcplib.WithString("test_results", mcplib.Description("Path to a test report written by qualitygate test")),
		mcplib.WithBoolean("run_tests", mcplib.Description("Run the configured tests instead of reading test_results")),
		mcplib.WithNumber("threshold", mcplib.Description("Pass mark; defaults to the config value, then 70")),
	}
	for _, tool := range domain.Tools {
		scoreOpts = append(scoreOpts, mcplib.WithString(string(tool),
			mcplib.Description(fmt.Sprintf("Path to the %s JSON report", tool))))
	}
	s.AddTool(mcplib.NewTool("qualitygate_score", scoreOpts...), handleScore(projectPath))

	// 2. qualitygate_coverage
	s.AddTool(
		mcplib.NewTool("qualitygate_coverage",
			mcplib.WithDescription("Returns line coverage of the changed files from a Cobertura, LCOV or Istanbul report"),
			mcplib.WithString("coverage_file",
				mcplib.Required(),
				mcplib.Description("Coverage report path (coverage.xml, lcov.info or coverage-final.json)"),
			),
			mcplib.WithString("changed",
				mcplib.Required(),
				mcplib.Description("Comma-separated changed file paths relative to project root"),
			),
		),
		handleCoverage(projectPath),
	)
}

// newScoreService creates the standard set of outbound adapters and services.
func newScoreService(projectPath string) *application.ScoreService {
	reports := report.NewJSONWriter()
	tests := application.NewTestService(
		projectPath,
		discovery.New(),
		runner.New(projectPath),
		testoutput.NewParser(),
		coverage.NewRegistry(),
	)
	return application.NewScoreService(
		config.New(),
		lint.Parsers,
		duplication.NewJSCPD(),
		reports,
		reports,
		gitinfo.New(),
		history.New(),
		tests,
	)
}

func handleScore(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()

		req := application.ScoreRequest{
			ProjectPath: projectPath,
			ConfigPath:  filepath.Join(projectPath, config.DefaultFileName),
			LintReports: map[domain.Tool]string{},
			JSCPDReport: resolve(projectPath, stringArg(args, "jscpd")),
			TestResults: resolve(projectPath, stringArg(args, "test_results")),
		}
		for _, tool := range domain.Tools {
			req.LintReports[tool] = resolve(projectPath, stringArg(args, string(tool)))
		}
		req.RunTests, _ = args["run_tests"].(bool)
		if t, ok := args["threshold"].(float64); ok {
			threshold := int(t)
			req.Threshold = &threshold
		}

		if changed := stringArg(args, "changed"); changed != "" {
			req.Changes = changes.ParseList(changed)
		} else if base := stringArg(args, "base"); base != "" {
			req.Changes = changes.NewGitDiff(gitinfo.New(), projectPath, base)
		} else {
			return errorResult("either changed or base is required"), nil
		}

		rep, err := newScoreService(projectPath).ScoreChange(ctx, req)
		if err != nil {
			return errorResult(fmt.Sprintf("scoring failed: %v", err)), nil
		}
		return jsonResult(rep)
	}
}

func handleCoverage(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("coverage_file")
		if err != nil {
			return errorResult("coverage_file parameter is required"), nil
		}
		changedStr, err := request.RequireString("changed")
		if err != nil {
			return errorResult("changed parameter is required"), nil
		}

		path := resolve(projectPath, file)
		if domain.DetectCoverageFormat(path) == domain.CoverageUnknown {
			return errorResult(fmt.Sprintf("unrecognized coverage format: %s", file)), nil
		}

		changed := changes.ParseList(changedStr)
		rep := coverage.NewRegistry().Parse(path, changeset.New(changed))
		return jsonResult(rep)
	}
}

func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

// resolve anchors a relative artifact path at the project root.
func resolve(projectPath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectPath, p)
}

// jsonResult marshals v to indented JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
