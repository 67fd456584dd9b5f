package cli

import (
	"encoding/json"
	"fmt"

	"github.com/qualitygate/qualitygate/internal/adapters/outbound/runner"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/tui"
	"github.com/qualitygate/qualitygate/internal/application"
	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var (
		pf          projectFlags
		lintFiles   = map[domain.Tool]*string{}
		jscpd       string
		testResults string
		runTests    bool
		threshold   int
		output      string
		jsonOutput  bool
		ciMode      bool
		record      bool
		badge       bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a change from its tool artifacts",
		Long: "Parse linter, jscpd, coverage and test artifacts, scope them to the changed files " +
			"and compute the 0-100 quality score. Missing or malformed artifacts count as zero findings.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := pf.absPath()
			if err != nil {
				return err
			}

			req := application.ScoreRequest{
				ProjectPath: root,
				ConfigPath:  pf.config(root),
				Changes:     pf.changes(root),
				LintReports: map[domain.Tool]string{},
				JSCPDReport: jscpd,
				TestResults: testResults,
				RunTests:    runTests,
				OutputPath:  output,
				Record:      record,
			}
			for tool, path := range lintFiles {
				req.LintReports[tool] = *path
			}
			if cmd.Flags().Changed("threshold") {
				req.Threshold = &threshold
			}

			svc := newServices(root, pf.timeout)
			report, err := svc.ScoreChange(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("scoring failed: %w", err)
			}

			switch {
			case jsonOutput:
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			case badge:
				renderBadge(cmd, report)
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderScore(report))
			}

			if ciMode && !report.Passed {
				return fmt.Errorf("score %d is below threshold %d", report.FinalScore, report.Threshold)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&pf.path, "path", ".", "Project root")
	f.StringVar(&pf.configPath, "config", "", "Quality config YAML (default <path>/.quality.yaml)")
	f.StringVar(&pf.changedFiles, "changed-files", "", "File listing the changed paths, one per line")
	f.StringVar(&pf.baseRef, "base", "", "Diff HEAD against this git revision instead of reading --changed-files")
	f.DurationVar(&pf.timeout, "timeout", runner.DefaultTimeout, "Per-command timeout with --run-tests")
	for _, tool := range domain.Tools {
		lintFiles[tool] = f.String(string(tool), "", fmt.Sprintf("%s JSON report", tool))
	}
	f.StringVar(&jscpd, "jscpd", "", "jscpd JSON report")
	f.StringVar(&testResults, "test-results", "", "Test report written by the test command")
	f.BoolVar(&runTests, "run-tests", false, "Run the configured tests instead of reading --test-results")
	f.IntVar(&threshold, "threshold", domain.DefaultThreshold, "Pass mark (overrides the config)")
	f.StringVar(&output, "output", "", "Write the score report JSON here")
	f.BoolVar(&jsonOutput, "json", false, "Print the score report as JSON")
	f.BoolVar(&ciMode, "ci", false, "Exit non-zero when the gate fails")
	f.BoolVar(&record, "record", false, "Append the result to the local score history")
	f.BoolVar(&badge, "badge", false, "Print a shields.io badge URL")
	cmd.MarkFlagsMutuallyExclusive("test-results", "run-tests")
	cmd.MarkFlagsMutuallyExclusive("json", "badge")

	return cmd
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderBadge(cmd *cobra.Command, report domain.ScoreReport) {
	url := fmt.Sprintf("https://img.shields.io/badge/quality-%d%%2F100-%s", report.FinalScore, badgeColor(report))
	fmt.Fprintln(cmd.OutOrStdout(), url)
}

func badgeColor(report domain.ScoreReport) string {
	switch {
	case !report.Passed:
		return "red"
	case report.FinalScore >= 90:
		return "brightgreen"
	default:
		return "green"
	}
}
