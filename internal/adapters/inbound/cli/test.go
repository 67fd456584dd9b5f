package cli

import (
	"fmt"

	"github.com/qualitygate/qualitygate/internal/adapters/outbound/report"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/runner"
	"github.com/spf13/cobra"
)

func newTestCmd() *cobra.Command {
	var (
		pf     projectFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run the configured tests and collect coverage",
		Long: "Discover test files, run the setup and test commands from the quality config, " +
			"and write a test report scoped to the changed files for the score command.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := pf.absPath()
			if err != nil {
				return err
			}

			svc := newServices(root, pf.timeout)
			tests, err := svc.RunTests(cmd.Context(), pf.config(root), pf.changes(root))
			if err != nil {
				return fmt.Errorf("running tests: %w", err)
			}
			if err := report.NewJSONWriter().Write(output, tests); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Test results written to %s\n", output)
			fmt.Fprintf(out, "Tests: %d/%d passed\n", tests.Results.TestsPassed, tests.Results.TestsRun)
			fmt.Fprintf(out, "Coverage: %.1f%%\n", tests.Coverage.Percentage)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&pf.path, "path", ".", "Project root")
	f.StringVar(&pf.configPath, "config", "", "Quality config YAML (default <path>/.quality.yaml)")
	f.StringVar(&pf.changedFiles, "changed-files", "", "File listing the changed paths, one per line")
	f.StringVar(&pf.baseRef, "base", "", "Diff HEAD against this git revision instead of reading --changed-files")
	f.DurationVar(&pf.timeout, "timeout", runner.DefaultTimeout, "Per-command timeout")
	f.StringVar(&output, "output", "", "Write the test report JSON here")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
