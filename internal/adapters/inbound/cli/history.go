package cli

import (
	"fmt"
	"path/filepath"

	"github.com/qualitygate/qualitygate/internal/adapters/outbound/history"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/tui"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		projectPath string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded gate results",
		Long:  "Show the gate results recorded with score --record, oldest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			entries, err := history.New().Load(abs)
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project root")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print history as JSON")

	return cmd
}
