package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/qualitygate/qualitygate/internal/adapters/outbound/markdown"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/report"
	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/spf13/cobra"
)

func newCommentCmd() *cobra.Command {
	var scoreFile, output string

	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Render a score report as a pull request comment",
		Long:  "Read a score report written by the score command and render it as Markdown for a pull request comment. Use --output - to print it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r domain.ScoreReport
			if err := report.ReadJSON(scoreFile, &r); err != nil {
				return fmt.Errorf("loading score report: %w", err)
			}

			if output == "-" {
				return markdown.RenderComment(cmd.OutOrStdout(), r, time.Now())
			}

			if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
				return fmt.Errorf("creating comment directory: %w", err)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating comment file: %w", err)
			}
			defer f.Close()

			if err := markdown.RenderComment(f, r, time.Now()); err != nil {
				return fmt.Errorf("writing comment: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Comment generated: %s\n", output)
			return f.Close()
		},
	}

	cmd.Flags().StringVar(&scoreFile, "score-file", "", "Score report JSON")
	cmd.Flags().StringVar(&output, "output", "", "Markdown output file, or - for stdout")
	_ = cmd.MarkFlagRequired("score-file")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
