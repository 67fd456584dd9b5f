package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/qualitygate/qualitygate/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Expose the gate to coding agents over MCP",
	}
	cmd.AddCommand(newMCPServeCmd(), newMCPToolsCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the qualitygate tools on stdio",
		Long:  "Serve qualitygate over the Model Context Protocol on stdin/stdout so an agent can score the files it touched before proposing a change. Logs go to stderr.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			slog.Debug("serving mcp", "project", root)
			errLog := slog.NewLogLogger(slog.Default().Handler(), slog.LevelError)
			return server.ServeStdio(mcpadapter.NewQualityGateMCPServer(root), server.WithErrorLogger(errLog))
		},
	}
	cmd.Flags().StringVar(&projectPath, "path", ".", "Project root that artifact paths are relative to")
	return cmd
}

func newMCPToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools the MCP server registers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tools := mcpadapter.NewQualityGateMCPServer(".").ListTools()
			names := make([]string, 0, len(tools))
			for name := range tools {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", name, tools[name].Tool.Description)
			}
			return nil
		},
	}
}
