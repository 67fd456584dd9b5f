package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/qualitygate/qualitygate/internal/adapters/outbound/config"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/history"
	"github.com/qualitygate/qualitygate/internal/domain"
)

// registerResources registers all qualitygate MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. qualitygate://history - recorded gate results
	s.AddResource(
		mcplib.NewResource(
			"qualitygate://history",
			"Score History",
			mcplib.WithResourceDescription("Gate results recorded with score --record, oldest first"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(projectPath),
	)

	// 2. qualitygate://config - effective quality config
	s.AddResource(
		mcplib.NewResource(
			"qualitygate://config",
			"Quality Config",
			mcplib.WithResourceDescription("The quality config in effect, with the resolved threshold"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath),
	)
}

func handleHistoryResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := history.New().Load(projectPath)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []domain.ScoreEntry{}
		}
		return jsonResource("qualitygate://history", entries)
	}
}

// effectiveConfig is the config resource document.
type effectiveConfig struct {
	Threshold int                  `json:"effective_threshold"`
	Config    domain.QualityConfig `json:"config"`
}

func handleConfigResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg := config.New().Load(filepath.Join(projectPath, config.DefaultFileName))
		return jsonResource("qualitygate://config", effectiveConfig{
			Threshold: cfg.EffectiveThreshold(nil),
			Config:    cfg,
		})
	}
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
