// Package mcp serves the quality gate to coding agents over the Model
// Context Protocol.
package mcp

import "github.com/mark3labs/mcp-go/server"

const serverVersion = "0.1.0"

// NewQualityGateMCPServer registers the gate's tools and resources for the
// checkout at projectPath. Relative artifact paths resolve against it.
func NewQualityGateMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer("qualitygate", serverVersion,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)
	registerTools(s, projectPath)
	registerResources(s, projectPath)
	return s
}
