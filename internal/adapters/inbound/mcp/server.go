package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewRenderGuardMCPServer creates a new MCP server with all RenderGuard
// tools registered. The projectPath is the root directory of the target
// project components are generated into.
func NewRenderGuardMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"renderguard",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, projectPath)

	return s
}
