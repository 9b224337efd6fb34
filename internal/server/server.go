// Package server exposes the recall workflow over MCP stdio, so LLM
// clients can trigger or read the daily recall the way the command
// line does.
package server

import (
	"context"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/hexwren/resurface/internal/config"
	"github.com/hexwren/resurface/internal/recall"
)

// GenerateFunc runs the generation workflow for a loaded config. An
// empty notePath means random selection.
type GenerateFunc func(ctx context.Context, cfg *config.Config, notePath string) (*recall.Result, error)

// New builds the MCP server with the recall tools registered.
func New(configPath, version string, gen GenerateFunc) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(
		"resurface",
		version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
	)

	genTool := &GenerateRecallTool{ConfigPath: configPath, Generate: gen}
	s.AddTool(genTool.Definition(), genTool.Handle)

	readTool := &ReadRecallTool{ConfigPath: configPath}
	s.AddTool(readTool.Definition(), readTool.Handle)

	return s
}

// ServeStdio blocks serving MCP requests on stdin/stdout.
func ServeStdio(s *mcpserver.MCPServer) error {
	return mcpserver.ServeStdio(s)
}
