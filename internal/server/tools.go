package server

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hexwren/resurface/internal/config"
)

// GenerateRecallTool handles the generate_recall MCP tool.
type GenerateRecallTool struct {
	ConfigPath string
	Generate   GenerateFunc
}

func (t *GenerateRecallTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_recall",
		mcp.WithDescription(
			"Generate today's recall note: pick a random markdown note from "+
				"the configured folder, summarize it, and overwrite the recall "+
				"file. Pass 'note' to summarize a specific note instead of a "+
				"random one.",
		),
		mcp.WithString("note",
			mcp.Description("Vault-relative path of a note to summarize, e.g. 'Ideas/Foo.md'. Omit for random selection."),
		),
	)
}

func (t *GenerateRecallTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := config.Load(t.ConfigPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading config: %v", err)), nil
	}

	notePath := req.GetString("note", "")
	res, err := t.Generate(ctx, cfg, notePath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Recall written to %s from note %q.\n\n%s",
		cfg.RecallName(), res.NoteName, res.Summary,
	)), nil
}

// ReadRecallTool handles the read_recall MCP tool.
type ReadRecallTool struct {
	ConfigPath string
}

func (t *ReadRecallTool) Definition() mcp.Tool {
	return mcp.NewTool("read_recall",
		mcp.WithDescription("Return the content of the current daily recall note."),
	)
}

func (t *ReadRecallTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := config.Load(t.ConfigPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading config: %v", err)), nil
	}

	data, err := os.ReadFile(cfg.RecallPath())
	if err != nil {
		if os.IsNotExist(err) {
			return mcp.NewToolResultError("no recall note has been generated yet"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("reading recall note: %v", err)), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}
