package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hexwren/resurface/internal/config"
	"github.com/hexwren/resurface/internal/notify"
	"github.com/hexwren/resurface/internal/recall"
	"github.com/hexwren/resurface/internal/server"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the recall tools over MCP stdio",
	Long: `Expose generate_recall and read_recall as MCP tools on stdin/stdout,
so LLM clients can trigger or read the daily recall.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := server.New(flagConfig, version, mcpGenerate)
		if err := server.ServeStdio(s); err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
		return nil
	},
}

// mcpGenerate runs the workflow for an MCP tool call. Notices go
// nowhere; the tool result carries the outcome.
func mcpGenerate(ctx context.Context, cfg *config.Config, notePath string) (*recall.Result, error) {
	gen, closeJournal := newGenerator(cfg)
	defer closeJournal()
	gen.Notifier = notify.Discard{}

	if notePath != "" {
		return gen.RunNote(ctx, cfg, notePath)
	}
	return gen.Run(ctx, cfg)
}
