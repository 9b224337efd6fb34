package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hexwren/resurface/internal/config"
	"github.com/hexwren/resurface/internal/scheduler"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the hourly recall daemon",
	Long: `Check once at startup and then every hour whether today's recall has
been generated, and generate it when the stored last-run date is stale.
Config edits are picked up on the next tick without a restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Fail fast on a broken config before going resident.
		if _, err := config.Load(flagConfig); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		sched := scheduler.New(flagConfig, func(ctx context.Context, cfg *config.Config) error {
			gen, closeJournal := newGenerator(cfg)
			defer closeJournal()
			_, err := gen.Run(ctx, cfg)
			return err
		})
		if err := sched.Start(); err != nil {
			return fmt.Errorf("starting scheduler: %w", err)
		}
		log.Printf("resurface watch: checking hourly for a stale recall")

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		sched.Stop()
		log.Printf("resurface watch: stopped")
		return nil
	},
}
