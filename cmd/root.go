package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/hexwren/resurface/internal/config"
	"github.com/hexwren/resurface/internal/journal"
	"github.com/hexwren/resurface/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "resurface",
	Short: "Daily random-note recall for your markdown vault",
	Long: `resurface picks one random markdown note from a configured folder each
day, summarizes it with an AI model, and writes the result to a fixed
recall note in your vault.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(mcpCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("resurface %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func runTUI(cmd *cobra.Command, args []string) error {
	return launchTUI(false)
}

func launchTUI(settings bool) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The journal is diagnostic history; the TUI works without it.
	db, err := journal.Open(config.JournalPath())
	if err != nil {
		log.Printf("[warn] opening journal: %v", err)
		db = nil
	} else {
		defer db.Close()
	}

	return tui.Run(tui.RunOpts{
		Cfg:        cfg,
		ConfigPath: flagConfig,
		Journal:    db,
		Version:    version,
		Settings:   settings,
	})
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
