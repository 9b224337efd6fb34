package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/hexwren/resurface/internal/ai"
	"github.com/hexwren/resurface/internal/config"
	"github.com/hexwren/resurface/internal/journal"
	"github.com/hexwren/resurface/internal/notify"
	"github.com/hexwren/resurface/internal/recall"
	"github.com/hexwren/resurface/internal/vault"
)

var (
	flagNote  string
	flagForce bool
)

var errGenerateFailed = errors.New("recall generation failed")

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate today's recall note now",
	Long: `Pick a random markdown note from the configured folder, summarize it,
and overwrite the recall note. Runs regardless of the daily gate; the
recall file is simply overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if !flagForce && !cfg.IsNewDay(time.Now()) {
			fmt.Printf("Already generated today (%s). Use --force to regenerate.\n", cfg.LastRunDate)
			return nil
		}

		gen, closeJournal := newGenerator(cfg)
		defer closeJournal()

		ctx := context.Background()
		if flagNote != "" {
			_, err = gen.RunNote(ctx, cfg, flagNote)
		} else {
			_, err = gen.Run(ctx, cfg)
		}
		if err != nil {
			// The notifier already printed the specific notice.
			return errGenerateFailed
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&flagNote, "note", "", "vault-relative note path to summarize instead of a random one")
	generateCmd.Flags().BoolVar(&flagForce, "force", false, "regenerate even if a recall was already written today")
}

// newGenerator wires the workflow from a loaded config. The returned
// cleanup closes the journal handle and is always safe to call.
func newGenerator(cfg *config.Config) (*recall.Generator, func()) {
	gen := &recall.Generator{
		Store:    vault.NewDirStore(cfg.VaultDir(), cfg.Ignore),
		Notifier: notify.NewTerminal(),
		Save: func(c *config.Config) error {
			return config.Save(c, flagConfig)
		},
	}

	if cfg.AIEnabled() {
		s, err := ai.New(cfg.AI, cfg.AIKey())
		if err != nil {
			log.Printf("[warn] AI setup: %v", err)
		} else {
			gen.Summarizer = s
		}
	}

	closeJournal := func() {}
	db, err := journal.Open(config.JournalPath())
	if err != nil {
		log.Printf("[warn] opening journal: %v", err)
	} else {
		gen.Journal = db
		closeJournal = func() { db.Close() }
	}

	return gen, closeJournal
}
