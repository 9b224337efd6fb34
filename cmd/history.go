package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hexwren/resurface/internal/config"
	"github.com/hexwren/resurface/internal/journal"
)

var (
	flagHistoryLimit   int
	flagPruneOlderThan string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent recall runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := journal.Open(config.JournalPath())
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer db.Close()

		entries, err := db.Recent(flagHistoryLimit)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		for _, e := range entries {
			mark := "✓"
			detail := e.NoteName
			if e.Status == journal.StatusError {
				mark = "✗"
				detail = e.Error
			}
			fmt.Printf("%s %s  %-30s %s\n", mark, e.RunDate, truncateDetail(detail, 30), e.CreatedAt.Local().Format("15:04"))
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journal statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.JournalPath()
		db, err := journal.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer db.Close()

		count, size, err := db.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		streak, err := db.Streak(time.Now().Format("2006-01-02"))
		if err != nil {
			return fmt.Errorf("reading streak: %w", err)
		}

		fmt.Printf("Journal: %s\n", dbPath)
		fmt.Printf("Runs: %d\n", count)
		fmt.Printf("Streak: %d day(s)\n", streak)
		fmt.Printf("Size: %s\n", formatBytes(size))
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old runs from the journal",
	Long:  "Delete journal entries older than the retention period (default: 90d).",
	RunE: func(cmd *cobra.Command, args []string) error {
		retention := 90 * 24 * time.Hour
		if flagPruneOlderThan != "" {
			d, err := parseSince(flagPruneOlderThan)
			if err != nil {
				return fmt.Errorf("invalid --older-than value: %w", err)
			}
			retention = d
		}

		db, err := journal.Open(config.JournalPath())
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer db.Close()

		deleted, err := db.Prune(time.Now().Add(-retention))
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		if deleted == 0 {
			fmt.Println("Nothing to prune.")
		} else {
			fmt.Printf("Pruned %d run(s) older than %s.\n", deleted, formatDuration(retention))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "number of runs to show")
	pruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "", "override retention period (e.g., 30d, 720h)")
}

func parseSince(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func truncateDetail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
