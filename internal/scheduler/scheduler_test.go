package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hexwren/resurface/internal/config"
)

func writeConfig(t *testing.T, lastRun string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "vault: /vault\nnotes_folder: Ideas\nlast_run_date: \"" + lastRun + "\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestTickRunsWhenStale(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	runs := 0
	s := New(writeConfig(t, "2026-03-13"), func(ctx context.Context, cfg *config.Config) error {
		runs++
		if cfg.NotesFolder != "Ideas" {
			t.Errorf("runner got stale config: %+v", cfg)
		}
		return nil
	})
	s.now = func() time.Time { return now }

	s.tick()
	if runs != 1 {
		t.Fatalf("expected 1 run for a stale date, got %d", runs)
	}
}

func TestTickSkipsSameDay(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	runs := 0
	s := New(writeConfig(t, "2026-03-14"), func(context.Context, *config.Config) error {
		runs++
		return nil
	})
	s.now = func() time.Time { return now }

	s.tick()
	if runs != 0 {
		t.Fatalf("expected no run on the same day, got %d", runs)
	}
}

// A failed run never advances the stored date, so the next tick sees a
// stale date and retries on its own.
func TestTickRetriesAfterFailure(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	path := writeConfig(t, "2026-03-13")

	runs := 0
	s := New(path, func(context.Context, *config.Config) error {
		runs++
		return context.DeadlineExceeded
	})
	s.now = func() time.Time { return now }

	s.tick()
	s.tick()
	if runs != 2 {
		t.Fatalf("expected retry on the next tick, got %d runs", runs)
	}
}

func TestTickReloadsConfig(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	path := writeConfig(t, "2026-03-13")

	var seen []string
	s := New(path, func(_ context.Context, cfg *config.Config) error {
		seen = append(seen, cfg.NotesFolder)
		// Simulate a successful run persisting the date, like the
		// real workflow does.
		cfg.MarkRun(now)
		return config.Save(cfg, path)
	})
	s.now = func() time.Time { return now }

	s.tick()
	s.tick() // date now current, no second run
	if len(seen) != 1 {
		t.Fatalf("expected exactly 1 run after the date advanced, got %d", len(seen))
	}
}
