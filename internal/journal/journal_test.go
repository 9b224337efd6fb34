package journal

import (
	"path/filepath"
	"testing"
	"time"
)

func testDB(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, path
}

func sampleEntries() []Entry {
	now := time.Now().UTC()
	return []Entry{
		{ID: "aaa", RunDate: "2026-08-22", NotePath: "Notes/alpha.md", NoteName: "alpha", Provider: "claude", Model: "m", Status: StatusOK, DurationMS: 900, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "bbb", RunDate: "2026-08-23", NotePath: "Notes/beta.md", NoteName: "beta", Provider: "claude", Model: "m", Status: StatusError, Error: "summary failed", CreatedAt: now.Add(-24 * time.Hour)},
		{ID: "ccc", RunDate: "2026-08-23", NotePath: "Notes/gamma.md", NoteName: "gamma", Provider: "claude", Model: "m", Status: StatusOK, DurationMS: 1200, CreatedAt: now.Add(-23 * time.Hour)},
	}
}

func TestRecordAndRecent(t *testing.T) {
	db, _ := testDB(t)
	for _, e := range sampleEntries() {
		e := e
		if err := db.Record(&e); err != nil {
			t.Fatalf("recording %s: %v", e.ID, err)
		}
	}

	got, err := db.Recent(0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	if got[0].ID != "ccc" || got[2].ID != "aaa" {
		t.Errorf("wrong order: %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
	if got[0].NoteName != "gamma" || got[0].Status != StatusOK || got[0].DurationMS != 1200 {
		t.Errorf("fields not round-tripped: %+v", got[0])
	}
}

func TestRecentLimit(t *testing.T) {
	db, _ := testDB(t)
	for _, e := range sampleEntries() {
		e := e
		if err := db.Record(&e); err != nil {
			t.Fatalf("recording: %v", err)
		}
	}
	got, err := db.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d entries, want 2", len(got))
	}
}

func TestRecentEmpty(t *testing.T) {
	db, _ := testDB(t)
	got, err := db.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d entries from empty journal", len(got))
	}
}

func TestRecordFillsDefaults(t *testing.T) {
	db, _ := testDB(t)
	e := Entry{RunDate: "2026-08-24", NotePath: "n.md", NoteName: "n", Status: StatusOK}
	if err := db.Record(&e); err != nil {
		t.Fatalf("recording: %v", err)
	}
	if e.ID == "" {
		t.Error("ID not generated")
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	got, err := db.Recent(1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 || got[0].ID != e.ID {
		t.Errorf("stored entry mismatch: %+v", got)
	}
}

func TestLastSuccess(t *testing.T) {
	db, _ := testDB(t)

	got, err := db.LastSuccess()
	if err != nil {
		t.Fatalf("last success on empty journal: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil on empty journal, got %+v", got)
	}

	for _, e := range sampleEntries() {
		e := e
		if err := db.Record(&e); err != nil {
			t.Fatalf("recording: %v", err)
		}
	}
	got, err = db.LastSuccess()
	if err != nil {
		t.Fatalf("last success: %v", err)
	}
	if got == nil || got.ID != "ccc" {
		t.Errorf("got %+v, want entry ccc", got)
	}
}

func TestLastSuccessSkipsErrors(t *testing.T) {
	db, _ := testDB(t)
	now := time.Now().UTC()
	entries := []Entry{
		{ID: "ok1", RunDate: "2026-08-22", NotePath: "a.md", NoteName: "a", Status: StatusOK, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "err1", RunDate: "2026-08-23", NotePath: "b.md", NoteName: "b", Status: StatusError, Error: "boom", CreatedAt: now},
	}
	for _, e := range entries {
		e := e
		if err := db.Record(&e); err != nil {
			t.Fatalf("recording: %v", err)
		}
	}
	got, err := db.LastSuccess()
	if err != nil {
		t.Fatalf("last success: %v", err)
	}
	if got == nil || got.ID != "ok1" {
		t.Errorf("got %+v, want entry ok1", got)
	}
}

func TestStreak(t *testing.T) {
	record := func(t *testing.T, db *DB, day, status string) {
		t.Helper()
		if err := db.Record(&Entry{RunDate: day, NotePath: "n.md", NoteName: "n", Status: status}); err != nil {
			t.Fatalf("recording %s: %v", day, err)
		}
	}

	tests := []struct {
		name  string
		days  map[string]string
		today string
		want  int
	}{
		{
			name:  "empty journal",
			days:  nil,
			today: "2026-08-24",
			want:  0,
		},
		{
			name:  "run today only",
			days:  map[string]string{"2026-08-24": StatusOK},
			today: "2026-08-24",
			want:  1,
		},
		{
			name: "three consecutive days",
			days: map[string]string{
				"2026-08-22": StatusOK,
				"2026-08-23": StatusOK,
				"2026-08-24": StatusOK,
			},
			today: "2026-08-24",
			want:  3,
		},
		{
			name: "today not yet run keeps streak",
			days: map[string]string{
				"2026-08-22": StatusOK,
				"2026-08-23": StatusOK,
			},
			today: "2026-08-24",
			want:  2,
		},
		{
			name: "gap breaks streak",
			days: map[string]string{
				"2026-08-20": StatusOK,
				"2026-08-21": StatusOK,
				"2026-08-24": StatusOK,
			},
			today: "2026-08-24",
			want:  1,
		},
		{
			name: "failed day does not count",
			days: map[string]string{
				"2026-08-22": StatusOK,
				"2026-08-23": StatusError,
				"2026-08-24": StatusOK,
			},
			today: "2026-08-24",
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _ := testDB(t)
			for day, status := range tt.days {
				record(t, db, day, status)
			}
			got, err := db.Streak(tt.today)
			if err != nil {
				t.Fatalf("streak: %v", err)
			}
			if got != tt.want {
				t.Errorf("streak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakBadDate(t *testing.T) {
	db, _ := testDB(t)
	if _, err := db.Streak("not-a-date"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestPrune(t *testing.T) {
	db, _ := testDB(t)
	for _, e := range sampleEntries() {
		e := e
		if err := db.Record(&e); err != nil {
			t.Fatalf("recording: %v", err)
		}
	}

	n, err := db.Prune(time.Now().UTC().Add(-30 * time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 1 {
		t.Errorf("pruned %d entries, want 1", n)
	}

	got, err := db.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("%d entries remain, want 2", len(got))
	}
	for _, e := range got {
		if e.ID == "aaa" {
			t.Error("oldest entry survived prune")
		}
	}
}

func TestStats(t *testing.T) {
	db, path := testDB(t)
	for _, e := range sampleEntries() {
		e := e
		if err := db.Record(&e); err != nil {
			t.Fatalf("recording: %v", err)
		}
	}

	count, size, err := db.Stats(path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if size <= 0 {
		t.Errorf("size = %d, want > 0", size)
	}
}
