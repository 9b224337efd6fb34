// Package journal records recall generation runs in a local SQLite
// database. The journal is diagnostic history: the once-a-day gate
// lives in the config file, not here.
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const dateFormat = "2006-01-02"

// DB wraps separate read and write handles to the same SQLite file.
// The write handle is capped at one connection to avoid SQLITE_BUSY.
type DB struct {
	write *sql.DB
	read  *sql.DB
}

// Open opens (creating if needed) the journal database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal dir: %w", err)
	}

	w, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	w.SetMaxOpenConns(1)

	r, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("opening journal read handle: %w", err)
	}

	db := &DB{write: w, read: r}
	if err := db.init(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		run_date    TEXT NOT NULL,
		note_path   TEXT NOT NULL,
		note_name   TEXT NOT NULL,
		provider    TEXT NOT NULL DEFAULT '',
		model       TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL,
		error       TEXT NOT NULL DEFAULT '',
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at  DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_date ON runs(run_date, status);
	`
	if _, err := d.write.Exec(schema); err != nil {
		return fmt.Errorf("initializing journal schema: %w", err)
	}
	return nil
}

// Close closes both database handles.
func (d *DB) Close() error {
	var errs []error
	if err := d.read.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := d.write.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Record inserts one run entry. A missing ID or CreatedAt is filled in.
func (d *DB) Record(e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := d.write.Exec(`
		INSERT INTO runs (id, run_date, note_path, note_name, provider, model, status, error, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.RunDate, e.NotePath, e.NoteName, e.Provider, e.Model, e.Status, e.Error, e.DurationMS, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first. A limit of zero
// or less means 20.
func (d *DB) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.read.Query(`
		SELECT id, run_date, note_path, note_name, provider, model, status, error, duration_ms, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// LastSuccess returns the most recent successful run, or nil if none.
func (d *DB) LastSuccess() (*Entry, error) {
	row := d.read.QueryRow(`
		SELECT id, run_date, note_path, note_name, provider, model, status, error, duration_ms, created_at
		FROM runs
		WHERE status = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, StatusOK)

	var e Entry
	err := row.Scan(&e.ID, &e.RunDate, &e.NotePath, &e.NoteName, &e.Provider, &e.Model, &e.Status, &e.Error, &e.DurationMS, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying last success: %w", err)
	}
	return &e, nil
}

// Streak counts consecutive days with a successful run, ending at
// today. A day with no run yet does not break the streak, so a streak
// of 3 survives the morning before today's run has happened.
func (d *DB) Streak(today string) (int, error) {
	cur, err := time.Parse(dateFormat, today)
	if err != nil {
		return 0, fmt.Errorf("parsing streak date %q: %w", today, err)
	}

	rows, err := d.read.Query(`SELECT DISTINCT run_date FROM runs WHERE status = ?`, StatusOK)
	if err != nil {
		return 0, fmt.Errorf("querying streak days: %w", err)
	}
	defer rows.Close()

	days := make(map[string]bool)
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return 0, fmt.Errorf("scanning streak day: %w", err)
		}
		days[day] = true
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	if !days[today] {
		cur = cur.AddDate(0, 0, -1)
	}
	streak := 0
	for days[cur.Format(dateFormat)] {
		streak++
		cur = cur.AddDate(0, 0, -1)
	}
	return streak, nil
}

// Prune deletes entries created before cutoff and reports how many.
func (d *DB) Prune(cutoff time.Time) (int64, error) {
	res, err := d.write.Exec(`DELETE FROM runs WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning journal: %w", err)
	}
	return res.RowsAffected()
}

// Stats reports the number of entries and the database file size.
func (d *DB) Stats(dbPath string) (count int64, size int64, err error) {
	row := d.read.QueryRow(`SELECT COUNT(*) FROM runs`)
	if err := row.Scan(&count); err != nil {
		return 0, 0, fmt.Errorf("counting runs: %w", err)
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, fmt.Errorf("statting journal: %w", err)
	}
	return count, info.Size(), nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.RunDate, &e.NotePath, &e.NoteName, &e.Provider, &e.Model, &e.Status, &e.Error, &e.DurationMS, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
