// Package recall implements the generation workflow: pick a random
// note under the configured folder, summarize it, and overwrite the
// recall note. The last-run date in the settings is only advanced on
// success, so a failed day retries on the next trigger.
package recall

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/hexwren/resurface/internal/ai"
	"github.com/hexwren/resurface/internal/config"
	"github.com/hexwren/resurface/internal/journal"
	"github.com/hexwren/resurface/internal/notify"
	"github.com/hexwren/resurface/internal/vault"
)

// Workflow error kinds. Wrapped with context at the failure site;
// callers classify with errors.Is.
var (
	ErrMissingConfig   = errors.New("missing configuration")
	ErrNoMatchingNotes = errors.New("no matching notes")
	ErrSummaryFailed   = errors.New("summary generation failed")
	ErrPersistence     = errors.New("persistence failed")
)

const (
	headingDateFormat = "January 2, 2006"
	runDateFormat     = "2006-01-02"
)

// Render produces the recall document for a note name and its summary.
func Render(name, summary string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Daily Recall - %s\n\n", now.Format(headingDateFormat))
	fmt.Fprintf(&b, "## Today's Random Note: %s\n\n", name)
	b.WriteString(summary)
	b.WriteString("\n\n---\n\n")
	fmt.Fprintf(&b, "Source: [[%s]]\n", name)
	return b.String()
}

// Result describes one completed generation.
type Result struct {
	NotePath string
	NoteName string
	Summary  string
}

// SaveFunc persists the whole settings record after a successful run.
type SaveFunc func(*config.Config) error

// RunRecorder receives one journal entry per generation attempt.
type RunRecorder interface {
	Record(*journal.Entry) error
}

// Generator runs the workflow against injected collaborators. The
// zero values of Notifier, Journal, Save, Now, and Rand are all usable
// defaults; Store and Summarizer must be wired by the caller.
type Generator struct {
	Store      vault.Store
	Summarizer ai.Summarizer
	Notifier   notify.Notifier
	Journal    RunRecorder
	Save       SaveFunc
	Now        func() time.Time
	Rand       *rand.Rand
}

// Run picks a random matching note and generates today's recall,
// recording a journal row and emitting a notice for the outcome.
func (g *Generator) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	return g.finish(ctx, cfg, "")
}

// RunNote generates the recall from one specific note, bypassing
// random selection. Used by the pick view and the MCP tool.
func (g *Generator) RunNote(ctx context.Context, cfg *config.Config, notePath string) (*Result, error) {
	return g.finish(ctx, cfg, notePath)
}

func (g *Generator) finish(ctx context.Context, cfg *config.Config, notePath string) (*Result, error) {
	start := g.now()
	res, err := g.generate(ctx, cfg, notePath)
	g.record(cfg, res, err, start)

	msg := Notice(cfg, res, err)
	if err == nil {
		g.notifier().Info(msg)
	} else {
		g.notifier().Error(msg)
	}
	return res, err
}

// generate is the workflow proper. Every failure is classified by one
// of the sentinel kinds; regeneration is a full overwrite, so running
// twice in a day (or two overlapping runs) is harmless.
func (g *Generator) generate(ctx context.Context, cfg *config.Config, notePath string) (*Result, error) {
	if g.Summarizer == nil {
		return nil, fmt.Errorf("%w: no API key set", ErrMissingConfig)
	}
	if cfg.NotesFolder == "" {
		return nil, fmt.Errorf("%w: notes folder not set", ErrMissingConfig)
	}

	if notePath == "" {
		paths, err := g.Store.List()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		matches := vault.Matching(paths, cfg.NotesFolder)
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w under %q", ErrNoMatchingNotes, cfg.NotesFolder)
		}
		notePath = vault.Pick(matches, g.rng())
	}

	note, err := vault.ReadNote(g.Store, notePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	summary, err := g.Summarizer.Summarize(ctx, note.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSummaryFailed, err)
	}

	doc := Render(note.Name, summary, g.now())
	if err := g.Store.Write(cfg.RecallName(), doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	cfg.MarkRun(g.now())
	if g.Save != nil {
		if err := g.Save(cfg); err != nil {
			return nil, fmt.Errorf("%w: saving settings: %w", ErrPersistence, err)
		}
	}

	return &Result{NotePath: notePath, NoteName: note.Name, Summary: summary}, nil
}

func (g *Generator) record(cfg *config.Config, res *Result, runErr error, start time.Time) {
	if g.Journal == nil {
		return
	}
	e := &journal.Entry{
		RunDate:    start.Format(runDateFormat),
		Status:     journal.StatusOK,
		DurationMS: g.now().Sub(start).Milliseconds(),
	}
	if cfg.AI != nil {
		e.Provider = cfg.AI.Provider
		e.Model = cfg.AI.Model
	}
	if res != nil {
		e.NotePath = res.NotePath
		e.NoteName = res.NoteName
	}
	if runErr != nil {
		e.Status = journal.StatusError
		e.Error = runErr.Error()
	}
	if err := g.Journal.Record(e); err != nil {
		log.Printf("[recall] recording run: %v", err)
	}
}

// Notice maps a workflow outcome to the short transient message shown
// to the user.
func Notice(cfg *config.Config, res *Result, err error) string {
	switch {
	case err == nil:
		return fmt.Sprintf("Daily recall written from %q to %s", res.NoteName, cfg.RecallName())
	case errors.Is(err, ErrMissingConfig):
		return "Not configured: set the notes folder and API key in settings"
	case errors.Is(err, ErrNoMatchingNotes):
		return fmt.Sprintf("No notes found under %q", cfg.NotesFolder)
	case errors.Is(err, ErrSummaryFailed):
		return "Summarization failed: " + err.Error()
	default:
		return "Recall generation failed: " + err.Error()
	}
}

func (g *Generator) notifier() notify.Notifier {
	if g.Notifier == nil {
		return notify.Discard{}
	}
	return g.Notifier
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *Generator) rng() *rand.Rand {
	if g.Rand == nil {
		g.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g.Rand
}
