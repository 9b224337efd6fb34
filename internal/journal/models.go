package journal

import "time"

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Entry is one generation attempt, success or failure.
type Entry struct {
	ID         string
	RunDate    string // 2006-01-02
	NotePath   string
	NoteName   string
	Provider   string
	Model      string
	Status     string
	Error      string
	DurationMS int64
	CreatedAt  time.Time
}
