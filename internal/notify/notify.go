// Package notify surfaces short transient notices to the user. The
// generation workflow reports through a Notifier so it stays testable
// outside a terminal.
package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Notifier shows one-line notices for workflow outcomes.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

var (
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"})
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"})
)

// Terminal prints styled notices to the given writers.
type Terminal struct {
	Out io.Writer
	Err io.Writer
}

// NewTerminal returns a Terminal writing to stdout/stderr.
func NewTerminal() *Terminal {
	return &Terminal{Out: os.Stdout, Err: os.Stderr}
}

func (t *Terminal) Info(msg string) {
	fmt.Fprintln(t.Out, infoStyle.Render("✓ "+msg))
}

func (t *Terminal) Error(msg string) {
	fmt.Fprintln(t.Err, errorStyle.Render("✗ "+msg))
}

// Discard swallows all notices, for quiet contexts like the MCP server.
type Discard struct{}

func (Discard) Info(string)  {}
func (Discard) Error(string) {}
