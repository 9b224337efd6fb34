package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// renderMarkdown renders a markdown document for the recall view.
// Falls back to the raw text when the renderer cannot be built.
func renderMarkdown(raw string, width int) string {
	if width <= 0 || width > 100 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return raw
	}
	out, err := r.Render(raw)
	if err != nil {
		return raw
	}
	return out
}

// renderRecallView shows the rendered recall note with a scroll offset.
func renderRecallView(rendered string, scroll, height int) string {
	lines := strings.Split(rendered, "\n")
	if scroll > len(lines)-1 {
		scroll = len(lines) - 1
	}
	if scroll < 0 {
		scroll = 0
	}
	lines = lines[scroll:]
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
