package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(noteCount int, streak int, status string, hints string, width int) string {
	streakAccentStyle := lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	left := fmt.Sprintf(" %d notes", noteCount)
	if streak >= 1 {
		left += fmt.Sprintf(" · %s %dd", streakAccentStyle.Render("streak"), streak)
	}
	if status != "" {
		left += " · " + status
	}

	right := " " + hints + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
