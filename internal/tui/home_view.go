package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var asciiLogo = []string{
	`██████╗ ███████╗███████╗██╗   ██╗██████╗ ███████╗ █████╗  ██████╗███████╗`,
	`██╔══██╗██╔════╝██╔════╝██║   ██║██╔══██╗██╔════╝██╔══██╗██╔════╝██╔════╝`,
	`██████╔╝█████╗  ███████╗██║   ██║██████╔╝█████╗  ███████║██║     █████╗  `,
	`██╔══██╗██╔══╝  ╚════██║██║   ██║██╔══██╗██╔══╝  ██╔══██║██║     ██╔══╝  `,
	`██║  ██║███████╗███████║╚██████╔╝██║  ██║██║     ██║  ██║╚██████╗███████╗`,
	`╚═╝  ╚═╝╚══════╝╚══════╝ ╚═════╝ ╚═╝  ╚═╝╚═╝     ╚═╝  ╚═╝ ╚═════╝╚══════╝`,
}

func renderHomeScreen(width, height int, hasRecall bool, updateVersion string) string {
	logoStyle := lipgloss.NewStyle().Foreground(colorAccent)
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(colorText)

	var lines []string

	for _, l := range asciiLogo {
		lines = append(lines, logoStyle.Render(l))
	}
	lines = append(lines, "")
	lines = append(lines, "")

	lines = append(lines, "          "+keyStyle.Render("[g]")+"  "+labelStyle.Render("Generate today's recall"))
	if hasRecall {
		lines = append(lines, "          "+keyStyle.Render("[r]")+"  "+labelStyle.Render("View recall note"))
	}
	lines = append(lines, "          "+keyStyle.Render("[p]")+"  "+labelStyle.Render("Pick a note to recall"))
	lines = append(lines, "          "+keyStyle.Render("[s]")+"  "+labelStyle.Render("Settings"))
	lines = append(lines, "")
	lines = append(lines, "          "+keyStyle.Render("[q]")+"  "+labelStyle.Render("Quit"))

	if updateVersion != "" {
		lines = append(lines, "")
		lines = append(lines, "          "+logoStyle.Render("Update available: v"+updateVersion))
	}

	content := strings.Join(lines, "\n")
	contentHeight := strings.Count(content, "\n") + 1

	topPad := (height - contentHeight) / 3
	if topPad < 0 {
		topPad = 0
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		strings.Repeat("\n", topPad)+content)
}
