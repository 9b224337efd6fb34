package tui

import (
	"strings"

	"github.com/hexwren/resurface/internal/vault"
)

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderNoteItem(path string, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	name := vault.DisplayName(path)
	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(name, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(name, width-4))
	}

	meta := "  " + itemPathStyle.Render(truncateStr(path, width-4))
	return title + "\n" + meta
}

func renderNoteList(paths []string, cursor int, height int, width int) string {
	if len(paths) == 0 {
		return listCenter("No matching notes", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(paths) {
		end = len(paths)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderNoteItem(paths[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

func listCenter(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
