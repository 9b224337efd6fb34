// Package editor hands a note off to the user's editor or the
// platform opener.
package editor

import (
	"os"
	"os/exec"
	"runtime"
)

// Command returns the command that edits path, preferring $VISUAL then
// $EDITOR. With neither set it falls back to the platform opener, so
// the note still lands in whatever the OS associates with markdown.
func Command(path string) *exec.Cmd {
	if ed := os.Getenv("VISUAL"); ed != "" {
		return exec.Command(ed, path)
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return exec.Command(ed, path)
	}
	return openerCommand(path)
}

// Open launches the platform opener for path without waiting on it.
func Open(path string) error {
	return openerCommand(path).Start()
}

func openerCommand(path string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		// rundll32 avoids cmd /c start shell interpretation
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return exec.Command("xdg-open", path)
	}
}
