package tui

import "github.com/hexwren/resurface/internal/recall"

type notesLoadedMsg struct {
	paths []string // matching notes under the configured prefix
}

type vaultErrMsg struct {
	err error
}

type generateDoneMsg struct {
	res *recall.Result
	err error
}

type recallLoadedMsg struct {
	rendered string
}

type streakMsg struct {
	streak int
}

type updateCheckMsg struct {
	version string
}

type editorDoneMsg struct {
	err error
}
