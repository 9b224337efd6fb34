package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hexwren/resurface/internal/config"
)

const (
	fieldVault = iota
	fieldNotesFolder
	fieldRecallFile
	fieldProvider
	fieldAPIKey
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Vault",
	"Notes folder",
	"Recall file",
	"AI provider",
	"API key",
}

// settingsForm edits the persisted settings record. Saving writes the
// whole record and the app rebuilds the summarizer, so a new key takes
// effect without a restart.
type settingsForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
}

func newSettingsForm(cfg *config.Config) settingsForm {
	var f settingsForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		f.inputs[i] = ti
	}
	f.inputs[fieldVault].Placeholder = "~/notes"
	f.inputs[fieldNotesFolder].Placeholder = "Ideas"
	f.inputs[fieldRecallFile].Placeholder = "recall.md"
	f.inputs[fieldProvider].Placeholder = "claude or openai"
	f.inputs[fieldAPIKey].Placeholder = "sk-..."
	f.inputs[fieldAPIKey].EchoMode = textinput.EchoPassword
	f.inputs[fieldAPIKey].EchoCharacter = '•'

	f.setValues(cfg)
	f.inputs[0].Focus()
	return f
}

func (f *settingsForm) setValues(cfg *config.Config) {
	f.inputs[fieldVault].SetValue(cfg.Vault)
	f.inputs[fieldNotesFolder].SetValue(cfg.NotesFolder)
	f.inputs[fieldRecallFile].SetValue(cfg.RecallFile)
	if cfg.AI != nil {
		f.inputs[fieldProvider].SetValue(cfg.AI.Provider)
		f.inputs[fieldAPIKey].SetValue(cfg.AI.APIKey)
	}
}

// apply copies the form values into cfg. last_run_date is internal and
// never editable here.
func (f *settingsForm) apply(cfg *config.Config) {
	cfg.Vault = strings.TrimSpace(f.inputs[fieldVault].Value())
	cfg.NotesFolder = strings.TrimSpace(f.inputs[fieldNotesFolder].Value())
	cfg.RecallFile = strings.TrimSpace(f.inputs[fieldRecallFile].Value())
	if cfg.AI == nil {
		cfg.AI = &config.AIConfig{}
	}
	cfg.AI.Provider = strings.TrimSpace(f.inputs[fieldProvider].Value())
	cfg.AI.APIKey = strings.TrimSpace(f.inputs[fieldAPIKey].Value())
}

func (f *settingsForm) next() {
	f.setFocus((f.focus + 1) % fieldCount)
}

func (f *settingsForm) prev() {
	f.setFocus((f.focus + fieldCount - 1) % fieldCount)
}

func (f *settingsForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f *settingsForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *settingsForm) view(width, height int) string {
	var b strings.Builder
	b.WriteString(itemTitleStyle.Render("Settings") + "\n\n")

	for i := range f.inputs {
		label := formLabelStyle
		if i == f.focus {
			label = formLabelFocusStyle
		}
		b.WriteString(label.Render(fieldLabels[i]) + " " + f.inputs[i].View() + "\n")
	}

	b.WriteString("\n")
	b.WriteString(formHintStyle.Render("tab/shift+tab move · enter save · esc back"))

	card := helpCardStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
