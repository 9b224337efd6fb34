package tui

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hexwren/resurface/internal/ai"
	"github.com/hexwren/resurface/internal/config"
	"github.com/hexwren/resurface/internal/editor"
	"github.com/hexwren/resurface/internal/journal"
	"github.com/hexwren/resurface/internal/notify"
	"github.com/hexwren/resurface/internal/recall"
	"github.com/hexwren/resurface/internal/update"
	"github.com/hexwren/resurface/internal/vault"
)

type mode int

const (
	modeHome mode = iota
	modeRecall
	modePick
	modeSettings
	modeHelp
)

const runDateFormat = "2006-01-02"

type App struct {
	cfg        *config.Config
	configPath string
	db         *journal.DB // nil when the journal could not open
	version    string

	mode   mode
	width  int
	height int

	// Notes matching the configured prefix, and the fuzzy-filtered
	// subset shown in the pick view.
	matches  []string
	filtered []string
	cursor   int

	filterInput textinput.Model
	spinner     spinner.Model
	generating  bool

	form settingsForm

	recallRendered string
	recallScroll   int
	hasRecall      bool

	streak        int
	updateVersion string
	currentDate   string
	status        string
	statusErr     bool
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg        *config.Config
	ConfigPath string
	Journal    *journal.DB
	Version    string
	Settings   bool // start on the settings form
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Filter notes..."
	ti.Prompt = filterPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	a := &App{
		cfg:         opts.Cfg,
		configPath:  opts.ConfigPath,
		db:          opts.Journal,
		version:     opts.Version,
		filterInput: ti,
		spinner:     sp,
		currentDate: time.Now().Format("Jan 2"),
		mode:        modeHome,
	}
	if opts.Settings {
		a.mode = modeSettings
		a.form = newSettingsForm(a.cfg)
	}
	if _, err := os.Stat(a.cfg.RecallPath()); err == nil {
		a.hasRecall = true
	}
	return a
}

// newGenerator builds a fresh workflow from the current settings, so a
// key or folder edit takes effect on the very next run.
func (a *App) newGenerator() *recall.Generator {
	configPath := a.configPath
	gen := &recall.Generator{
		Store:    vault.NewDirStore(a.cfg.VaultDir(), a.cfg.Ignore),
		Notifier: notify.Discard{}, // outcome shown in the status bar
		Save: func(cfg *config.Config) error {
			return config.Save(cfg, configPath)
		},
	}
	if a.cfg.AIEnabled() {
		if s, err := ai.New(a.cfg.AI, a.cfg.AIKey()); err == nil {
			gen.Summarizer = s
		}
	}
	if a.db != nil {
		gen.Journal = a.db
	}
	return gen
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadNotesCmd(), a.checkUpdateCmd()}
	if a.db != nil {
		cmds = append(cmds, a.loadStreakCmd())
	}
	return tea.Batch(cmds...)
}

func (a *App) loadNotesCmd() tea.Cmd {
	store := vault.NewDirStore(a.cfg.VaultDir(), a.cfg.Ignore)
	prefix := a.cfg.NotesFolder
	return func() tea.Msg {
		paths, err := store.List()
		if err != nil {
			return vaultErrMsg{err: err}
		}
		return notesLoadedMsg{paths: vault.Matching(paths, prefix)}
	}
}

func (a *App) loadStreakCmd() tea.Cmd {
	db := a.db
	today := time.Now().Format(runDateFormat)
	return func() tea.Msg {
		streak, err := db.Streak(today)
		if err != nil {
			return nil
		}
		return streakMsg{streak: streak}
	}
}

func (a *App) checkUpdateCmd() tea.Cmd {
	v := a.version
	return func() tea.Msg {
		res := update.Check(context.Background(), v)
		if res == nil {
			return nil
		}
		return updateCheckMsg{version: res.LatestVersion}
	}
}

// generateCmd runs the workflow off the UI loop. An empty notePath
// means random selection.
func (a *App) generateCmd(notePath string) tea.Cmd {
	gen := a.newGenerator()
	cfg := a.cfg
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		var res *recall.Result
		var err error
		if notePath == "" {
			res, err = gen.Run(ctx, cfg)
		} else {
			res, err = gen.RunNote(ctx, cfg, notePath)
		}
		return generateDoneMsg{res: res, err: err}
	}
}

func (a *App) loadRecallCmd() tea.Cmd {
	path := a.cfg.RecallPath()
	width := a.width - 2
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return vaultErrMsg{err: err}
		}
		return recallLoadedMsg{rendered: renderMarkdown(string(data), width)}
	}
}

func (a *App) editRecallCmd() tea.Cmd {
	return tea.ExecProcess(editor.Command(a.cfg.RecallPath()), func(err error) tea.Msg {
		return editorDoneMsg{err: err}
	})
}

func (a *App) startGenerate(notePath string) (tea.Model, tea.Cmd) {
	if a.generating {
		return a, nil
	}
	a.generating = true
	a.status = ""
	return a, tea.Batch(a.generateCmd(notePath), a.spinner.Tick)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case notesLoadedMsg:
		a.matches = msg.paths
		a.refilter()
		return a, nil

	case vaultErrMsg:
		a.status = msg.err.Error()
		a.statusErr = true
		return a, nil

	case generateDoneMsg:
		a.generating = false
		a.status = recall.Notice(a.cfg, msg.res, msg.err)
		a.statusErr = msg.err != nil
		if msg.err != nil {
			return a, nil
		}
		a.hasRecall = true
		a.mode = modeRecall
		return a, tea.Batch(a.loadRecallCmd(), a.streakRefresh())
	case recallLoadedMsg:
		a.recallRendered = msg.rendered
		a.recallScroll = 0
		return a, nil

	case streakMsg:
		a.streak = msg.streak
		return a, nil

	case updateCheckMsg:
		a.updateVersion = msg.version
		return a, nil

	case editorDoneMsg:
		if msg.err != nil {
			a.status = msg.err.Error()
			a.statusErr = true
			return a, nil
		}
		if a.mode == modeRecall {
			return a, a.loadRecallCmd()
		}
		return a, nil

	case spinner.TickMsg:
		if a.generating {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) streakRefresh() tea.Cmd {
	if a.db == nil {
		return nil
	}
	return a.loadStreakCmd()
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeHome:
		return a.handleHomeKey(msg)
	case modeRecall:
		return a.handleRecallKey(msg)
	case modePick:
		return a.handlePickKey(msg)
	case modeSettings:
		return a.handleSettingsKey(msg)
	case modeHelp:
		switch msg.String() {
		case "?", "esc", "q":
			a.mode = modeHome
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "g":
		return a.startGenerate("")
	case "r":
		if a.hasRecall {
			a.mode = modeRecall
			return a, a.loadRecallCmd()
		}
		return a, nil
	case "p":
		a.mode = modePick
		a.filterInput.SetValue("")
		a.filterInput.Focus()
		a.refilter()
		return a, tea.Batch(a.loadNotesCmd(), textinput.Blink)
	case "s":
		a.mode = modeSettings
		a.form = newSettingsForm(a.cfg)
		return a, textinput.Blink
	case "e":
		if a.hasRecall {
			return a, a.editRecallCmd()
		}
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleRecallKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		a.recallScroll++
		return a, nil
	case "k", "up":
		if a.recallScroll > 0 {
			a.recallScroll--
		}
		return a, nil
	case "g":
		return a.startGenerate("")
	case "e":
		return a, a.editRecallCmd()
	case "esc", "h":
		a.mode = modeHome
		return a, nil
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handlePickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeHome
		a.filterInput.Blur()
		return a, nil
	case "up", "ctrl+p":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "down", "ctrl+n":
		if a.cursor < len(a.filtered)-1 {
			a.cursor++
		}
		return a, nil
	case "enter":
		if len(a.filtered) > 0 && a.cursor < len(a.filtered) {
			return a.startGenerate(a.filtered[a.cursor])
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(msg)
	a.refilter()
	return a, cmd
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeHome
		return a, nil
	case "tab", "down":
		a.form.next()
		return a, nil
	case "shift+tab", "up":
		a.form.prev()
		return a, nil
	case "enter":
		a.form.apply(a.cfg)
		if err := config.Save(a.cfg, a.configPath); err != nil {
			a.status = "saving settings: " + err.Error()
			a.statusErr = true
			return a, nil
		}
		a.status = "Settings saved"
		a.statusErr = false
		a.mode = modeHome
		// Folder or vault may have changed; the summarizer is rebuilt
		// on the next run from the saved record.
		return a, a.loadNotesCmd()
	}

	return a, a.form.update(msg)
}

func (a *App) refilter() {
	a.filtered = vault.Find(a.matches, a.filterInput.Value())
	if a.cursor >= len(a.filtered) {
		a.cursor = max(0, len(a.filtered)-1)
	}
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  resurface")
	}

	headerLeft := headerStyle.Render("resurface")
	headerRight := headerDateStyle.Render(a.currentDate + " ")
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + lipgloss.NewStyle().Width(headerGap).Render("") + headerRight

	contentHeight := a.height - 2 // header + status bar
	if contentHeight < 3 {
		contentHeight = 3
	}

	var content, hints string
	switch a.mode {
	case modeHome:
		content = renderHomeScreen(a.width, contentHeight, a.hasRecall, a.updateVersion)
		hints = "g generate  p pick  s settings  ? help  q quit"
	case modeRecall:
		content = renderRecallView(a.recallRendered, a.recallScroll, contentHeight)
		hints = "j/k scroll  g regenerate  e edit  esc back"
	case modePick:
		list := renderNoteList(a.filtered, a.cursor, contentHeight-2, a.width-2)
		content = lipgloss.JoinVertical(lipgloss.Left, " "+a.filterInput.View(), "", list)
		hints = "↑/↓ move  enter recall  esc back"
	case modeSettings:
		content = a.form.view(a.width, contentHeight)
		hints = "tab next  enter save  esc back"
	case modeHelp:
		content = a.renderHelp(contentHeight)
		hints = "? close  q quit"
	}

	status := a.status
	switch {
	case status == "":
	case a.statusErr:
		status = statusErrStyle.Render(status)
	default:
		status = statusInfoStyle.Render(status)
	}
	bar := renderStatusBar(len(a.matches), a.streak, status, hints, a.width)
	if a.generating {
		bar = a.spinner.View() + " " + bar
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, bar)
}

func (a *App) renderHelp(height int) string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("resurface")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Home") + "\n" +
		"  g             Generate today's recall\n" +
		"  r             View the recall note\n" +
		"  p             Pick a specific note\n" +
		"  s             Edit settings\n\n" +
		dim.Render("Recall view") + "\n" +
		"  j/k, ↑/↓     Scroll\n" +
		"  g             Regenerate\n" +
		"  e             Open in $EDITOR\n\n" +
		dim.Render("Pick view") + "\n" +
		"  type          Fuzzy-filter notes\n" +
		"  enter         Recall the selected note\n\n" +
		dim.Render("General") + "\n" +
		"  esc           Back to home\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)
	return lipgloss.Place(a.width, height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
