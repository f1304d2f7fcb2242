package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/yomi/internal/config"
	"github.com/f3rmion/yomi/internal/dict"
	"github.com/f3rmion/yomi/internal/tui/bigchar"
	"github.com/f3rmion/yomi/internal/tui/views"
)

// ViewType identifies a view.
type ViewType int

const (
	ViewLookup ViewType = iota
	ViewTranslate
	ViewAnki
	ViewSettings
)

// MenuItem is a sidebar entry.
type MenuItem struct {
	Label    string
	Icon     string
	View     ViewType
	Shortcut string
}

// Options configure the application.
type Options struct {
	Dict       *dict.Dictionary
	Config     *config.Config
	ConfigPath string
	DataDir    string

	// AnkiDir is where the deck picker starts; empty means the working
	// directory.
	AnkiDir string

	// Text is looked up on start.
	Text string

	// Font draws kanji art. Nil searches the system fonts.
	Font *bigchar.Renderer
}

// AppModel is the main TUI model.
type AppModel struct {
	width        int
	height       int
	sidebarWidth int
	ready        bool

	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool
	showHelp      bool

	lookupView    views.LookupModel
	translateView views.TranslateModel
	ankiView      views.AnkiModel
	settingsView  views.SettingsModel

	initCmd tea.Cmd
}

// NewApp creates the application model.
func NewApp(opts Options) AppModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	font := opts.Font
	if font == nil {
		font = bigchar.Load()
	}

	app := AppModel{
		sidebarWidth: 18,
		currentView:  ViewLookup,
		menuItems: []MenuItem{
			{Label: "Lookup", Icon: "辞", View: ViewLookup, Shortcut: "1"},
			{Label: "Translate", Icon: "訳", View: ViewTranslate, Shortcut: "2"},
			{Label: "Anki", Icon: "札", View: ViewAnki, Shortcut: "3"},
			{Label: "Settings", Icon: "設", View: ViewSettings, Shortcut: "4"},
		},

		lookupView:    views.NewLookupModel(opts.Dict, cfg, font),
		translateView: views.NewTranslateModel(opts.Dict, cfg),
		ankiView:      views.NewAnkiModel(opts.Dict, cfg, opts.AnkiDir),
		settingsView:  views.NewSettingsModel(cfg, opts.ConfigPath, opts.DataDir),
	}

	if opts.Text != "" {
		app.lookupView.SetQuery(opts.Text)
		app.initCmd = app.lookupView.Submit()
	}
	return app
}

// Run starts the TUI and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen())
	final, err := p.Run()
	if m, ok := final.(AppModel); ok {
		m.ankiView.Close()
	}
	return err
}

// Init initializes the model.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initCmd)
}

// CurrentView returns the active view.
func (m AppModel) CurrentView() ViewType { return m.currentView }

// SidebarActive reports whether the sidebar has focus.
func (m AppModel) SidebarActive() bool { return m.sidebarActive }

func (m *AppModel) switchTo(v ViewType) {
	m.currentView = v
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
	m.sidebarActive = false
}

// Update handles messages. Keys go to the focused view; every other message
// is delivered to all views so that results of background work arrive even
// after switching views.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.sidebarActive {
				return m, tea.Quit
			}
			m.sidebarActive = true
			return m, nil
		case "tab":
			m.sidebarActive = !m.sidebarActive
			return m, nil
		}

		if m.sidebarActive {
			return m.updateSidebar(msg)
		}
		return m.updateCurrent(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		w, h := m.contentSize()
		m.lookupView.SetSize(w, h)
		m.translateView.SetSize(w, h)
		m.ankiView.SetSize(w, h)
		m.settingsView.SetSize(w, h)
		return m, nil
	}

	var cmds [4]tea.Cmd
	m.lookupView, cmds[0] = m.lookupView.Update(msg)
	m.translateView, cmds[1] = m.translateView.Update(msg)
	m.ankiView, cmds[2] = m.ankiView.Update(msg)
	m.settingsView, cmds[3] = m.settingsView.Update(msg)
	return m, tea.Batch(cmds[:]...)
}

func (m AppModel) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "j", "down":
		if m.selectedMenu < len(m.menuItems)-1 {
			m.selectedMenu++
		}
	case "k", "up":
		if m.selectedMenu > 0 {
			m.selectedMenu--
		}
	case "enter", "l", "right":
		m.switchTo(m.menuItems[m.selectedMenu].View)
	default:
		for _, item := range m.menuItems {
			if msg.String() == item.Shortcut {
				m.switchTo(item.View)
				break
			}
		}
	}
	return m, nil
}

func (m AppModel) updateCurrent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewLookup:
		m.lookupView, cmd = m.lookupView.Update(msg)
	case ViewTranslate:
		m.translateView, cmd = m.translateView.Update(msg)
	case ViewAnki:
		m.ankiView, cmd = m.ankiView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}
	return m, cmd
}

func (m AppModel) contentSize() (int, int) {
	return m.width - m.sidebarWidth - 4, m.height - 2
}

// View renders the UI.
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, HelpBoxStyle.Render(helpText()))
	}

	var content string
	switch m.currentView {
	case ViewLookup:
		content = m.lookupView.View()
	case ViewTranslate:
		content = m.translateView.View()
	case ViewAnki:
		content = m.ankiView.View()
	case ViewSettings:
		content = m.settingsView.View()
	}

	w, h := m.contentSize()
	main := ContentStyle.Width(w).Height(h).Render(content)
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), main)
}

func (m AppModel) renderSidebar() string {
	items := []string{SidebarTitleStyle.Render("  読み yomi  "), ""}

	for i, item := range m.menuItems {
		style := SidebarItemStyle
		if i == m.selectedMenu {
			style = SidebarItemCurrentStyle
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			}
		}
		items = append(items, style.Render(item.Shortcut+". "+item.Icon+" "+item.Label))
	}

	for used := len(items) + 4; used < m.height-2; used++ {
		items = append(items, "")
	}
	help := "tab: menu"
	if m.sidebarActive {
		help = "? help  q quit"
	}
	items = append(items, SidebarHelpStyle.Render(help))

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

type helpSection struct {
	title string
	keys  [][2]string
}

var helpSections = []helpSection{
	{"Global", [][2]string{
		{"tab / esc", "Focus menu"},
		{"1-4", "Switch views (menu)"},
		{"?", "Show this help (menu)"},
		{"q / ctrl+c", "Quit"},
	}},
	{"Lookup", [][2]string{
		{"enter", "Search"},
		{"ctrl+n", "Next mode: words, names, kanji"},
		{"ctrl+y", "Copy result"},
	}},
	{"Translate", [][2]string{
		{"enter", "Translate sentence"},
		{"↑/↓", "Select word"},
		{"ctrl+y", "Copy translation"},
	}},
	{"Anki", [][2]string{
		{"enter", "Open deck / augment"},
		{"ctrl+o", "Pick another deck"},
	}},
	{"Settings", [][2]string{
		{"←/→", "Switch tabs"},
		{"space", "Toggle"},
		{"s", "Save config"},
	}},
}

func helpText() string {
	text := HelpTitleStyle.Render("yomi - Japanese dictionary") + "\n"
	for _, s := range helpSections {
		text += HelpSectionStyle.Render(s.title) + "\n"
		for _, k := range s.keys {
			text += HelpKeyStyle.Render(k[0]) + HelpDescStyle.Render(k[1]) + "\n"
		}
	}
	text += "\n" + lipgloss.NewStyle().Foreground(ColorMuted).Italic(true).Render("Press any key to close")
	return text
}
