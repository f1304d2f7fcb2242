package views

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/yomi/internal/config"
	"github.com/f3rmion/yomi/internal/render"
)

var (
	settingsTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	settingsTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				Background(colorBgAlt).
				Padding(0, 2)
)

const (
	tabData = iota
	tabLookup
	tabDisplay
	numTabs
)

var settingsTabs = [numTabs]string{"Data", "Lookup", "Display"}

// SettingsModel shows and edits the configuration. Changes apply to the
// shared *config.Config immediately; "s" writes them to disk.
type SettingsModel struct {
	config     *config.Config
	configPath string
	dataDir    string

	tab    int
	cursor int
	status string
	err    error

	width  int
	height int
}

// NewSettingsModel creates a new settings model.
func NewSettingsModel(cfg *config.Config, configPath, dataDir string) SettingsModel {
	if cfg == nil {
		cfg = config.Default()
	}
	return SettingsModel{config: cfg, configPath: configPath, dataDir: dataDir}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// rows is the number of editable rows on the current tab.
func (m SettingsModel) rows() int {
	switch m.tab {
	case tabLookup:
		return 4
	case tabDisplay:
		return 2 + len(render.KanjiCodes)
	default:
		return 0
	}
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.status = ""
	switch key.String() {
	case "right", "l":
		m.tab = (m.tab + 1) % numTabs
		m.cursor = 0
	case "left", "h":
		m.tab = (m.tab + numTabs - 1) % numTabs
		m.cursor = 0
	case "j", "down":
		if m.cursor < m.rows()-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ", "enter":
		m.toggle()
	case "+", "=":
		m.adjust(1)
	case "-":
		m.adjust(-1)
	case "s":
		m.err = m.config.Validate()
		if m.err == nil {
			m.err = config.Save(m.configPath, m.config)
		}
		if m.err == nil {
			m.status = "Saved to " + m.configPath
		}
	}
	return m, nil
}

func (m *SettingsModel) toggle() {
	switch m.tab {
	case tabLookup:
		if m.cursor == 3 {
			m.config.Lookup.KanjiFallback = !m.config.Lookup.KanjiFallback
		}
	case tabDisplay:
		switch m.cursor {
		case 0:
			m.config.Display.HidePOS = !m.config.Display.HidePOS
		case 1:
			m.config.Display.HidePopular = !m.config.Display.HidePopular
		default:
			m.config.Display.KanjiInfo = toggleCode(m.config.Display.KanjiInfo, render.KanjiCodes[m.cursor-2].Code)
		}
	}
}

func (m *SettingsModel) adjust(delta int) {
	if m.tab != tabLookup {
		return
	}
	budgets := []*int{&m.config.Lookup.MaxWords, &m.config.Lookup.MaxNames, &m.config.Lookup.MaxTranslate}
	if m.cursor < len(budgets) {
		*budgets[m.cursor] = max(1, *budgets[m.cursor]+delta)
	}
}

// toggleCode adds or removes code, keeping the KanjiCodes order.
func toggleCode(codes []string, code string) []string {
	if slices.Contains(codes, code) {
		return slices.DeleteFunc(slices.Clone(codes), func(c string) bool { return c == code })
	}
	var out []string
	for _, c := range render.KanjiCodes {
		if c.Code == code || slices.Contains(codes, c.Code) {
			out = append(out, c.Code)
		}
	}
	return out
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n")
	b.WriteString(fpPathStyle.Render("Config: " + m.configPath))
	b.WriteString("\n\n")

	var tabs []string
	for i, t := range settingsTabs {
		style := settingsTabStyle
		if i == m.tab {
			style = settingsTabActiveStyle
		}
		tabs = append(tabs, style.Render(t))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n" + divider(m.width) + "\n\n")

	switch m.tab {
	case tabData:
		b.WriteString(m.row(-1, "Data directory", m.dataDir))
		b.WriteString(m.row(-1, "Encoding", m.config.Data.Encoding))
		rules := m.config.Data.Rules
		if rules == "" {
			rules = "(built-in)"
		}
		b.WriteString(m.row(-1, "Deinflection rules", rules))
		b.WriteString(m.row(-1, "Log", m.config.Log.Level+" / "+m.config.Log.Format))
	case tabLookup:
		b.WriteString(m.row(0, "Max words", fmt.Sprint(m.config.Lookup.MaxWords)))
		b.WriteString(m.row(1, "Max names", fmt.Sprint(m.config.Lookup.MaxNames)))
		b.WriteString(m.row(2, "Max translate", fmt.Sprint(m.config.Lookup.MaxTranslate)))
		b.WriteString(m.row(3, "Kanji fallback", checkbox(m.config.Lookup.KanjiFallback)))
		b.WriteString("\n" + reasonStyle.Render("  Lookup changes apply after save and restart.") + "\n")
	case tabDisplay:
		b.WriteString(m.row(0, "Hide part of speech", checkbox(m.config.Display.HidePOS)))
		b.WriteString(m.row(1, "Hide popular marker", checkbox(m.config.Display.HidePopular)))
		b.WriteString("\n")
		for i, c := range render.KanjiCodes {
			b.WriteString(m.row(i+2, c.Label, checkbox(slices.Contains(m.config.Display.KanjiInfo, c.Code))))
		}
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString("\n" + successStyle.Render(m.status) + "\n")
	}

	b.WriteString(helpStyle.Render("←/→: tabs • j/k: move • space: toggle • +/-: change • s: save"))
	return b.String()
}

func (m SettingsModel) row(i int, label, value string) string {
	prefix := "  "
	if i == m.cursor && m.rows() > 0 {
		prefix = "> "
	}
	return prefix + labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
