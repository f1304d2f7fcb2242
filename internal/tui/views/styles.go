// Package views provides the individual views of the yomi TUI.
package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/yomi/internal/config"
	"github.com/f3rmion/yomi/internal/render"
)

// Palette
var (
	colorPrimary   = lipgloss.Color("#E63946") // titles, headwords
	colorSecondary = lipgloss.Color("#4ECDC4") // readings, modes
	colorAccent    = lipgloss.Color("#FFE66D") // kanji, selection
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#A8E6CF")
	colorText      = lipgloss.Color("#F1FAEE")
	colorLabel     = lipgloss.Color("#A8DADC")
	colorBgAlt     = lipgloss.Color("#2D3436")
	colorBorder    = lipgloss.Color("#3D5A80")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	modeStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	headwordStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	readingStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	glossStyle = lipgloss.NewStyle().
			Foreground(colorText)

	reasonStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	kanjiStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorLabel).
			Bold(true).
			Width(26)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Background(colorBgAlt)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	dividerStyle = lipgloss.NewStyle().
			Foreground(colorBorder)
)

// clearCopiedMsg hides the "Copied!" marker.
type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// renderOptions maps the display config to render options.
func renderOptions(cfg *config.Config) render.Options {
	if cfg == nil {
		return render.Options{}
	}
	return render.Options{
		HidePOS:     cfg.Display.HidePOS,
		HidePopular: cfg.Display.HidePopular,
		KanjiInfo:   cfg.Display.KanjiInfo,
	}
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorSecondary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorAccent)
	return ti
}

func divider(width int) string {
	return dividerStyle.Render(strings.Repeat("─", max(min(width-4, 60), 10)))
}

// wordWrap wraps s at width display cells. Runs without spaces, as in
// Japanese text, are broken between runes.
func wordWrap(s string, width int) string {
	if width <= 0 {
		width = 60
	}
	var (
		lines []string
		line  strings.Builder
		w     int
	)
	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		w = 0
	}

	for _, word := range strings.Fields(s) {
		ww := runewidth.StringWidth(word)
		if w > 0 && w+1+ww > width {
			flush()
		}
		if w > 0 {
			line.WriteByte(' ')
			w++
		}
		for _, r := range word {
			rw := runewidth.RuneWidth(r)
			if w > 0 && w+rw > width {
				flush()
			}
			line.WriteRune(r)
			w += rw
		}
	}
	if line.Len() > 0 {
		flush()
	}
	return strings.Join(lines, "\n")
}
