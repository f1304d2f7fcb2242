package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rmion/yomi/internal/anki"
	"github.com/f3rmion/yomi/internal/config"
	"github.com/f3rmion/yomi/internal/dict"
)

// DefaultAnkiField is the note field looked up unless another is entered.
const DefaultAnkiField = "Expression"

type ankiState int

const (
	ankiPicking ankiState = iota
	ankiLoaded
	ankiRunning
	ankiDone
)

// packageLoadedMsg is sent when an Anki package has been opened.
type packageLoadedMsg struct {
	pkg  *anki.Package
	path string
	err  error
}

// augmentDoneMsg is sent when a package has been augmented and saved.
type augmentDoneMsg struct {
	stats anki.AugmentStats
	out   string
	err   error
}

// AnkiModel picks an .apkg file and fills its notes with lookup results.
type AnkiModel struct {
	picker FilePickerModel
	field  textinput.Model
	dict   *dict.Dictionary
	config *config.Config

	state   ankiState
	pkg     *anki.Package
	path    string
	summary string
	stats   anki.AugmentStats
	out     string
	err     error

	width  int
	height int
}

// NewAnkiModel creates the Anki view, browsing from dir.
func NewAnkiModel(d *dict.Dictionary, cfg *config.Config, dir string) AnkiModel {
	field := newInput(DefaultAnkiField)
	field.Prompt = "Field: "
	field.SetValue(DefaultAnkiField)
	field.Blur()

	return AnkiModel{
		picker: NewFilePickerModel(dir, ".apkg"),
		field:  field,
		dict:   d,
		config: cfg,
	}
}

// SetSize updates the view dimensions.
func (m *AnkiModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.picker.SetSize(width, height)
}

// Close releases an open package.
func (m *AnkiModel) Close() {
	if m.pkg != nil {
		m.pkg.Close()
		m.pkg = nil
	}
}

// Open loads the package at path.
func (m AnkiModel) Open(path string) tea.Cmd {
	return func() tea.Msg {
		pkg, err := anki.OpenPackage(path)
		return packageLoadedMsg{pkg: pkg, path: path, err: err}
	}
}

// Update handles messages.
func (m AnkiModel) Update(msg tea.Msg) (AnkiModel, tea.Cmd) {
	switch msg := msg.(type) {
	case FileSelectedMsg:
		return m, m.Open(msg.Path)

	case packageLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = ankiPicking
			return m, nil
		}
		m.Close()
		m.pkg, m.path = msg.pkg, msg.path
		m.summary = msg.pkg.Summary()
		m.err = nil
		m.state = ankiLoaded
		m.field.Focus()
		return m, textinput.Blink

	case augmentDoneMsg:
		m.stats, m.out, m.err = msg.stats, msg.out, msg.err
		m.state = ankiDone
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case ankiPicking:
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		case ankiLoaded:
			switch msg.String() {
			case "enter":
				return m, m.augment()
			case "ctrl+o":
				m.back()
				return m, nil
			}
			var cmd tea.Cmd
			m.field, cmd = m.field.Update(msg)
			return m, cmd
		case ankiDone:
			if msg.String() == "enter" || msg.String() == "ctrl+o" {
				m.back()
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *AnkiModel) back() {
	m.Close()
	m.field.Blur()
	m.state = ankiPicking
	m.err = nil
}

func (m *AnkiModel) augment() tea.Cmd {
	field := strings.TrimSpace(m.field.Value())
	if field == "" {
		field = DefaultAnkiField
	}
	m.state = ankiRunning
	m.field.Blur()

	pkg, out := m.pkg, anki.AugmentedPath(m.path)
	opts := anki.AugmentOptions{Field: field, Render: renderOptions(m.config)}
	searcher := m.dict
	return func() tea.Msg {
		stats, err := anki.Augment(context.Background(), pkg, searcher, opts)
		if err == nil {
			err = pkg.SaveAs(out)
		}
		return augmentDoneMsg{stats: stats, out: out, err: err}
	}
}

// View renders the Anki view.
func (m AnkiModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Anki Deck (.apkg)"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
	}

	switch m.state {
	case ankiPicking:
		b.WriteString(m.picker.View())
		b.WriteString(helpStyle.Render("enter: open • backspace: parent • ~: home"))
	case ankiLoaded:
		b.WriteString(boxStyle.Render(strings.TrimRight(m.summary, "\n")) + "\n\n")
		b.WriteString(m.field.View() + "\n")
		b.WriteString(reasonStyle.Render("Writes "+strings.Join(anki.LookupFields, ", ")+" to "+anki.AugmentedPath(m.path)) + "\n")
		b.WriteString(helpStyle.Render("enter: augment • ctrl+o: pick another deck"))
	case ankiRunning:
		b.WriteString(reasonStyle.Render("Looking up notes...") + "\n")
	case ankiDone:
		if m.err == nil {
			b.WriteString(successStyle.Render(fmt.Sprintf("Augmented %d of %d notes (%d already done)",
				m.stats.Matched, m.stats.Notes, m.stats.Skipped)) + "\n")
			b.WriteString(fpPathStyle.Render("Saved to "+m.out) + "\n")
		}
		b.WriteString(helpStyle.Render("enter: pick another deck"))
	}

	return b.String()
}
