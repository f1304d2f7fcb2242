package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rmion/yomi/internal/clipboard"
	"github.com/f3rmion/yomi/internal/config"
	"github.com/f3rmion/yomi/internal/dict"
	"github.com/f3rmion/yomi/internal/entry"
	"github.com/f3rmion/yomi/internal/render"
)

// TranslateModel splits a sentence into dictionary words.
type TranslateModel struct {
	input  textinput.Model
	dict   *dict.Dictionary
	config *config.Config

	text     string
	result   *dict.TranslateResult
	selected int
	copied   bool
	err      error

	width  int
	height int
}

// NewTranslateModel creates a new translate view model.
func NewTranslateModel(d *dict.Dictionary, cfg *config.Config) TranslateModel {
	ti := newInput("Enter a Japanese sentence...")
	ti.Width = 60
	return TranslateModel{input: ti, dict: d, config: cfg}
}

// SetSize updates the view dimensions.
func (m *TranslateModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetText replaces the input text.
func (m *TranslateModel) SetText(s string) {
	m.input.SetValue(s)
}

// Result returns the last translation.
func (m TranslateModel) Result() *dict.TranslateResult { return m.result }

// Update handles messages.
func (m TranslateModel) Update(msg tea.Msg) (TranslateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.text = strings.TrimSpace(m.input.Value())
			m.result = nil
			m.selected = 0
			m.err = nil
			if m.text != "" && m.dict != nil {
				m.result = m.dict.Translate(m.text)
			}
			return m, nil
		case "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.result != nil && m.selected < len(m.result.Segments)-1 {
				m.selected++
			}
			return m, nil
		case "ctrl+y":
			if m.result == nil {
				return m, nil
			}
			if err := clipboard.Write(render.TranslateText(m.text, m.result, renderOptions(m.config))); err != nil {
				m.err = err
				return m, nil
			}
			m.copied = true
			return m, clearCopiedAfter(2 * time.Second)
		}

	case clearCopiedMsg:
		m.copied = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the translate view.
func (m TranslateModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Translate"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	if m.result != nil {
		b.WriteString("\n" + m.renderSentence() + "\n")
		b.WriteString(divider(m.width) + "\n")
		b.WriteString(m.renderSegments())
	} else if m.text != "" {
		b.WriteString("\n" + reasonStyle.Render("No match.") + "\n")
	}

	help := []string{"enter: translate", "↑/↓: select"}
	if m.result != nil {
		copyHelp := "ctrl+y: copy"
		if m.copied {
			copyHelp = successStyle.Render("Copied!")
		}
		help = append(help, copyHelp)
	}
	b.WriteString(helpStyle.Render(strings.Join(help, " • ")))

	return b.String()
}

// renderSentence shows the text with the selected segment highlighted.
func (m TranslateModel) renderSentence() string {
	runes := []rune(m.text)
	seg := m.result.Segments[m.selected]
	end := min(seg.Offset+seg.Length, len(runes))
	return glossStyle.Render(string(runes[:seg.Offset])) +
		selectedStyle.Render(string(runes[seg.Offset:end])) +
		glossStyle.Render(string(runes[end:]))
}

func (m TranslateModel) renderSegments() string {
	var b strings.Builder
	opts := renderOptions(m.config)
	width := max(m.width-8, 30)

	for i, seg := range m.result.Segments {
		e, err := entry.ParseWord(seg.Record)
		if err != nil {
			continue
		}
		prefix := "  "
		if i == m.selected {
			prefix = "> "
		}
		head := headwordStyle.Render(e.Headword)
		if e.Reading != "" {
			head += " " + readingStyle.Render(e.Reading)
		}
		if seg.Reason != "" {
			head += " " + reasonStyle.Render(seg.Reason)
		}
		b.WriteString(prefix + head + "\n")
		for _, line := range strings.Split(wordWrap(render.Gloss(e, opts), width), "\n") {
			b.WriteString("    " + glossStyle.Render(line) + "\n")
		}
	}
	if m.result.More {
		b.WriteString(reasonStyle.Render("  ...") + "\n")
	}
	return b.String()
}
