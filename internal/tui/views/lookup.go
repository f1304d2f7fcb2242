package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/yomi/internal/clipboard"
	"github.com/f3rmion/yomi/internal/config"
	"github.com/f3rmion/yomi/internal/dict"
	"github.com/f3rmion/yomi/internal/entry"
	"github.com/f3rmion/yomi/internal/render"
	"github.com/f3rmion/yomi/internal/tui/bigchar"
)

// searchResultMsg carries the outcome of an asynchronous search.
type searchResultMsg struct {
	query  string
	mode   dict.Mode
	result *dict.Result
	err    error
}

// LookupModel is the word, name and kanji lookup view.
type LookupModel struct {
	input  textinput.Model
	dict   *dict.Dictionary
	config *config.Config
	big    *bigchar.Renderer

	mode      dict.Mode
	query     string
	result    *dict.Result
	searching bool
	err       error
	copied    bool

	width  int
	height int
}

// NewLookupModel creates a new lookup view model.
func NewLookupModel(d *dict.Dictionary, cfg *config.Config, big *bigchar.Renderer) LookupModel {
	return LookupModel{
		input:  newInput("Enter Japanese text..."),
		dict:   d,
		config: cfg,
		big:    big,
	}
}

// SetSize updates the view dimensions.
func (m *LookupModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Mode returns the current search mode.
func (m LookupModel) Mode() dict.Mode { return m.mode }

// Result returns the last search result.
func (m LookupModel) Result() *dict.Result { return m.result }

// SetQuery replaces the input text.
func (m *LookupModel) SetQuery(q string) {
	m.input.SetValue(q)
}

// Submit searches the current input text.
func (m *LookupModel) Submit() tea.Cmd {
	return m.search(m.input.Value())
}

// Update handles messages.
func (m LookupModel) Update(msg tea.Msg) (LookupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m, m.search(m.input.Value())
		case "ctrl+n":
			m.mode = m.mode.Next()
			return m, m.search(m.query)
		case "ctrl+y":
			if text := render.Result(m.result, renderOptions(m.config)); text != "" {
				if err := clipboard.Write(text); err != nil {
					m.err = err
					return m, nil
				}
				m.copied = true
				return m, clearCopiedAfter(2 * time.Second)
			}
			return m, nil
		}

	case searchResultMsg:
		if msg.query != m.query || msg.mode != m.mode {
			return m, nil // stale
		}
		m.searching = false
		m.result = msg.result
		m.err = msg.err
		return m, nil

	case clearCopiedMsg:
		m.copied = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *LookupModel) search(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	m.query = query
	m.result = nil
	m.err = nil
	if query == "" || m.dict == nil {
		m.searching = false
		return nil
	}

	m.searching = true
	d, mode := m.dict, m.mode
	return func() tea.Msg {
		res, err := d.Search(context.Background(), query, mode)
		return searchResultMsg{query: query, mode: mode, result: res, err: err}
	}
}

// View renders the lookup view.
func (m LookupModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Lookup") + "  " + modeStyle.Render("["+m.mode.String()+"]"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	case m.searching:
		b.WriteString("\n" + reasonStyle.Render("Searching...") + "\n")
	case m.result != nil:
		b.WriteString(m.renderMatched())
		b.WriteString(divider(m.width) + "\n")
		if m.result.Kanji != nil {
			b.WriteString(m.renderKanji(m.result.Kanji))
		} else {
			b.WriteString(m.renderWords(m.result.Words))
		}
	case m.query != "":
		b.WriteString("\n" + reasonStyle.Render("No match.") + "\n")
	}

	help := []string{"enter: search", "ctrl+n: mode"}
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

// renderMatched shows the query with the matched prefix highlighted.
func (m LookupModel) renderMatched() string {
	runes := []rune(m.query)
	n := min(m.result.MatchLen(), len(runes))
	return "\n" + selectedStyle.Render(string(runes[:n])) + glossStyle.Render(string(runes[n:])) + "\n"
}

func (m LookupModel) contentWidth() int {
	return max(m.width-4, 40)
}

func (m LookupModel) renderWords(res *dict.LookupResult) string {
	var b strings.Builder
	width := m.contentWidth()

	for _, w := range render.Words(res, renderOptions(m.config)) {
		head := headwordStyle.Render(w.Headword)
		if w.Reading != "" {
			head += " " + readingStyle.Render(w.Reading)
		}
		if w.Reason != "" {
			head += " " + reasonStyle.Render(w.Reason)
		}
		b.WriteString(head + "\n")
		b.WriteString(glossStyle.Render(wordWrap(w.Gloss, width-2)) + "\n\n")
	}
	if res != nil && res.Truncated {
		b.WriteString(reasonStyle.Render("...") + "\n")
	}
	return b.String()
}

func (m LookupModel) renderKanji(e *entry.KanjiEntry) string {
	k := render.KanjiView(e, renderOptions(m.config))

	var char string
	if art := m.big.Render(k.Kanji, 24, 12); art != "" {
		char = kanjiStyle.Render(art)
	} else {
		char = boxStyle.Render(kanjiStyle.Padding(1, 4).Render(k.Kanji))
	}

	var info strings.Builder
	info.WriteString(glossStyle.Render(wordWrap(k.English, 40)) + "\n")
	if k.Readings != "" {
		info.WriteString(readingStyle.Render(wordWrap(k.Readings, 40)) + "\n")
	}
	if k.Nanori != "" {
		info.WriteString(reasonStyle.Render("名乗り ") + valueStyle.Render(k.Nanori) + "\n")
	}
	if k.RadicalName != "" {
		info.WriteString(reasonStyle.Render("部首名 ") + valueStyle.Render(k.RadicalName) + "\n")
	}
	for _, c := range k.Components {
		info.WriteString(fmt.Sprintf("%s %s %s\n", kanjiStyle.Render(c.Radical), readingStyle.Render(c.Yomi), glossStyle.Render(c.English)))
	}

	var rows strings.Builder
	for _, r := range k.Rows {
		rows.WriteString(labelStyle.Render(r.Label) + valueStyle.Render(r.Value) + "\n")
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, char, "  ", info.String())
	return top + "\n" + boxStyle.Render(strings.TrimRight(rows.String(), "\n")) + "\n"
}
