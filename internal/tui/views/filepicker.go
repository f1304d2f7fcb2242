package views

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FileSelectedMsg is sent when a file is selected.
type FileSelectedMsg struct {
	Path string
}

var (
	fpPathStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	fpDirStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	fpFileStyle = lipgloss.NewStyle().
			Foreground(colorText)
)

// FileEntry is a file or directory in the picker.
type FileEntry struct {
	Name  string
	IsDir bool
	Path  string
}

// FilePickerModel browses directories for files with given extensions.
type FilePickerModel struct {
	currentDir string
	entries    []FileEntry
	selected   int
	offset     int

	extensions []string

	err error

	width  int
	height int
}

// NewFilePickerModel creates a picker rooted at dir that lists
// subdirectories and files with one of the extensions.
func NewFilePickerModel(dir string, extensions ...string) FilePickerModel {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	m := FilePickerModel{
		currentDir: dir,
		extensions: extensions,
	}
	m.loadDir()
	return m
}

// SetSize updates the view dimensions.
func (m *FilePickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Dir returns the directory being shown.
func (m FilePickerModel) Dir() string { return m.currentDir }

// Entries returns the listed entries.
func (m FilePickerModel) Entries() []FileEntry { return m.entries }

func (m *FilePickerModel) loadDir() {
	m.entries = nil
	m.selected = 0
	m.offset = 0
	m.err = nil

	entries, err := os.ReadDir(m.currentDir)
	if err != nil {
		m.err = err
		return
	}

	if parent := filepath.Dir(m.currentDir); parent != m.currentDir {
		m.entries = append(m.entries, FileEntry{Name: "..", IsDir: true, Path: parent})
	}

	var dirs, files []FileEntry
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		fe := FileEntry{
			Name:  e.Name(),
			IsDir: e.IsDir(),
			Path:  filepath.Join(m.currentDir, e.Name()),
		}
		switch {
		case e.IsDir():
			dirs = append(dirs, fe)
		case m.matchesExtension(e.Name()):
			files = append(files, fe)
		}
	}

	byName := func(a, b FileEntry) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
	slices.SortFunc(dirs, byName)
	slices.SortFunc(files, byName)

	m.entries = append(m.entries, dirs...)
	m.entries = append(m.entries, files...)
}

func (m *FilePickerModel) matchesExtension(name string) bool {
	if len(m.extensions) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	return slices.ContainsFunc(m.extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

func (m *FilePickerModel) chdir(dir string) {
	m.currentDir = dir
	m.loadDir()
}

// Update handles messages.
func (m FilePickerModel) Update(msg tea.Msg) (FilePickerModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "j", "down":
		m.move(1)
	case "k", "up":
		m.move(-1)
	case "ctrl+d":
		m.move(m.visibleHeight() / 2)
	case "ctrl+u":
		m.move(-m.visibleHeight() / 2)
	case "g":
		m.move(-len(m.entries))
	case "G":
		m.move(len(m.entries))
	case "enter", "l", "right":
		if m.selected >= len(m.entries) {
			return m, nil
		}
		e := m.entries[m.selected]
		if e.IsDir {
			m.chdir(e.Path)
			return m, nil
		}
		return m, func() tea.Msg { return FileSelectedMsg{Path: e.Path} }
	case "backspace", "h":
		if parent := filepath.Dir(m.currentDir); parent != m.currentDir {
			m.chdir(parent)
		}
	case "~":
		if home, err := os.UserHomeDir(); err == nil {
			m.chdir(home)
		}
	}
	return m, nil
}

func (m *FilePickerModel) move(delta int) {
	if len(m.entries) == 0 {
		return
	}
	m.selected = max(0, min(m.selected+delta, len(m.entries)-1))

	h := m.visibleHeight()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+h {
		m.offset = m.selected - h + 1
	}
}

func (m FilePickerModel) visibleHeight() int {
	return max(m.height-10, 5)
}

// View renders the file picker.
func (m FilePickerModel) View() string {
	var b strings.Builder

	b.WriteString(fpPathStyle.Render(m.currentDir))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString(divider(m.width) + "\n")

	if len(m.entries) == 0 {
		b.WriteString(reasonStyle.Render("  (empty)") + "\n")
	}

	end := min(m.offset+m.visibleHeight(), len(m.entries))
	for i := m.offset; i < end; i++ {
		e := m.entries[i]
		line := "[FILE] " + e.Name
		style := fpFileStyle
		if e.IsDir {
			line = "[DIR]  " + e.Name
			style = fpDirStyle
		}
		prefix := "  "
		if i == m.selected {
			prefix = "> "
			style = selectedStyle
		}
		b.WriteString(prefix + style.Render(line) + "\n")
	}
	if len(m.entries) > m.visibleHeight() {
		b.WriteString(reasonStyle.Render("  ↕ scroll") + "\n")
	}
	b.WriteString(divider(m.width))

	return b.String()
}
