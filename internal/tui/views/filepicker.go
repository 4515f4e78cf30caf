package views

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FileSelectedMsg is sent when a reference file is chosen.
type FileSelectedMsg struct {
	Path string
}

// ReferenceExtensions are the file types offered for reference import.
var ReferenceExtensions = []string{".txt"}

var (
	pickerHeadingStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#4ecdc4"))

	pickerDirNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Italic(true)

	pickerFolderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4ecdc4"))

	pickerFileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	pickerCursorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436"))

	pickerHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	pickerErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b"))
)

// FileEntry is a file or directory in the listing.
type FileEntry struct {
	Name  string
	IsDir bool
	Path  string
}

// listDir returns the parent link, then visible directories, then files
// matching exts, each group sorted case-insensitively.
func listDir(dir string, exts []string) ([]FileEntry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var dirs, files []FileEntry
	for _, de := range des {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		fe := FileEntry{Name: name, IsDir: de.IsDir(), Path: filepath.Join(dir, name)}
		switch {
		case fe.IsDir:
			dirs = append(dirs, fe)
		case hasExtension(name, exts):
			files = append(files, fe)
		}
	}

	byName := func(a, b FileEntry) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
	slices.SortFunc(dirs, byName)
	slices.SortFunc(files, byName)

	var out []FileEntry
	if parent := filepath.Dir(dir); parent != dir {
		out = append(out, FileEntry{Name: "..", IsDir: true, Path: parent})
	}
	out = append(out, dirs...)
	return append(out, files...), nil
}

func hasExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	return slices.ContainsFunc(exts, func(e string) bool { return strings.EqualFold(e, ext) })
}

// FilePickerModel browses the filesystem for a reference file.
type FilePickerModel struct {
	dir     string
	entries []FileEntry
	err     error

	cursor int
	top    int // first visible row

	exts   []string
	chosen string

	width  int
	height int
}

// NewFilePickerModel creates a picker rooted at dir. An empty dir falls
// back to the working directory, then the home directory.
func NewFilePickerModel(dir string) FilePickerModel {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	if dir == "" {
		dir, _ = os.UserHomeDir()
	}
	if dir == "" {
		dir = string(filepath.Separator)
	}

	m := FilePickerModel{exts: ReferenceExtensions}
	m.open(dir)
	return m
}

// SetSize updates the view dimensions.
func (m *FilePickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Dir returns the directory being listed.
func (m FilePickerModel) Dir() string { return m.dir }

// Entries returns the current listing.
func (m FilePickerModel) Entries() []FileEntry { return m.entries }

// Chosen returns the last chosen file, if any.
func (m FilePickerModel) Chosen() string { return m.chosen }

// Reset forgets the chosen file and re-lists the directory so the same file
// can be chosen again.
func (m *FilePickerModel) Reset() {
	m.chosen = ""
	m.open(m.dir)
}

func (m *FilePickerModel) open(dir string) {
	m.dir = dir
	m.cursor, m.top = 0, 0
	m.entries, m.err = listDir(dir, m.exts)
}

func (m *FilePickerModel) rows() int {
	return max(m.height-6, 5)
}

// move shifts the cursor by delta and keeps it inside the visible window.
func (m *FilePickerModel) move(delta int) {
	if len(m.entries) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.entries)-1)
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if rows := m.rows(); m.cursor >= m.top+rows {
		m.top = m.cursor - rows + 1
	}
}

// Update handles key presses. Choosing a file emits FileSelectedMsg.
func (m FilePickerModel) Update(msg tea.Msg) (FilePickerModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "down", "j":
		m.move(1)
	case "up", "k":
		m.move(-1)
	case "enter", "right", "l":
		if m.cursor >= len(m.entries) {
			break
		}
		e := m.entries[m.cursor]
		if e.IsDir {
			m.open(e.Path)
			break
		}
		m.chosen = e.Path
		return m, func() tea.Msg { return FileSelectedMsg{Path: e.Path} }
	case "backspace", "left", "h":
		if parent := filepath.Dir(m.dir); parent != m.dir {
			m.open(parent)
		}
	case "~":
		if home, err := os.UserHomeDir(); err == nil {
			m.open(home)
		}
	}
	return m, nil
}

// View renders the picker.
func (m FilePickerModel) View() string {
	lines := []string{
		pickerHeadingStyle.Render(fmt.Sprintf("Select Reference File (%s)", strings.Join(m.exts, ", "))),
		pickerDirNameStyle.Render(m.dir),
	}

	switch {
	case m.err != nil:
		lines = append(lines, pickerErrStyle.Render("Cannot read directory: "+m.err.Error()))
	case len(m.entries) == 0:
		lines = append(lines, pickerHintStyle.Render("  nothing to import here"))
	}

	end := min(m.top+m.rows(), len(m.entries))
	for i := m.top; i < end; i++ {
		e := m.entries[i]
		label := e.Name
		style := pickerFileStyle
		if e.IsDir {
			label += "/"
			style = pickerFolderStyle
		}
		if i == m.cursor {
			lines = append(lines, pickerCursorStyle.Render("▸ "+label))
			continue
		}
		lines = append(lines, "  "+style.Render(label))
	}

	if hidden := len(m.entries) - end; hidden > 0 {
		lines = append(lines, pickerHintStyle.Render(fmt.Sprintf("  … %d more", hidden)))
	}
	lines = append(lines, "", pickerHintStyle.Render("enter: open/load • backspace: up • ~: home"))
	return strings.Join(lines, "\n")
}
