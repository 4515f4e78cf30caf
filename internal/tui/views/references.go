package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/smt/internal/references"
)

var (
	refLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Bold(true)

	refLabelFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffe66d")).
				Bold(true)

	refHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)
)

// ReferencesModel edits the manual reference entries, one input per entry.
type ReferencesModel struct {
	inputs  []textinput.Model
	focused int
	active  bool

	width int
}

// NewReferencesModel creates inputs for entries.
func NewReferencesModel(entries []string) ReferencesModel {
	m := ReferencesModel{}
	m.Sync(entries)
	return m
}

func newReferenceInput(value string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a reference translation..."
	ti.Prompt = "› "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f1faee"))
	if width > 8 {
		ti.Width = width - 8
	}
	ti.SetValue(value)
	return ti
}

// Sync rebuilds the inputs from entries, typically after a file import.
// Focus moves to the first entry.
func (m *ReferencesModel) Sync(entries []string) {
	m.inputs = make([]textinput.Model, len(entries))
	for i, e := range entries {
		m.inputs[i] = newReferenceInput(e, m.width)
	}
	m.focused = 0
	if m.active {
		m.focusCurrent()
	}
}

// Append adds a blank input and focuses it.
func (m *ReferencesModel) Append() {
	m.inputs = append(m.inputs, newReferenceInput("", m.width))
	m.focused = len(m.inputs) - 1
	m.focusCurrent()
}

// Values returns the current input values in order.
func (m ReferencesModel) Values() []string {
	out := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		out[i] = in.Value()
	}
	return out
}

// Len returns the number of entries.
func (m ReferencesModel) Len() int { return len(m.inputs) }

// Focused returns the index of the focused entry.
func (m ReferencesModel) Focused() int { return m.focused }

// Focus activates the focused entry.
func (m *ReferencesModel) Focus() tea.Cmd {
	m.active = true
	return m.focusCurrent()
}

// Blur deactivates all entries.
func (m *ReferencesModel) Blur() {
	m.active = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *ReferencesModel) focusCurrent() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if m.focused >= len(m.inputs) {
		return nil
	}
	m.active = true
	return m.inputs[m.focused].Focus()
}

// SetSize updates the view width.
func (m *ReferencesModel) SetSize(width int) {
	m.width = width
	for i := range m.inputs {
		if width > 8 {
			m.inputs[i].Width = width - 8
		}
	}
}

// Update handles messages for the focused entry.
func (m ReferencesModel) Update(msg tea.Msg) (ReferencesModel, tea.Cmd) {
	if !m.active || len(m.inputs) == 0 {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up":
			if m.focused > 0 {
				m.focused--
			}
			cmd := m.focusCurrent()
			return m, cmd
		case "down", "enter":
			if m.focused < len(m.inputs)-1 {
				m.focused++
			}
			cmd := m.focusCurrent()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// View renders the labelled entries.
func (m ReferencesModel) View() string {
	var b strings.Builder
	for i, in := range m.inputs {
		style := refLabelStyle
		if m.active && i == m.focused {
			style = refLabelFocusedStyle
		}
		b.WriteString(style.Render(references.Label(i)))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString(refHelpStyle.Render("↑/↓: move • ctrl+n: add reference"))
	return b.String()
}
