// Package tui provides the interactive terminal UI for the SMT client.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // title, same-language warning
	ColorSecondary = lipgloss.Color("#4ecdc4") // focus, enabled buttons
	ColorAccent    = lipgloss.Color("#ffe66d") // languages, active tab, busy
	ColorMuted     = lipgloss.Color("#666666")
	ColorSuccess   = lipgloss.Color("#a8e6cf")
	ColorText      = lipgloss.Color("#f1faee")
	ColorLabel     = lipgloss.Color("#a8dadc")
	ColorBg        = lipgloss.Color("#1a1a2e")
	ColorBgAlt     = lipgloss.Color("#2d3436")
	ColorBorder    = lipgloss.Color("#3d5a80")
)

var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Background(ColorBg).Padding(0, 1)
	LabelStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorLabel)

	// Panes hold the source textarea, reference inputs and results.
	PaneStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorBorder).Padding(0, 1)
	PaneFocusedStyle = PaneStyle.BorderForeground(ColorSecondary)

	LanguageStyle     = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	LanguageSameStyle = LanguageStyle.Foreground(ColorPrimary)

	// Translate and Evaluate buttons.
	ButtonStyle         = lipgloss.NewStyle().Bold(true).Foreground(ColorBg).Background(ColorSecondary).Padding(0, 2)
	ButtonBusyStyle     = ButtonStyle.Background(ColorAccent)
	ButtonDisabledStyle = lipgloss.NewStyle().Foreground(ColorMuted).Background(ColorBgAlt).Padding(0, 2)

	TabStyle       = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 2)
	TabActiveStyle = TabStyle.Bold(true).Foreground(ColorAccent).Background(ColorBgAlt)

	HelpStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	CopiedStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	ContentStyle = lipgloss.NewStyle().Padding(1, 2)
)
