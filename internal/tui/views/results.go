package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/smt/internal/notify"
	"github.com/f3rmion/smt/internal/render"
)

// Result styles
var (
	resultTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#4ecdc4")).
				MarginBottom(1)

	translationStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffe66d")).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#3d5a80")).
				Padding(0, 1)

	scoreStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f1faee"))

	statLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Width(18)

	statValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#a8dadc")).
				Padding(0, 1)

	tableCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee")).
			Padding(0, 1)

	errorBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#f1faee")).
				Background(lipgloss.Color("#ef4444")).
				Padding(0, 1)

	successBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#1a1a2e")).
				Background(lipgloss.Color("#10b981")).
				Padding(0, 1)
)

// RenderNotification renders the notification banner, or "" when hidden.
func RenderNotification(n notify.Notification, width int) string {
	if !n.Visible {
		return ""
	}
	msg := n.Message
	if width > 4 {
		msg = runewidth.Truncate(msg, width-4, "…")
	}
	if n.Treatment == notify.TreatmentSuccess {
		return successBannerStyle.Render(msg)
	}
	return errorBannerStyle.Render(msg)
}

// RenderTranslation renders the translation result area.
func RenderTranslation(v render.TranslationView, width int) string {
	var b strings.Builder
	b.WriteString(resultTitleStyle.Render("Translation"))
	b.WriteString("\n")

	style := translationStyle
	if width > 4 {
		style = style.Width(width - 4)
	}
	b.WriteString(style.Render(v.Text))
	b.WriteString("\n")
	return b.String()
}

// RenderEvaluation renders the BLEU score, its quality badge, the n-gram
// precision table in service order and the length statistics.
func RenderEvaluation(v render.EvaluationView) string {
	var b strings.Builder
	b.WriteString(resultTitleStyle.Render("BLEU Evaluation"))
	b.WriteString("\n")

	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#1a1a2e")).
		Background(lipgloss.Color(v.Quality.Color)).
		Padding(0, 1).
		Render(v.Quality.Label)
	b.WriteString(scoreStyle.Render("Score: "+v.Score) + "  " + badge)
	b.WriteString("\n\n")

	if len(v.Rows) > 0 {
		b.WriteString(PrecisionTable(v.Rows))
		b.WriteString("\n\n")
	}

	b.WriteString(statLabelStyle.Render("Brevity penalty") + statValueStyle.Render(v.BrevityPenalty) + "\n")
	b.WriteString(statLabelStyle.Render("Candidate length") + statValueStyle.Render(v.CandidateLength) + "\n")
	b.WriteString(statLabelStyle.Render("Reference length") + statValueStyle.Render(v.ReferenceLength) + "\n")
	return b.String()
}

// PrecisionTable renders the n-gram precision rows.
func PrecisionTable(rows []render.PrecisionRow) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.NGram, r.Precision, r.Percent})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80"))).
		Headers("N-gram", "Precision", "Percent").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Render()
}
