package views

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/smt/internal/history"
	"github.com/f3rmion/smt/internal/render"
)

const historyTextWidth = 32

// RenderHistory renders recorded evaluations as a table, newest first as
// given.
func RenderHistory(entries []history.Entry) string {
	if len(entries) == 0 {
		return statLabelStyle.UnsetWidth().Render("No evaluations recorded yet.")
	}

	cells := make([][]string, 0, len(entries))
	for _, e := range entries {
		cells = append(cells, []string{
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.SourceLang + " → " + e.TargetLang,
			runewidth.Truncate(e.SourceText, historyTextWidth, "..."),
			runewidth.Truncate(e.Candidate, historyTextWidth, "..."),
			render.FormatDecimal(e.BLEUScore),
			e.Quality,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80"))).
		Headers("When", "Pair", "Source", "Translation", "BLEU", "Quality").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Render()
}
