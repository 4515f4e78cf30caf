package batch

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/smt/internal/apperrors"
	"github.com/f3rmion/smt/internal/render"
)

const (
	pairWidth   = 25
	sourceWidth = 40
	scoreWidth  = 8
	statusWidth = 10
	ruleWidth   = 120
)

// Report aggregates the results of a run.
type Report struct {
	Results []Result
}

// Total is the number of cases.
func (r Report) Total() int { return len(r.Results) }

// Succeeded is the number of cases that executed without error, whatever
// their score.
func (r Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// AverageBLEU is the summed score of succeeded cases divided by the total
// number of cases.
func (r Report) AverageBLEU() float64 {
	if len(r.Results) == 0 {
		return 0
	}
	var sum float64
	for _, res := range r.Results {
		if res.Err == nil {
			sum += res.Evaluation.BLEUScore
		}
	}
	return sum / float64(len(r.Results))
}

// Write prints the report table and summary.
func (r Report) Write(w io.Writer) error {
	var b strings.Builder

	heavy := strings.Repeat("=", ruleWidth)
	b.WriteString(heavy + "\n")
	writeRow(&b, "LANGUAGE PAIR", "SOURCE TEXT", "BLEU", "STATUS", "DETAILS")
	b.WriteString(heavy + "\n")

	for _, res := range r.Results {
		if res.Err != nil {
			writeRow(&b, res.Case.Name, TruncateSource(res.Case.SourceText), "ERROR", string(StatusFail), apperrors.PublicMessage(res.Err))
			continue
		}
		writeRow(&b, res.Case.Name, TruncateSource(res.Case.SourceText),
			render.FormatDecimal(res.Evaluation.BLEUScore), string(res.Status), precisionSummary(res))
	}

	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	fmt.Fprintf(&b, "Total Tests: %d\n", r.Total())
	fmt.Fprintf(&b, "Successful Executions: %d/%d\n", r.Succeeded(), r.Total())
	fmt.Fprintf(&b, "Average BLEU Score: %s\n", render.FormatDecimal(r.AverageBLEU()))
	b.WriteString(strings.Repeat("=", 80) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, pair, source, score, status, details string) {
	fmt.Fprintf(b, "%s | %s | %s | %s | %s\n",
		runewidth.FillRight(pair, pairWidth),
		runewidth.FillRight(source, sourceWidth),
		runewidth.FillRight(score, scoreWidth),
		runewidth.FillRight(status, statusWidth),
		details,
	)
}

// TruncateSource shortens text longer than 40 characters to 37 characters
// followed by "...".
func TruncateSource(text string) string {
	runes := []rune(text)
	if len(runes) <= sourceWidth {
		return text
	}
	return string(runes[:sourceWidth-3]) + "..."
}

func precisionSummary(res Result) string {
	parts := make([]string, 0, len(res.Evaluation.PrecisionDetails))
	for _, p := range res.Evaluation.PrecisionDetails {
		parts = append(parts, p.Label+":"+render.FormatDecimal(p.Value))
	}
	return strings.Join(parts, ", ")
}
