// Package render turns translation and evaluation results into view
// descriptions. Nothing here touches a display; the TUI applies the
// descriptions to the terminal.
package render

import (
	"fmt"
	"strconv"

	"github.com/f3rmion/smt/internal/smt"
)

// Quality is a BLEU quality bucket with its display colour.
type Quality struct {
	Label string
	Color string
}

var (
	QualityPoor      = Quality{Label: "Poor Quality", Color: "#ef4444"}
	QualityFair      = Quality{Label: "Fair Quality", Color: "#f59e0b"}
	QualityGood      = Quality{Label: "Good Quality", Color: "#eab308"}
	QualityExcellent = Quality{Label: "Excellent Quality", Color: "#10b981"}
)

// Classify buckets a BLEU score. Lower bounds are inclusive.
func Classify(score float64) Quality {
	switch {
	case score < 0.3:
		return QualityPoor
	case score < 0.5:
		return QualityFair
	case score < 0.7:
		return QualityGood
	default:
		return QualityExcellent
	}
}

// TranslationView describes the translation result area.
type TranslationView struct {
	Text string
}

// PrecisionRow is one row of the n-gram precision table.
type PrecisionRow struct {
	NGram     string
	Precision string // 4 decimals
	Percent   string // 2 decimals with a % sign
}

// EvaluationView describes the evaluation result area.
type EvaluationView struct {
	Score           string
	Quality         Quality
	Rows            []PrecisionRow
	BrevityPenalty  string
	CandidateLength string
	ReferenceLength string
}

// Translation describes a translation result.
func Translation(text string) TranslationView {
	return TranslationView{Text: text}
}

// Evaluation describes an evaluation result. The precision table is built
// from scratch in the order the service returned it.
func Evaluation(res smt.EvaluationResult) EvaluationView {
	rows := make([]PrecisionRow, 0, len(res.PrecisionDetails))
	for _, p := range res.PrecisionDetails {
		rows = append(rows, PrecisionRow{
			NGram:     p.Label,
			Precision: FormatDecimal(p.Value),
			Percent:   FormatPercent(p.Value),
		})
	}

	return EvaluationView{
		Score:           FormatDecimal(res.BLEUScore),
		Quality:         Classify(res.BLEUScore),
		Rows:            rows,
		BrevityPenalty:  FormatDecimal(res.BrevityPenalty),
		CandidateLength: strconv.Itoa(res.CandidateLength),
		ReferenceLength: strconv.Itoa(res.ReferenceLength),
	}
}

// FormatDecimal formats v with four decimals.
func FormatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// FormatPercent formats a [0,1] ratio as a percentage with two decimals.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
