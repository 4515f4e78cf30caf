package render

import (
	"testing"

	"github.com/f3rmion/smt/internal/smt"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  Quality
	}{
		{0, QualityPoor},
		{0.2999, QualityPoor},
		{0.3, QualityFair},
		{0.4999, QualityFair},
		{0.5, QualityGood},
		{0.6999, QualityGood},
		{0.7, QualityExcellent},
		{1, QualityExcellent},
	}

	for _, tt := range tests {
		if got := Classify(tt.score); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.score, got.Label, tt.want.Label)
		}
	}
}

func TestEvaluationPerfectScore(t *testing.T) {
	res := smt.EvaluationResult{
		BLEUScore: 1.0,
		PrecisionDetails: smt.Precisions{
			{Label: "1-gram", Value: 1.0},
			{Label: "2-gram", Value: 1.0},
		},
		BrevityPenalty:  1.0,
		CandidateLength: 2,
		ReferenceLength: 2,
	}

	v := Evaluation(res)
	if v.Quality.Label != "Excellent Quality" {
		t.Errorf("Quality = %q", v.Quality.Label)
	}
	if v.Score != "1.0000" || v.BrevityPenalty != "1.0000" {
		t.Errorf("Score/BP = %q/%q", v.Score, v.BrevityPenalty)
	}
	if v.CandidateLength != "2" || v.ReferenceLength != "2" {
		t.Errorf("lengths = %q/%q", v.CandidateLength, v.ReferenceLength)
	}

	want := []PrecisionRow{
		{NGram: "1-gram", Precision: "1.0000", Percent: "100.00%"},
		{NGram: "2-gram", Precision: "1.0000", Percent: "100.00%"},
	}
	if len(v.Rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(v.Rows), len(want))
	}
	for i := range want {
		if v.Rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, v.Rows[i], want[i])
		}
	}
}

func TestEvaluationRowsFollowServiceOrder(t *testing.T) {
	res := smt.EvaluationResult{
		BLEUScore: 0.4123,
		PrecisionDetails: smt.Precisions{
			{Label: "3-gram", Value: 0.25},
			{Label: "1-gram", Value: 0.8333},
		},
	}

	v := Evaluation(res)
	if v.Rows[0].NGram != "3-gram" || v.Rows[1].NGram != "1-gram" {
		t.Errorf("rows out of order: %+v", v.Rows)
	}
	if v.Rows[1].Percent != "83.33%" || v.Rows[0].Precision != "0.2500" {
		t.Errorf("formatting: %+v", v.Rows)
	}
	if v.Quality != QualityFair {
		t.Errorf("Quality = %q", v.Quality.Label)
	}
}

func TestEvaluationEmptyPrecisions(t *testing.T) {
	v := Evaluation(smt.EvaluationResult{})
	if len(v.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(v.Rows))
	}
	if v.Score != "0.0000" || v.Quality != QualityPoor {
		t.Errorf("zero result = %+v", v)
	}
}

func TestScreenTransitions(t *testing.T) {
	var s Screen
	s.ShowEvaluation(EvaluationView{Score: "0.5000"})
	if !s.EvaluationVisible || s.TakeScroll() != TargetEvaluation {
		t.Fatal("evaluation should be visible and scrolled to")
	}

	s.ShowTranslation(Translation("Hola mundo"))
	if !s.TranslationVisible || s.Translation.Text != "Hola mundo" {
		t.Errorf("translation = %+v", s.Translation)
	}
	if s.EvaluationVisible {
		t.Error("new translation must hide the evaluation area")
	}
	if got := s.TakeScroll(); got != TargetTranslation {
		t.Errorf("TakeScroll() = %v, want translation", got)
	}
	if got := s.TakeScroll(); got != TargetNone {
		t.Errorf("TakeScroll() should clear, got %v", got)
	}
}
