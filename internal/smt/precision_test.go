package smt

import (
	"encoding/json"
	"testing"
)

func TestPrecisionsKeepServiceOrder(t *testing.T) {
	body := `{"bleu_score":0.42,"precision_details":{"4-gram":0.1,"1-gram":0.9,"3-gram":0.3,"2-gram":0.6},"brevity_penalty":1,"candidate_length":5,"reference_length":6}`

	var res EvaluationResult
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := []string{"4-gram", "1-gram", "3-gram", "2-gram"}
	if len(res.PrecisionDetails) != len(want) {
		t.Fatalf("got %d precisions, want %d", len(res.PrecisionDetails), len(want))
	}
	for i, label := range want {
		if res.PrecisionDetails[i].Label != label {
			t.Errorf("precision[%d] = %q, want %q", i, res.PrecisionDetails[i].Label, label)
		}
	}

	if v, ok := res.PrecisionDetails.Get("3-gram"); !ok || v != 0.3 {
		t.Errorf("Get(3-gram) = (%v, %v), want (0.3, true)", v, ok)
	}
	if res.CandidateLength != 5 || res.ReferenceLength != 6 {
		t.Errorf("lengths = %d/%d, want 5/6", res.CandidateLength, res.ReferenceLength)
	}
}

func TestPrecisionsRejectNonObject(t *testing.T) {
	var p Precisions
	if err := json.Unmarshal([]byte(`[1,2]`), &p); err == nil {
		t.Fatal("expected error for array input")
	}
	if err := json.Unmarshal([]byte(`{"1-gram":"high"}`), &p); err == nil {
		t.Fatal("expected error for non-numeric precision")
	}
}

func TestPrecisionsDuplicateKeyKeepsFirstPosition(t *testing.T) {
	var p Precisions
	if err := json.Unmarshal([]byte(`{"1-gram":0.9,"2-gram":0.6,"1-gram":0.5}`), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := Precisions{{Label: "1-gram", Value: 0.5}, {Label: "2-gram", Value: 0.6}}
	if len(p) != len(want) {
		t.Fatalf("got %v, want %v", p, want)
	}
	for i := range want {
		if p[i] != want[i] {
			t.Errorf("precision[%d] = %+v, want %+v", i, p[i], want[i])
		}
	}
}

func TestPrecisionsNull(t *testing.T) {
	p := Precisions{{Label: "1-gram", Value: 1}}
	if err := json.Unmarshal([]byte(`null`), &p); err != nil {
		t.Fatalf("Unmarshal(null) error = %v", err)
	}
	if p != nil {
		t.Errorf("expected nil precisions, got %v", p)
	}
}

func TestPrecisionsMarshalOrder(t *testing.T) {
	p := Precisions{{Label: "2-gram", Value: 0.5}, {Label: "1-gram", Value: 1}}
	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(out), `{"2-gram":0.5,"1-gram":1}`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}

func TestLanguageLabel(t *testing.T) {
	if got := (Language{Code: "hi", Name: "Hindi"}).Label(); got != "Hindi" {
		t.Errorf("Label() = %q, want Hindi", got)
	}
	if got := (Language{Code: "hi"}).Label(); got != "hi" {
		t.Errorf("Label() = %q, want hi", got)
	}
}
