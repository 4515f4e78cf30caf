// Package smt provides the core request and result types exchanged with the
// translation and evaluation service.
package smt

// TranslationRequest is the payload of POST /translate.
type TranslationRequest struct {
	SourceText string `json:"source_text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// TranslationResponse is the success body of POST /translate.
type TranslationResponse struct {
	TranslatedText string `json:"translated_text"`
	SourceLang     string `json:"source_lang,omitempty"`
	TargetLang     string `json:"target_lang,omitempty"`
}

// EvaluationRequest is the payload of POST /evaluate_bleu.
type EvaluationRequest struct {
	Candidate  string   `json:"candidate"`
	References []string `json:"references"`
}

// EvaluationResult is the success body of POST /evaluate_bleu.
type EvaluationResult struct {
	BLEUScore        float64    `json:"bleu_score"`
	PrecisionDetails Precisions `json:"precision_details"`
	BrevityPenalty   float64    `json:"brevity_penalty"`
	CandidateLength  int        `json:"candidate_length"`
	ReferenceLength  int        `json:"reference_length"`
}

// CombinedRequest is the payload of POST /translate_and_evaluate.
type CombinedRequest struct {
	SourceText string   `json:"source_text"`
	SourceLang string   `json:"source_lang"`
	TargetLang string   `json:"target_lang"`
	References []string `json:"references"`
}

// CombinedResponse is the success body of POST /translate_and_evaluate.
// Evaluation is nil when no usable references were sent.
type CombinedResponse struct {
	TranslatedText string            `json:"translated_text"`
	SourceLang     string            `json:"source_lang,omitempty"`
	TargetLang     string            `json:"target_lang,omitempty"`
	Evaluation     *EvaluationResult `json:"bleu_evaluation"`
}

// ErrorResponse is the failure body returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Language is a selectable language in the client.
type Language struct {
	Code string `yaml:"code" json:"code"` // BCP 47 tag, e.g. "en", "hi"
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

// Label returns the display name, falling back to the code.
func (l Language) Label() string {
	if l.Name != "" {
		return l.Name
	}
	return l.Code
}
