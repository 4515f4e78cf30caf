// Package batch runs a list of translate-and-evaluate cases against the
// service and prints a fixed-width report.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/f3rmion/smt/internal/apperrors"
	"github.com/f3rmion/smt/internal/logger"
	"github.com/f3rmion/smt/internal/pipeline"
	"github.com/f3rmion/smt/internal/references"
	"github.com/f3rmion/smt/internal/smt"
)

// Case is one evaluation case.
type Case struct {
	Name       string   `yaml:"name"`
	SourceText string   `yaml:"source_text"`
	SourceLang string   `yaml:"source_lang"`
	TargetLang string   `yaml:"target_lang"`
	References []string `yaml:"references"`
}

// Status is the outcome bucket of a case.
type Status string

const (
	StatusPerfect Status = "PERFECT"
	StatusPass    Status = "PASS"
	StatusLow     Status = "LOW"
	StatusFail    Status = "FAIL"
)

// Classify buckets a BLEU score.
func Classify(score float64) Status {
	switch {
	case score == 1.0:
		return StatusPerfect
	case score > 0.5:
		return StatusPass
	case score > 0:
		return StatusLow
	default:
		return StatusFail
	}
}

// Result is the outcome of one case. Err is set when the case could not be
// executed.
type Result struct {
	Case        Case
	Translation string
	Evaluation  smt.EvaluationResult
	Status      Status
	Err         error
}

// NoEvaluationMessage reports a combined response without a BLEU evaluation.
const NoEvaluationMessage = "No BLEU evaluation returned"

// CombinedService calls the single-round-trip endpoint.
type CombinedService interface {
	TranslateAndEvaluate(ctx context.Context, req smt.CombinedRequest) (smt.CombinedResponse, error)
}

// Runner executes cases sequentially.
type Runner struct {
	svc      pipeline.Service
	combined CombinedService
	recorder pipeline.Recorder
	log      *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithCombined sends each case to the combined endpoint instead of running
// translate and evaluate separately.
func WithCombined(c CombinedService) Option {
	return func(r *Runner) { r.combined = c }
}

// WithRecorder records every successful case.
func WithRecorder(rec pipeline.Recorder) Option {
	return func(r *Runner) { r.recorder = rec }
}

// NewRunner creates a runner over svc.
func NewRunner(svc pipeline.Service, opts ...Option) *Runner {
	r := &Runner{svc: svc, log: logger.For("batch")}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every case and returns the report. It stops early only when
// ctx is cancelled.
func (r *Runner) Run(ctx context.Context, cases []Case) Report {
	rep := Report{Results: make([]Result, 0, len(cases))}
	for i, c := range cases {
		if err := ctx.Err(); err != nil {
			rep.Results = append(rep.Results, Result{Case: c, Status: StatusFail, Err: err})
			continue
		}

		var res Result
		if r.combined != nil {
			res = r.runCombined(ctx, c)
		} else {
			res = r.runPipeline(ctx, c)
		}
		r.log.Info("case done", "case", i+1, "name", c.Name, "status", string(res.Status), "bleu_score", res.Evaluation.BLEUScore)
		rep.Results = append(rep.Results, res)
	}
	return rep
}

// runPipeline drives a fresh pipeline through translate then evaluate.
func (r *Runner) runPipeline(ctx context.Context, c Case) Result {
	opts := []pipeline.Option{pipeline.WithReferences(references.FromEntries(c.References))}
	if r.recorder != nil {
		opts = append(opts, pipeline.WithRecorder(r.recorder))
	}
	p := pipeline.New(r.svc, opts...)

	if err := p.Translate(ctx, c.SourceText, c.SourceLang, c.TargetLang); err != nil {
		return Result{Case: c, Status: StatusFail, Err: err}
	}
	if err := p.Evaluate(ctx); err != nil {
		return Result{Case: c, Translation: p.State().TranslatedText(), Status: StatusFail, Err: err}
	}

	ev, _ := p.LastEvaluation()
	return Result{
		Case:        c,
		Translation: p.State().TranslatedText(),
		Evaluation:  ev,
		Status:      Classify(ev.BLEUScore),
	}
}

func (r *Runner) runCombined(ctx context.Context, c Case) Result {
	req := smt.CombinedRequest{
		SourceText: strings.TrimSpace(c.SourceText),
		SourceLang: c.SourceLang,
		TargetLang: c.TargetLang,
		References: references.FromEntries(c.References).Collect(),
	}
	src := smt.TranslationRequest{SourceText: req.SourceText, SourceLang: req.SourceLang, TargetLang: req.TargetLang}
	if err := pipeline.ValidateTranslation(src); err != nil {
		return Result{Case: c, Status: StatusFail, Err: err}
	}

	resp, err := r.combined.TranslateAndEvaluate(ctx, req)
	if err != nil {
		return Result{Case: c, Status: StatusFail, Err: err}
	}

	if resp.Evaluation == nil {
		return Result{Case: c, Translation: resp.TranslatedText, Status: StatusFail,
			Err: apperrors.New(apperrors.KindService, NoEvaluationMessage, nil)}
	}

	res := Result{Case: c, Translation: resp.TranslatedText, Evaluation: *resp.Evaluation}
	if r.recorder != nil {
		rec := pipeline.EvaluationRecord{
			Source:  src,
			Request: smt.EvaluationRequest{Candidate: resp.TranslatedText, References: req.References},
			Result:  res.Evaluation,
		}
		if rerr := r.recorder.RecordEvaluation(rec); rerr != nil {
			r.log.Warn("recording evaluation failed", "error", rerr)
		}
	}
	res.Status = Classify(res.Evaluation.BLEUScore)
	return res
}

// LoadCases reads a YAML case file with a top-level "cases" list.
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cases file: %w", err)
	}

	var file struct {
		Cases []Case `yaml:"cases"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing cases file: %w", err)
	}
	if len(file.Cases) == 0 {
		return nil, apperrors.EmptyInput(fmt.Sprintf("no cases in %s", path))
	}

	for i := range file.Cases {
		if file.Cases[i].Name == "" {
			file.Cases[i].Name = fmt.Sprintf("%s to %s", file.Cases[i].SourceLang, file.Cases[i].TargetLang)
		}
	}
	return file.Cases, nil
}

// DefaultCases is the built-in multi-language case set.
func DefaultCases() []Case {
	return []Case{
		{
			Name:       "English to Hindi",
			SourceText: "The weather is beautiful today.",
			SourceLang: "en",
			TargetLang: "hi",
			References: []string{
				"आज मौसम बहुत सुंदर है।",
				"आज मौसम सुहावना है।",
				"आज का मौसम बहुत अच्छा है।",
				"आज मौसम ख़ूबसूरत है.",
			},
		},
		{
			Name:       "English to Hindi (Complex)",
			SourceText: "Artificial intelligence creates new opportunities for everyone.",
			SourceLang: "en",
			TargetLang: "hi",
			References: []string{
				"कृत्रिम बुद्धिमत्ता सभी के लिए नए अवसर पैदा करती है।",
				"एआई सभी के लिए नए मौके बनाता है।",
				"आर्टिफिशियल इंटेलिजेंस सबके लिए नए अवसर लाता है।",
			},
		},
		{
			Name:       "English to French",
			SourceText: "Machine translation is useful.",
			SourceLang: "en",
			TargetLang: "fr",
			References: []string{
				"La traduction automatique est utile.",
				"La traduction par machine est pratique.",
			},
		},
		{
			Name:       "English to Spanish",
			SourceText: "I love learning new languages.",
			SourceLang: "en",
			TargetLang: "es",
			References: []string{
				"Me encanta aprender nuevos idiomas.",
				"Amo aprender lenguas nuevas.",
			},
		},
		{
			Name:       "English to German",
			SourceText: "This is a test of the system.",
			SourceLang: "en",
			TargetLang: "de",
			References: []string{
				"Dies ist ein Test des Systems.",
				"Das ist eine Prüfung des Systems.",
			},
		},
		{
			Name:       "English to Italian",
			SourceText: "I would like to order a large pizza please.",
			SourceLang: "en",
			TargetLang: "it",
			References: []string{
				"Vorrei ordinare una pizza grande per favore.",
				"Mi piacerebbe ordinare una grande pizza per favore.",
			},
		},
		{
			Name:       "English to Portuguese",
			SourceText: "Thank you very much for your help.",
			SourceLang: "en",
			TargetLang: "pt",
			References: []string{
				"Muito obrigado pela sua ajuda.",
				"Obrigado por ajudar.",
			},
		},
	}
}
