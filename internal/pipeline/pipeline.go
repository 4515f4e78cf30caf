// Package pipeline orchestrates the translate and evaluate flows. Each flow
// is split into Begin and End phases so an event loop can run the network
// call asynchronously; Translate and Evaluate run both phases inline.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/f3rmion/smt/internal/apperrors"
	"github.com/f3rmion/smt/internal/logger"
	"github.com/f3rmion/smt/internal/notify"
	"github.com/f3rmion/smt/internal/references"
	"github.com/f3rmion/smt/internal/render"
	"github.com/f3rmion/smt/internal/session"
	"github.com/f3rmion/smt/internal/smt"
)

// ErrInFlight is returned when a flow is started while its control is
// disabled by a request in flight. It is never shown to the user.
var ErrInFlight = errors.New("request already in flight")

// ReadFailedMessage is shown when a reference file cannot be read.
const ReadFailedMessage = "Failed to read the file. Please try again."

// Service is the remote translation and evaluation service.
type Service interface {
	Translate(ctx context.Context, req smt.TranslationRequest) (smt.TranslationResponse, error)
	Evaluate(ctx context.Context, req smt.EvaluationRequest) (smt.EvaluationResult, error)
}

// Control is the interactive state of a button.
type Control struct {
	Enabled bool
	Busy    bool
}

// EvaluationRecord describes one completed evaluation.
type EvaluationRecord struct {
	Source  smt.TranslationRequest
	Request smt.EvaluationRequest
	Result  smt.EvaluationResult
}

// Recorder receives completed evaluations.
type Recorder interface {
	RecordEvaluation(rec EvaluationRecord) error
}

// Pipeline owns the session state and drives both flows.
type Pipeline struct {
	svc      Service
	state    *session.State
	refs     *references.Set
	notes    *notify.Channel
	screen   render.Screen
	recorder Recorder
	log      *slog.Logger

	translate Control
	evaluate  Control

	// translated is the request behind the current translatedText.
	translated smt.TranslationRequest
	lastResult *smt.EvaluationResult
	// pending snapshots taken when a flow enters in_flight.
	pendingTranslate smt.TranslationRequest
	pendingEvaluate  EvaluationRecord
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithNotifier replaces the default notification channel.
func WithNotifier(c *notify.Channel) Option {
	return func(p *Pipeline) {
		if c != nil {
			p.notes = c
		}
	}
}

// WithRecorder records every successful evaluation.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithReferences replaces the initial reference set.
func WithReferences(s *references.Set) Option {
	return func(p *Pipeline) {
		if s != nil {
			p.refs = s
		}
	}
}

// New creates a pipeline in its initial state: translate enabled, evaluate
// disabled until a translation succeeds.
func New(svc Service, opts ...Option) *Pipeline {
	p := &Pipeline{
		svc:       svc,
		state:     session.New(),
		refs:      references.NewSet(),
		notes:     notify.NewChannel(0),
		log:       logger.For("pipeline"),
		translate: Control{Enabled: true},
		evaluate:  Control{Enabled: false},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the session state.
func (p *Pipeline) State() *session.State { return p.state }

// References returns the reference set.
func (p *Pipeline) References() *references.Set { return p.refs }

// Notifications returns the notification channel.
func (p *Pipeline) Notifications() *notify.Channel { return p.notes }

// Screen returns the described result areas.
func (p *Pipeline) Screen() *render.Screen { return &p.screen }

// TranslateControl returns the translate button state.
func (p *Pipeline) TranslateControl() Control { return p.translate }

// EvaluateControl returns the evaluate button state.
func (p *Pipeline) EvaluateControl() Control { return p.evaluate }

// LastEvaluation returns the most recent successful evaluation.
func (p *Pipeline) LastEvaluation() (smt.EvaluationResult, bool) {
	if p.lastResult == nil {
		return smt.EvaluationResult{}, false
	}
	return *p.lastResult, true
}

// BeginTranslate validates the input and enters in_flight. Validation
// failures are shown immediately and no request must be sent.
func (p *Pipeline) BeginTranslate(source, sourceLang, targetLang string) (smt.TranslationRequest, error) {
	if p.translate.Busy {
		return smt.TranslationRequest{}, ErrInFlight
	}

	req := smt.TranslationRequest{
		SourceText: strings.TrimSpace(source),
		SourceLang: sourceLang,
		TargetLang: targetLang,
	}
	if err := ValidateTranslation(req); err != nil {
		p.showError(err)
		return smt.TranslationRequest{}, err
	}

	p.translate = Control{Enabled: false, Busy: true}
	p.notes.Hide()
	p.pendingTranslate = req
	p.log.Debug("translate in flight", "source_lang", req.SourceLang, "target_lang", req.TargetLang)
	return req, nil
}

// EndTranslate completes the translate flow with the service outcome and
// restores the translate control.
func (p *Pipeline) EndTranslate(resp smt.TranslationResponse, err error) error {
	p.translate = Control{Enabled: true}

	if err != nil {
		p.log.Warn("translate failed", "error", err)
		p.showFailure(err)
		return err
	}

	p.state.SetTranslatedText(resp.TranslatedText)
	p.translated = p.pendingTranslate
	p.screen.ShowTranslation(render.Translation(resp.TranslatedText))
	if !p.evaluate.Busy {
		p.evaluate.Enabled = true
	}
	p.log.Debug("translate done", "translated_text", resp.TranslatedText)
	return nil
}

// SetCandidate installs a translation produced elsewhere as the evaluation
// candidate, as if a translate flow had just succeeded.
func (p *Pipeline) SetCandidate(source smt.TranslationRequest, candidate string) {
	p.state.SetTranslatedText(candidate)
	p.translated = source
	p.screen.ShowTranslation(render.Translation(candidate))
	if !p.evaluate.Busy {
		p.evaluate.Enabled = true
	}
}

// BeginEvaluate checks the translate-first guard and the reference set,
// snapshots the payload and enters in_flight.
func (p *Pipeline) BeginEvaluate() (smt.EvaluationRequest, error) {
	if p.evaluate.Busy {
		return smt.EvaluationRequest{}, ErrInFlight
	}

	if !p.state.HasTranslation() {
		err := apperrors.NoTranslation()
		p.showError(err)
		return smt.EvaluationRequest{}, err
	}

	refs := p.refs.Collect()
	if len(refs) == 0 {
		err := apperrors.NoReferences()
		p.showError(err)
		return smt.EvaluationRequest{}, err
	}

	req := smt.EvaluationRequest{Candidate: p.state.TranslatedText(), References: refs}
	p.evaluate = Control{Enabled: false, Busy: true}
	p.notes.Hide()
	p.pendingEvaluate = EvaluationRecord{Source: p.translated, Request: req}
	p.log.Debug("evaluate in flight", "reference_count", len(refs))
	return req, nil
}

// EndEvaluate completes the evaluate flow and restores the evaluate control.
func (p *Pipeline) EndEvaluate(res smt.EvaluationResult, err error) error {
	p.evaluate = Control{Enabled: true}

	if err != nil {
		p.log.Warn("evaluate failed", "error", err)
		p.showFailure(err)
		return err
	}

	p.lastResult = &res
	p.screen.ShowEvaluation(render.Evaluation(res))
	p.log.Debug("evaluate done", "bleu_score", res.BLEUScore)

	if p.recorder != nil {
		rec := p.pendingEvaluate
		rec.Result = res
		if rerr := p.recorder.RecordEvaluation(rec); rerr != nil {
			p.log.Warn("recording evaluation failed", "error", rerr)
		}
	}
	return nil
}

// Translate runs the whole translate flow synchronously.
func (p *Pipeline) Translate(ctx context.Context, source, sourceLang, targetLang string) error {
	req, err := p.BeginTranslate(source, sourceLang, targetLang)
	if err != nil {
		return err
	}
	resp, err := p.svc.Translate(ctx, req)
	return p.EndTranslate(resp, err)
}

// Evaluate runs the whole evaluate flow synchronously.
func (p *Pipeline) Evaluate(ctx context.Context) error {
	req, err := p.BeginEvaluate()
	if err != nil {
		return err
	}
	res, err := p.svc.Evaluate(ctx, req)
	return p.EndEvaluate(res, err)
}

// Service exposes the underlying service for asynchronous callers.
func (p *Pipeline) Service() Service { return p.svc }

// ValidateTranslation applies the local checks that run before any request.
func ValidateTranslation(req smt.TranslationRequest) error {
	if strings.TrimSpace(req.SourceText) == "" {
		return apperrors.EmptyInput("")
	}
	if req.SourceLang == req.TargetLang {
		return apperrors.SameLanguage()
	}
	return nil
}

// SelectTab switches the reference-input tab.
func (p *Pipeline) SelectTab(t session.Tab) {
	p.state.SelectTab(t)
}

// AddReference appends a blank reference entry and returns its index.
func (p *Pipeline) AddReference() int {
	return p.refs.AddBlank()
}

// UpdateReference edits reference entry i.
func (p *Pipeline) UpdateReference(i int, text string) {
	p.refs.Update(i, text)
}

// ImportReferences replaces the reference set with the lines of a file.
// On success the manual tab becomes active and a success message is shown;
// the returned dismissal must be scheduled by the caller.
func (p *Pipeline) ImportReferences(contents string) (notify.Dismissal, error) {
	n, err := p.refs.LoadFromFile(contents)
	if err != nil {
		p.showError(err)
		return notify.Dismissal{}, err
	}

	p.state.SelectTab(session.TabManual)
	p.log.Debug("references imported", "count", n)
	return p.notes.ShowSuccess(fmt.Sprintf("Successfully loaded %d references from the file.", n)), nil
}

// ReadFailed reports a reference file that could not be read.
func (p *Pipeline) ReadFailed(err error) {
	p.log.Warn("reading reference file failed", "error", err)
	p.notes.ShowError(ReadFailedMessage)
	p.screen.ScrollTo(render.TargetNotification)
}

func (p *Pipeline) showError(err error) {
	p.notes.ShowError(apperrors.PublicMessage(err))
	p.screen.ScrollTo(render.TargetNotification)
}

// showFailure surfaces a service outcome. Errors without a kind come from a
// misbehaving Service implementation and are treated as transport errors.
func (p *Pipeline) showFailure(err error) {
	if _, ok := apperrors.KindOf(err); !ok {
		err = apperrors.Transport(err)
	}
	p.showError(err)
}
