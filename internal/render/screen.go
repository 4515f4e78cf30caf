package render

// Target is the area the viewport should move to.
type Target int

const (
	TargetNone Target = iota
	TargetTranslation
	TargetEvaluation
	TargetNotification
)

// Screen is the described state of the result areas.
type Screen struct {
	TranslationVisible bool
	EvaluationVisible  bool
	Translation        TranslationView
	Evaluation         EvaluationView
	// Scroll is the most recent viewport request.
	Scroll Target
}

// ShowTranslation reveals the translation area. A new translation makes any
// previous score irrelevant, so the evaluation area is hidden.
func (s *Screen) ShowTranslation(v TranslationView) {
	s.Translation = v
	s.TranslationVisible = true
	s.EvaluationVisible = false
	s.Scroll = TargetTranslation
}

// ShowEvaluation reveals the evaluation area, replacing any previous
// evaluation wholesale.
func (s *Screen) ShowEvaluation(v EvaluationView) {
	s.Evaluation = v
	s.EvaluationVisible = true
	s.Scroll = TargetEvaluation
}

// ScrollTo records a viewport request.
func (s *Screen) ScrollTo(t Target) {
	s.Scroll = t
}

// TakeScroll returns and clears the pending viewport request.
func (s *Screen) TakeScroll() Target {
	t := s.Scroll
	s.Scroll = TargetNone
	return t
}
