package entity

import "time"

// DefaultHistoryLimit is how many past outcomes a session keeps.
const DefaultHistoryLimit = 5

// Phase is the position of a session in the classification cycle.
type Phase string

const (
	PhaseIdle       Phase = "idle"        // nothing to show yet
	PhaseProcessing Phase = "processing"  // analysis in flight
	PhaseResult     Phase = "with_result" // idle with a result on screen
)

// Session is the state of one mounted capture-and-classify view.
//
// Transitions are value methods that return the next state and never modify
// the receiver, so callers can apply them under a repository lock.
type Session struct {
	ID         string
	Image      *SelectedImage
	Preview    *Preview
	Processing bool
	AnalysisID string  // identifies the running analysis, empty when idle
	Result     Outcome // empty when there is no result
	History    []Outcome
	Language   Language
	UpdatedAt  time.Time
}

// NewSession creates a session with default values.
func NewSession(id string, lang Language, now time.Time) Session {
	return Session{
		ID:        id,
		Language:  lang,
		UpdatedAt: now,
	}
}

// Phase derives the cycle position. Processing wins over a stale result.
func (s Session) Phase() Phase {
	switch {
	case s.Processing:
		return PhaseProcessing
	case s.Result != "":
		return PhaseResult
	default:
		return PhaseIdle
	}
}

// HasImage reports whether an image is selected.
func (s Session) HasImage() bool {
	return s.Image != nil
}

// CanSubmit reports whether SubmitForAnalysis would start an analysis.
func (s Session) CanSubmit() bool {
	return s.HasImage() && !s.Processing
}

// ShowsResult reports whether the result line is visible.
func (s Session) ShowsResult() bool {
	return s.Result != "" && !s.Processing
}

// SelectImage replaces the selected image and its preview and clears the
// current result. The superseded preview, if any, is returned so the caller
// can release it.
func (s Session) SelectImage(img SelectedImage, preview Preview, now time.Time) (Session, *Preview) {
	old := s.Preview
	next := s.clone()
	next.Image = &img
	next.Preview = &preview
	next.Result = ""
	next.UpdatedAt = now
	return next, old
}

// ToggleLanguage flips the display language and touches nothing else.
func (s Session) ToggleLanguage(now time.Time) Session {
	next := s.clone()
	next.Language = s.Language.Toggle()
	next.UpdatedAt = now
	return next
}

// BeginAnalysis enters the processing phase under analysisID. It reports
// false, leaving the state unchanged, when no image is selected or an
// analysis is running.
func (s Session) BeginAnalysis(analysisID string, now time.Time) (Session, bool) {
	if !s.CanSubmit() {
		return s, false
	}
	next := s.clone()
	next.Processing = true
	next.AnalysisID = analysisID
	next.UpdatedAt = now
	return next, true
}

// CompleteAnalysis records the drawn outcome and leaves the processing phase.
// It reports false, leaving the state unchanged, unless analysisID is the
// analysis this session is running.
func (s Session) CompleteAnalysis(analysisID string, o Outcome, historyLimit int, now time.Time) (Session, bool) {
	if !s.Processing || s.AnalysisID != analysisID {
		return s, false
	}
	next := s.clone()
	next.Result = o
	next.History = PrependHistory(s.History, o, historyLimit)
	next.Processing = false
	next.AnalysisID = ""
	next.UpdatedAt = now
	return next, true
}

// PrependHistory returns a new slice with o first, truncated to limit entries.
// A non-positive limit falls back to DefaultHistoryLimit.
func PrependHistory(history []Outcome, o Outcome, limit int) []Outcome {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	n := len(history) + 1
	if n > limit {
		n = limit
	}
	out := make([]Outcome, 0, n)
	out = append(out, o)
	for _, h := range history {
		if len(out) == n {
			break
		}
		out = append(out, h)
	}
	return out
}

// clone copies the session deeply enough that the copy can be changed
// without affecting s.
func (s Session) clone() Session {
	next := s
	if s.Image != nil {
		img := *s.Image
		next.Image = &img
	}
	if s.Preview != nil {
		p := *s.Preview
		next.Preview = &p
	}
	if s.History != nil {
		next.History = append([]Outcome(nil), s.History...)
	}
	return next
}
