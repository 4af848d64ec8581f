package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func selected(t *testing.T, s Session, previewID string) Session {
	t.Helper()
	next, _ := s.SelectImage(
		SelectedImage{Name: previewID + ".jpg", ContentType: "image/jpeg", Size: 10},
		Preview{ID: previewID, ContentType: "image/jpeg"},
		t0,
	)
	return next
}

func TestNewSession_Defaults(t *testing.T) {
	s := NewSession("abc", LanguageThai, t0)
	require.Equal(t, "abc", s.ID)
	require.Equal(t, LanguageThai, s.Language)
	require.Nil(t, s.Image)
	require.Nil(t, s.Preview)
	require.False(t, s.Processing)
	require.Empty(t, s.Result)
	require.Empty(t, s.History)
	require.Equal(t, PhaseIdle, s.Phase())
	require.False(t, s.CanSubmit())
}

func TestSession_SelectImageClearsResultAndReturnsOldPreview(t *testing.T) {
	s := selected(t, NewSession("s", LanguageThai, t0), "p1")
	require.NotNil(t, s.Preview)
	require.True(t, s.CanSubmit())

	s, ok := s.BeginAnalysis("run", t0)
	require.True(t, ok)
	s, _ = s.CompleteAnalysis("run", OutcomeRipe, DefaultHistoryLimit, t0)
	require.Equal(t, PhaseResult, s.Phase())

	next, old := s.SelectImage(SelectedImage{Name: "b.png"}, Preview{ID: "p2"}, t0.Add(time.Second))
	require.NotNil(t, old)
	require.Equal(t, "p1", old.ID)
	require.Equal(t, "p2", next.Preview.ID)
	require.Empty(t, next.Result)
	require.Equal(t, []Outcome{OutcomeRipe}, next.History)
	require.Equal(t, PhaseIdle, next.Phase())

	// receiver untouched
	require.Equal(t, "p1", s.Preview.ID)
	require.Equal(t, OutcomeRipe, s.Result)
}

func TestSession_BeginAnalysisGuards(t *testing.T) {
	empty := NewSession("s", LanguageThai, t0)
	same, ok := empty.BeginAnalysis("run", t0)
	require.False(t, ok)
	require.Equal(t, empty, same)

	s := selected(t, empty, "p1")
	processing, ok := s.BeginAnalysis("run", t0)
	require.True(t, ok)
	require.Equal(t, PhaseProcessing, processing.Phase())

	again, ok := processing.BeginAnalysis("run", t0)
	require.False(t, ok)
	require.Equal(t, processing, again)
}

func TestSession_ProcessingHidesStaleResult(t *testing.T) {
	s := selected(t, NewSession("s", LanguageThai, t0), "p1")
	s, _ = s.BeginAnalysis("run", t0)
	s, _ = s.CompleteAnalysis("run", OutcomeUnripe, DefaultHistoryLimit, t0)
	require.True(t, s.ShowsResult())

	s, ok := s.BeginAnalysis("run", t0)
	require.True(t, ok)
	require.False(t, s.ShowsResult())
	require.Equal(t, PhaseProcessing, s.Phase())
}

func TestSession_ToggleLanguageOnlyChangesLanguage(t *testing.T) {
	s := selected(t, NewSession("s", LanguageThai, t0), "p1")
	s, _ = s.BeginAnalysis("run", t0)
	s, _ = s.CompleteAnalysis("run", OutcomeReadyToCut, DefaultHistoryLimit, t0)

	toggled := s.ToggleLanguage(t0)
	require.Equal(t, LanguageEnglish, toggled.Language)
	require.Equal(t, s.Image, toggled.Image)
	require.Equal(t, s.Preview, toggled.Preview)
	require.Equal(t, s.Result, toggled.Result)
	require.Equal(t, s.History, toggled.History)

	require.Equal(t, LanguageThai, toggled.ToggleLanguage(t0).Language)
}

func TestSession_HistoryCappedMostRecentFirst(t *testing.T) {
	seq := []Outcome{OutcomeUnripe, OutcomeReadyToCut, OutcomeRipe, OutcomeUndetermined, OutcomeUnripe, OutcomeRipe}
	s := selected(t, NewSession("s", LanguageThai, t0), "p1")
	for i, o := range seq {
		var ok bool
		s, ok = s.BeginAnalysis("run", t0)
		require.True(t, ok)
		s, _ = s.CompleteAnalysis("run", o, DefaultHistoryLimit, t0)
		require.Equal(t, o, s.History[0])
		require.LessOrEqual(t, len(s.History), DefaultHistoryLimit, "after %d submissions", i+1)
	}
	require.Equal(t, []Outcome{OutcomeRipe, OutcomeUnripe, OutcomeUndetermined, OutcomeRipe, OutcomeReadyToCut}, s.History)
}

func TestPrependHistory_DoesNotAliasInput(t *testing.T) {
	in := []Outcome{OutcomeRipe, OutcomeUnripe}
	out := PrependHistory(in, OutcomeReadyToCut, 0)
	out[1] = OutcomeUndetermined
	require.Equal(t, []Outcome{OutcomeRipe, OutcomeUnripe}, in)
}

func TestSession_CompleteAnalysisRejectsOtherRuns(t *testing.T) {
	s := selected(t, NewSession("s", LanguageThai, t0), "p1")

	// not processing at all
	same, ok := s.CompleteAnalysis("run", OutcomeRipe, DefaultHistoryLimit, t0)
	require.False(t, ok)
	require.Equal(t, s, same)

	s, _ = s.BeginAnalysis("second", t0)
	same, ok = s.CompleteAnalysis("first", OutcomeRipe, DefaultHistoryLimit, t0)
	require.False(t, ok)
	require.Equal(t, s, same)
	require.True(t, same.Processing)

	done, ok := s.CompleteAnalysis("second", OutcomeRipe, DefaultHistoryLimit, t0)
	require.True(t, ok)
	require.False(t, done.Processing)
	require.Empty(t, done.AnalysisID)
}
