package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"thurianx/internal/domain/entity"
	"thurianx/internal/domain/port"
	"thurianx/internal/infrastructure/clock"
	"thurianx/internal/infrastructure/random"
	"thurianx/internal/infrastructure/storage"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeRenderer accepts anything but "bad" and echoes the bytes back.
type fakeRenderer struct{}

func (fakeRenderer) Render(ctx context.Context, data []byte) (*entity.RenderedPreview, error) {
	if len(data) == 0 {
		return nil, port.ErrEmptyImage
	}
	if string(data) == "bad" {
		return nil, port.ErrNotAnImage
	}
	return &entity.RenderedPreview{Data: data, ContentType: "image/jpeg", Width: 1, Height: 1}, nil
}

type fixture struct {
	repo     *storage.MemorySessionRepository
	previews *storage.MemoryPreviewStore
	clock    *clock.Manual
	sessions *SessionService
	classify *ClassificationService
}

func newFixture(seq ...entity.Outcome) *fixture {
	if len(seq) == 0 {
		seq = entity.Outcomes()
	}
	f := &fixture{
		repo:     storage.NewMemorySessionRepository(),
		previews: storage.NewMemoryPreviewStore(),
		clock:    clock.NewManual(t0),
	}
	f.sessions = NewSessionService(f.repo, f.previews, fakeRenderer{}, f.clock, entity.LanguageThai)
	f.classify = NewClassificationService(f.repo, random.NewSequenceSource(seq...), f.clock, DefaultAnalysisDelay, entity.DefaultHistoryLimit)
	return f
}

func (f *fixture) selectImage(t *testing.T, id, data string) entity.Session {
	t.Helper()
	s, err := f.sessions.SelectImage(context.Background(), id, Upload{Name: data + ".jpg", ContentType: "image/jpeg", Data: []byte(data)})
	require.NoError(t, err)
	return s
}

// analyze submits, advances the virtual clock past the delay and returns the
// final state.
func (f *fixture) analyze(t *testing.T, id string) entity.Session {
	t.Helper()
	done, ok, err := f.classify.Submit(context.Background(), id)
	require.NoError(t, err)
	require.True(t, ok)

	f.clock.Advance(DefaultAnalysisDelay)
	select {
	case s, open := <-done:
		require.True(t, open)
		return s
	case <-time.After(time.Second):
		t.Fatal("analysis did not complete")
		return entity.Session{}
	}
}
