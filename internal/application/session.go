package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"thurianx/internal/domain/entity"
	"thurianx/internal/domain/port"
)

// Upload is an image picked by the user, as received by a transport.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// SessionService owns the lifecycle of view sessions and their previews.
type SessionService struct {
	repo        port.SessionRepository
	previews    port.PreviewStore
	renderer    port.PreviewRenderer
	clock       port.Clock
	defaultLang entity.Language
}

// NewSessionService creates the service. New sessions start in defaultLang.
func NewSessionService(repo port.SessionRepository, previews port.PreviewStore, renderer port.PreviewRenderer, clock port.Clock, defaultLang entity.Language) *SessionService {
	return &SessionService{
		repo:        repo,
		previews:    previews,
		renderer:    renderer,
		clock:       clock,
		defaultLang: defaultLang,
	}
}

// Open returns the session, mounting a fresh one if it does not exist.
func (s *SessionService) Open(ctx context.Context, id string) (entity.Session, error) {
	return s.repo.GetOrCreate(ctx, id, entity.NewSession(id, s.defaultLang, s.clock.Now()))
}

// Get returns an existing session.
func (s *SessionService) Get(ctx context.Context, id string) (entity.Session, error) {
	return s.repo.Get(ctx, id)
}

// SelectImage renders a preview for the upload and makes it the session's
// selected image. The superseded preview is released. A failed render leaves
// the session untouched.
func (s *SessionService) SelectImage(ctx context.Context, id string, upload Upload) (entity.Session, error) {
	if _, err := s.Open(ctx, id); err != nil {
		return entity.Session{}, err
	}

	rendered, err := s.renderer.Render(ctx, upload.Data)
	if err != nil {
		return entity.Session{}, fmt.Errorf("render preview: %w", err)
	}

	preview, err := s.previews.Put(ctx, rendered)
	if err != nil {
		return entity.Session{}, fmt.Errorf("store preview: %w", err)
	}

	var superseded *entity.Preview
	next, err := s.repo.Update(ctx, id, func(cur entity.Session) (entity.Session, error) {
		img := entity.SelectedImage{
			Name:        upload.Name,
			ContentType: upload.ContentType,
			Size:        len(upload.Data),
		}
		var updated entity.Session
		updated, superseded = cur.SelectImage(img, preview, s.clock.Now())
		return updated, nil
	})
	if err != nil {
		s.release(ctx, id, &preview)
		return entity.Session{}, err
	}
	s.release(ctx, id, superseded)

	log.Info().
		Str("session", id).
		Str("preview", preview.ID).
		Int("size", len(upload.Data)).
		Msg("image selected")

	return next, nil
}

// ToggleLanguage flips the session language.
func (s *SessionService) ToggleLanguage(ctx context.Context, id string) (entity.Session, error) {
	if _, err := s.Open(ctx, id); err != nil {
		return entity.Session{}, err
	}
	return s.repo.Update(ctx, id, func(cur entity.Session) (entity.Session, error) {
		return cur.ToggleLanguage(s.clock.Now()), nil
	})
}

// Preview returns the preview bytes if previewID belongs to the session.
func (s *SessionService) Preview(ctx context.Context, id, previewID string) ([]byte, entity.Preview, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, entity.Preview{}, err
	}
	if sess.Preview == nil || sess.Preview.ID != previewID {
		return nil, entity.Preview{}, port.ErrPreviewNotFound
	}
	return s.previews.Open(ctx, previewID)
}

// Close tears the session down and releases its preview. Closing an unknown
// session is a no-op.
func (s *SessionService) Close(ctx context.Context, id string) error {
	sess, err := s.repo.Delete(ctx, id)
	if errors.Is(err, port.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	s.release(ctx, id, sess.Preview)
	log.Debug().Str("session", id).Msg("session closed")
	return nil
}

// ExpireIdle closes sessions idle for longer than ttl and returns how many
// were closed. Sessions with an analysis in flight are kept.
func (s *SessionService) ExpireIdle(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := s.clock.Now().Add(-ttl)
	ids, err := s.repo.IdleSince(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list idle sessions: %w", err)
	}

	// a listed session may have become active since; check again under the lock
	stillIdle := func(cur entity.Session) bool {
		return !cur.Processing && cur.UpdatedAt.Before(cutoff)
	}

	closed := 0
	for _, id := range ids {
		sess, deleted, err := s.repo.DeleteIf(ctx, id, stillIdle)
		switch {
		case errors.Is(err, port.ErrSessionNotFound):
			continue
		case err != nil:
			log.Warn().Err(err).Str("session", id).Msg("failed to expire session")
			continue
		case !deleted:
			continue
		}
		s.release(ctx, id, sess.Preview)
		closed++
	}
	if closed > 0 {
		log.Info().Int("count", closed).Msg("expired idle sessions")
	}
	return closed, nil
}

func (s *SessionService) release(ctx context.Context, id string, p *entity.Preview) {
	if p == nil {
		return
	}
	if err := s.previews.Release(ctx, p.ID); err != nil {
		log.Warn().Err(err).Str("session", id).Str("preview", p.ID).Msg("failed to release preview")
	}
}
