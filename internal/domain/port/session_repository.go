package port

import (
	"context"
	"errors"
	"time"

	"thurianx/internal/domain/entity"
)

// ErrSessionNotFound is returned when no session has the requested ID.
var ErrSessionNotFound = errors.New("session not found")

// UpdateFunc computes the next session state from the current one.
type UpdateFunc func(current entity.Session) (entity.Session, error)

// SessionRepository stores view sessions.
type SessionRepository interface {
	// Get returns the session by ID or ErrSessionNotFound
	Get(ctx context.Context, id string) (entity.Session, error)

	// GetOrCreate returns the session by ID, storing init if it is missing
	GetOrCreate(ctx context.Context, id string, init entity.Session) (entity.Session, error)

	// Update applies fn atomically and stores its result
	Update(ctx context.Context, id string, fn UpdateFunc) (entity.Session, error)

	// Delete removes the session and returns its last state
	Delete(ctx context.Context, id string) (entity.Session, error)

	// DeleteIf removes the session only when pred holds for its current
	// state, reporting whether it was removed
	DeleteIf(ctx context.Context, id string, pred func(entity.Session) bool) (entity.Session, bool, error)

	// IdleSince lists sessions not processing and not updated after before
	IdleSince(ctx context.Context, before time.Time) ([]string, error)
}
