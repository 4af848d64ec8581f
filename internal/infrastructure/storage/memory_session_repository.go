package storage

import (
	"context"
	"sync"
	"time"

	"thurianx/internal/domain/entity"
	"thurianx/internal/domain/port"
)

// MemorySessionRepository is an in-memory session store.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
}

// NewMemorySessionRepository creates an empty store.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]entity.Session),
	}
}

// Get returns the session by ID.
func (r *MemorySessionRepository) Get(ctx context.Context, id string) (entity.Session, error) {
	r.mu.RLock()
	s, exists := r.sessions[id]
	r.mu.RUnlock()

	if !exists {
		return entity.Session{}, port.ErrSessionNotFound
	}
	return s, nil
}

// GetOrCreate returns the session by ID, storing init when it is missing.
func (r *MemorySessionRepository) GetOrCreate(ctx context.Context, id string, init entity.Session) (entity.Session, error) {
	r.mu.RLock()
	s, exists := r.sessions[id]
	r.mu.RUnlock()

	if exists {
		return s, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// another request may have created it meanwhile
	if s, exists := r.sessions[id]; exists {
		return s, nil
	}
	init.ID = id
	r.sessions[id] = init
	return init, nil
}

// Update applies fn under the write lock. When fn fails nothing is stored.
func (r *MemorySessionRepository) Update(ctx context.Context, id string, fn port.UpdateFunc) (entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.sessions[id]
	if !exists {
		return entity.Session{}, port.ErrSessionNotFound
	}

	next, err := fn(current)
	if err != nil {
		return current, err
	}
	next.ID = id
	r.sessions[id] = next
	return next, nil
}

// Delete removes the session and returns its last state.
func (r *MemorySessionRepository) Delete(ctx context.Context, id string) (entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.sessions[id]
	if !exists {
		return entity.Session{}, port.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return s, nil
}

// DeleteIf removes the session when pred holds, checked under the write lock.
func (r *MemorySessionRepository) DeleteIf(ctx context.Context, id string, pred func(entity.Session) bool) (entity.Session, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.sessions[id]
	if !exists {
		return entity.Session{}, false, port.ErrSessionNotFound
	}
	if !pred(s) {
		return s, false, nil
	}
	delete(r.sessions, id)
	return s, true, nil
}

// IdleSince lists IDs of sessions that are not processing and were last
// updated before the given time.
func (r *MemorySessionRepository) IdleSince(ctx context.Context, before time.Time) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for id, s := range r.sessions {
		if s.Processing {
			continue
		}
		if s.UpdatedAt.Before(before) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Len returns the number of stored sessions.
func (r *MemorySessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

var _ port.SessionRepository = (*MemorySessionRepository)(nil)
