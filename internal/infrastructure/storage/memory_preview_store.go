package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"thurianx/internal/domain/entity"
	"thurianx/internal/domain/port"
)

type storedPreview struct {
	meta entity.Preview
	data []byte
}

// MemoryPreviewStore keeps preview bytes in memory until released.
type MemoryPreviewStore struct {
	mu       sync.RWMutex
	previews map[string]storedPreview
}

// NewMemoryPreviewStore creates an empty store.
func NewMemoryPreviewStore() *MemoryPreviewStore {
	return &MemoryPreviewStore{
		previews: make(map[string]storedPreview),
	}
}

// Put stores the rendered preview under a new random ID.
func (s *MemoryPreviewStore) Put(ctx context.Context, rendered *entity.RenderedPreview) (entity.Preview, error) {
	if rendered == nil || len(rendered.Data) == 0 {
		return entity.Preview{}, port.ErrEmptyImage
	}

	meta := entity.Preview{
		ID:          uuid.NewString(),
		ContentType: rendered.ContentType,
		Width:       rendered.Width,
		Height:      rendered.Height,
		Size:        len(rendered.Data),
	}
	data := append([]byte(nil), rendered.Data...)

	s.mu.Lock()
	s.previews[meta.ID] = storedPreview{meta: meta, data: data}
	s.mu.Unlock()

	return meta, nil
}

// Open returns the bytes of a stored preview.
func (s *MemoryPreviewStore) Open(ctx context.Context, id string) ([]byte, entity.Preview, error) {
	s.mu.RLock()
	p, exists := s.previews[id]
	s.mu.RUnlock()

	if !exists {
		return nil, entity.Preview{}, port.ErrPreviewNotFound
	}
	return p.data, p.meta, nil
}

// Release drops the preview.
func (s *MemoryPreviewStore) Release(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.previews, id)
	s.mu.Unlock()
	return nil
}

// Len returns the number of previews currently held.
func (s *MemoryPreviewStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.previews)
}

var _ port.PreviewStore = (*MemoryPreviewStore)(nil)
