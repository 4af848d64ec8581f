package port

import (
	"context"
	"errors"

	"thurianx/internal/domain/entity"
)

// ErrPreviewNotFound is returned for unknown or released previews.
var ErrPreviewNotFound = errors.New("preview not found")

// PreviewStore holds preview bytes between selection and release.
type PreviewStore interface {
	// Put stores a rendered preview under a fresh ID
	Put(ctx context.Context, rendered *entity.RenderedPreview) (entity.Preview, error)

	// Open returns the stored bytes
	Open(ctx context.Context, id string) ([]byte, entity.Preview, error)

	// Release frees the preview; releasing an unknown ID is not an error
	Release(ctx context.Context, id string) error
}
