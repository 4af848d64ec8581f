package port

import (
	"context"
	"errors"

	"thurianx/internal/domain/entity"
)

var (
	// ErrEmptyImage is returned when no bytes were supplied
	ErrEmptyImage = errors.New("empty image")
	// ErrNotAnImage is returned when the bytes cannot be decoded as an image
	ErrNotAnImage = errors.New("not an image")
)

// PreviewRenderer turns an uploaded image into a displayable preview.
type PreviewRenderer interface {
	// Render decodes imageData and produces a downsized preview
	Render(ctx context.Context, imageData []byte) (*entity.RenderedPreview, error)
}
