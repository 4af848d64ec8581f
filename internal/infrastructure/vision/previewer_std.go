//go:build !gocv
// +build !gocv

package vision

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"thurianx/internal/domain/entity"
	"thurianx/internal/domain/port"
)

// Previewer renders previews in pure Go when built without OpenCV.
type Previewer struct {
	MaxSide int
	Quality int
}

// NewPreviewer creates a renderer that keeps the longest side within maxSide.
func NewPreviewer(maxSide int) *Previewer {
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	return &Previewer{MaxSide: maxSide, Quality: DefaultQuality}
}

// Render decodes the upload, shrinks it and re-encodes it as JPEG.
func (p *Previewer) Render(ctx context.Context, imageData []byte) (*entity.RenderedPreview, error) {
	if len(imageData) == 0 {
		return nil, port.ErrEmptyImage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrNotAnImage, err)
	}

	b := src.Bounds()
	w, h := fitWithin(b.Dx(), b.Dy(), p.MaxSide)
	if w == 0 || h == 0 {
		return nil, port.ErrEmptyImage
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}

	return &entity.RenderedPreview{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Width:       w,
		Height:      h,
	}, nil
}

var _ port.PreviewRenderer = (*Previewer)(nil)
