//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"

	"gocv.io/x/gocv"

	"thurianx/internal/domain/entity"
	"thurianx/internal/domain/port"
)

// Previewer renders previews with OpenCV.
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

	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	w, h := fitWithin(mat.Cols(), mat.Rows(), p.MaxSide)
	if w != mat.Cols() || h != mat.Rows() {
		resized := gocv.NewMat()
		gocv.Resize(mat, &resized, image.Pt(w, h), 0, 0, gocv.InterpolationArea)
		mat.Close()
		mat = resized
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert mat: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}

	return &entity.RenderedPreview{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Width:       w,
		Height:      h,
	}, nil
}

// decodeToMat turns image bytes into a gocv.Mat. On error the returned Mat
// holds no native memory and needs no Close.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil {
		return gocv.Mat{}, port.ErrNotAnImage
	}
	if mat.Empty() {
		// an empty decode result still owns a native handle
		mat.Close()
		return gocv.Mat{}, port.ErrNotAnImage
	}
	return mat, nil
}

var _ port.PreviewRenderer = (*Previewer)(nil)
