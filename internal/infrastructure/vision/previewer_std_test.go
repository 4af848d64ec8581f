//go:build !gocv

package vision

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"thurianx/internal/domain/port"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: 160, B: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPreviewer_RenderDownscales(t *testing.T) {
	p := NewPreviewer(64)

	out, err := p.Render(context.Background(), pngBytes(t, 256, 128))
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", out.ContentType)
	require.Equal(t, 64, out.Width)
	require.Equal(t, 32, out.Height)

	decoded, err := jpeg.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	require.Equal(t, 64, decoded.Bounds().Dx())
	require.Equal(t, 32, decoded.Bounds().Dy())
}

func TestPreviewer_RenderKeepsSmallImages(t *testing.T) {
	out, err := NewPreviewer(0).Render(context.Background(), pngBytes(t, 40, 30))
	require.NoError(t, err)
	require.Equal(t, 40, out.Width)
	require.Equal(t, 30, out.Height)
}

func TestPreviewer_RejectsNonImages(t *testing.T) {
	p := NewPreviewer(64)

	_, err := p.Render(context.Background(), nil)
	require.ErrorIs(t, err, port.ErrEmptyImage)

	_, err = p.Render(context.Background(), []byte("definitely not an image"))
	require.ErrorIs(t, err, port.ErrNotAnImage)
}
