package present

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeadless(t *testing.T) (Presenter, *headlessPresenterBackend) {
	t.Helper()
	p, err := NewPresenter(WithBackendType(BackendTypeHeadless), WithPresentMode(PresentModeVSync))
	require.NoError(t, err)
	b := p.(*presenter).backend.(*headlessPresenterBackend)
	return p, b
}

func fill(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestPresentRequiresConfiguration(t *testing.T) {
	p, _ := newHeadless(t)
	assert.Error(t, p.Present(fill(2, 2, color.RGBA{A: 255})))
	assert.Error(t, p.Present(nil))
}

func TestPresentUploadsMatchingFrame(t *testing.T) {
	p, b := newHeadless(t)
	require.NoError(t, p.Resize(4, 2))
	assert.Equal(t, PresentModeVSync, b.mode)

	frame := fill(4, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	require.NoError(t, p.Present(frame))
	assert.Equal(t, 1, b.frames)
	assert.Equal(t, frame.Pix, b.last)
}

func TestPresentScalesMismatchedFrame(t *testing.T) {
	p, b := newHeadless(t)
	require.NoError(t, p.Resize(8, 8))

	require.NoError(t, p.Present(fill(2, 2, color.RGBA{R: 200, A: 255})))
	require.Len(t, b.last, 8*8*4)
	assert.InDelta(t, 200, int(b.last[0]), 1)
	assert.InDelta(t, 255, int(b.last[3]), 1)
}

func TestUnknownBackendFails(t *testing.T) {
	_, err := NewPresenter(WithBackendType(PresenterBackendType(99)))
	assert.Error(t, err)
}

func TestWGPUBackendNeedsDescriptor(t *testing.T) {
	_, err := NewPresenter()
	assert.Error(t, err)
}
