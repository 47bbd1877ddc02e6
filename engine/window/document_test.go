package window

import (
	"errors"
	"image"
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentResolve(t *testing.T) {
	s := NewVirtualSurface("canvas", 800, 600, 2)
	doc := NewDocument(s)

	got, err := doc.Resolve("canvas")
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = doc.Resolve("missing")
	assert.True(t, errors.Is(err, common.ErrSurfaceNotFound))

	doc.Unregister("canvas")
	_, err = doc.Resolve("canvas")
	assert.ErrorIs(t, err, common.ErrSurfaceNotFound)
}

func TestVirtualSurfaceResize(t *testing.T) {
	s := NewVirtualSurface("v", 100, 50, 0.5)
	assert.Equal(t, float32(1), s.DevicePixelRatio())

	var gotW, gotH int
	s.SetResizeCallback(func(w, h int) { gotW, gotH = w, h })
	s.EmitResize(300, 200, 3)
	assert.Equal(t, 300, gotW)
	assert.Equal(t, 200, gotH)
	assert.Equal(t, float32(3), s.DevicePixelRatio())

	s.SetOrigin(image.Pt(10, 20))
	assert.Equal(t, image.Rect(10, 20, 310, 220), s.Bounds())
}
