package fx

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// scaleInto resamples src over the whole of dst.
func scaleInto(dst, src *image.RGBA) {
	draw.ApproxBiLinear.Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)
}

// resized returns img resampled to width x height.
func resized(img image.Image, width, height int) *image.RGBA {
	out := resize.Resize(uint(max(width, 1)), uint(max(height, 1)), img, resize.Bilinear)
	if rgba, ok := out.(*image.RGBA); ok {
		return rgba
	}
	return clone.AsRGBA(out)
}

// copyInto copies src into dst, resampling when the sizes differ.
func copyInto(dst, src *image.RGBA) {
	if dst.Rect.Eq(src.Rect) && dst.Stride == src.Stride {
		copy(dst.Pix, src.Pix)
		return
	}
	if dst.Rect.Size() == src.Rect.Size() {
		draw.Copy(dst, dst.Rect.Min, src, src.Rect, draw.Src, nil)
		return
	}
	scaleInto(dst, src)
}
