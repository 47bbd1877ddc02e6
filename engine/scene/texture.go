package scene

import (
	"image"
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/chewxy/math32"
)

// Texture is a 2D image sampled with UV coordinates.
type Texture struct {
	mu       sync.RWMutex
	img      *image.RGBA
	disposed bool
}

// NewTexture wraps img.
//
// Parameters:
//   - img: the texture pixels
//
// Returns:
//   - *Texture: the texture
func NewTexture(img *image.RGBA) *Texture {
	return &Texture{img: img}
}

// Image returns the pixels, or nil once disposed.
func (t *Texture) Image() *image.RGBA {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.img
}

// Dispose drops the pixel storage. It is safe to call more than once.
func (t *Texture) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.img = nil
	t.disposed = true
}

// Sample returns the nearest texel at uv. UV (0, 0) is the bottom-left corner of the image
// and coordinates outside [0, 1] wrap. A disposed texture samples white.
func (t *Texture) Sample(uv common.Vec2) common.Color {
	img := t.Image()
	if img == nil {
		return common.ColorWhite
	}
	return sampleImage(img, uv.X, 1-uv.Y)
}

// Clone returns a texture with its own copy of the pixels. Cloning a disposed texture
// yields a disposed texture.
func (t *Texture) Clone() *Texture {
	img := t.Image()
	if img == nil {
		return &Texture{disposed: true}
	}
	cp := image.NewRGBA(img.Rect)
	copy(cp.Pix, img.Pix)
	return &Texture{img: cp}
}

func (t *Texture) Disposed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.disposed
}

// CubeFace indexes the six faces of a cube texture in +X, -X, +Y, -Y, +Z, -Z order.
type CubeFace int

const (
	CubePosX CubeFace = iota
	CubeNegX
	CubePosY
	CubeNegY
	CubePosZ
	CubeNegZ
)

// CubeTexture is six square images forming an environment around the viewer.
type CubeTexture struct {
	faces [6]*image.RGBA
}

// NewCubeTexture builds a cube texture from faces in +X, -X, +Y, -Y, +Z, -Z order.
func NewCubeTexture(faces [6]*image.RGBA) *CubeTexture {
	return &CubeTexture{faces: faces}
}

// Face returns the image for face f.
func (c *CubeTexture) Face(f CubeFace) *image.RGBA {
	return c.faces[f]
}

// Sample returns the color seen looking along dir from the cube center.
//
// Parameters:
//   - dir: view direction, need not be normalized
//
// Returns:
//   - common.Color: the sampled color, black for a missing face
func (c *CubeTexture) Sample(dir common.Vec3) common.Color {
	ax, ay, az := math32.Abs(dir.X), math32.Abs(dir.Y), math32.Abs(dir.Z)
	var face CubeFace
	var u, v, m float32
	switch {
	case ax >= ay && ax >= az:
		m = ax
		if dir.X > 0 {
			face, u, v = CubePosX, -dir.Z, -dir.Y
		} else {
			face, u, v = CubeNegX, dir.Z, -dir.Y
		}
	case ay >= az:
		m = ay
		if dir.Y > 0 {
			face, u, v = CubePosY, dir.X, dir.Z
		} else {
			face, u, v = CubeNegY, dir.X, -dir.Z
		}
	default:
		m = az
		if dir.Z > 0 {
			face, u, v = CubePosZ, dir.X, -dir.Y
		} else {
			face, u, v = CubeNegZ, -dir.X, -dir.Y
		}
	}
	if m == 0 {
		return common.ColorBlack
	}
	return sampleImage(c.faces[face], 0.5*(u/m+1), 0.5*(v/m+1))
}

// sampleImage returns the nearest texel at normalized coordinates, wrapping out-of-range values.
func sampleImage(img *image.RGBA, u, v float32) common.Color {
	if img == nil {
		return common.ColorBlack
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return common.ColorBlack
	}
	u -= math32.Floor(u)
	v -= math32.Floor(v)
	x := min(int(u*float32(w)), w-1)
	y := min(int(v*float32(h)), h-1)
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	return common.Color{
		R: float32(img.Pix[i]) / 255,
		G: float32(img.Pix[i+1]) / 255,
		B: float32(img.Pix[i+2]) / 255,
	}
}
