package common

import (
	"fmt"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGB color. Components may exceed 1 to express over-bright tints;
// they are clamped only when converted to 8-bit output.
type Color struct {
	R, G, B float32
}

var (
	ColorBlack = Color{0, 0, 0}
	ColorWhite = Color{1, 1, 1}
)

// RGB is shorthand for constructing a Color.
func RGB(r, g, b float32) Color {
	return Color{r, g, b}
}

// HexColor parses a "#rrggbb" or "#rgb" string.
//
// Parameters:
//   - s: the hex string
//
// Returns:
//   - Color: the parsed color
//   - error: error if the string is not a valid hex color
func HexColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{float32(c.R), float32(c.G), float32(c.B)}, nil
}

// MustHexColor is HexColor for compile-time constants; it panics on malformed input.
func MustHexColor(s string) Color {
	c, err := HexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as "#rrggbb", clamping each channel to [0, 1].
func (c Color) Hex() string {
	return colorful.Color{R: float64(clamp01(c.R)), G: float64(clamp01(c.G)), B: float64(clamp01(c.B))}.Hex()
}

// Mul multiplies component-wise.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Add sums component-wise.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// RGBA converts to an opaque 8-bit color, clamping each channel.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 255}
}

// Luminance returns the Rec. 709 relative luminance.
func (c Color) Luminance() float32 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}

func to8(v float32) uint8 {
	return uint8(math32.Round(clamp01(v) * 255))
}
