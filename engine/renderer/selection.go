package renderer

// MaskValue classifies one pixel of a Selection.
type MaskValue uint8

const (
	// MaskNone marks pixels no selected surface covers.
	MaskNone MaskValue = iota

	// MaskVisible marks selected pixels that are the nearest surface.
	MaskVisible

	// MaskHidden marks selected pixels occluded by another surface.
	MaskHidden
)

// Selection is a per-pixel mask of selected meshes, row-major from the top-left corner.
type Selection struct {
	Width  int
	Height int
	Mask   []MaskValue
}

// NewSelection allocates an empty selection mask.
func NewSelection(width, height int) *Selection {
	return &Selection{Width: width, Height: height, Mask: make([]MaskValue, width*height)}
}

// At returns the mask value at (x, y), or MaskNone outside the mask.
func (s *Selection) At(x, y int) MaskValue {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return MaskNone
	}
	return s.Mask[y*s.Width+x]
}

// Count returns how many pixels carry value v.
func (s *Selection) Count(v MaskValue) int {
	n := 0
	for _, m := range s.Mask {
		if m == v {
			n++
		}
	}
	return n
}
