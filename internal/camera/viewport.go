package camera

import "math"

// DefaultMaxPixelRatio bounds fill-rate on high density displays.
const DefaultMaxPixelRatio = 2.0

// Viewport tracks the logical size of the render surface and the pixel ratio
// used to size its backing framebuffer.
type Viewport struct {
	Width, Height int
	PixelRatio    float64
	MaxPixelRatio float64
}

func NewViewport(w, h int, maxPixelRatio float64) *Viewport {
	if maxPixelRatio <= 0 {
		maxPixelRatio = DefaultMaxPixelRatio
	}
	v := &Viewport{MaxPixelRatio: maxPixelRatio}
	v.Resize(w, h, 1)
	return v
}

// Resize records a new logical size and device pixel ratio, capping the ratio
// at MaxPixelRatio. It reports whether anything changed.
func (v *Viewport) Resize(w, h int, devicePixelRatio float64) bool {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if devicePixelRatio <= 0 || math.IsNaN(devicePixelRatio) {
		devicePixelRatio = 1
	}
	ratio := math.Min(devicePixelRatio, v.MaxPixelRatio)
	changed := w != v.Width || h != v.Height || ratio != v.PixelRatio
	v.Width, v.Height, v.PixelRatio = w, h, ratio
	return changed
}

// Aspect is width over height.
func (v *Viewport) Aspect() float64 {
	return float64(v.Width) / float64(v.Height)
}

// FramebufferSize returns the pixel dimensions of the drawing buffer.
func (v *Viewport) FramebufferSize() (int, int) {
	return int(math.Round(float64(v.Width) * v.PixelRatio)), int(math.Round(float64(v.Height) * v.PixelRatio))
}
