package viz

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/galaxy/internal/camera"
	"github.com/san-kum/galaxy/internal/scene"
)

// Exposure scales the light one additive particle contributes to its cell.
const Exposure = 0.35

// guideColor is the light of the ground guide; particles add on top of it.
var guideColor = colorful.Color{R: 0.12, G: 0.12, B: 0.18}

// guideSegments is how many pieces each axis is split into for clipping.
const guideSegments = 32

// DrawGuide draws the x and z axes of the galactic plane out to extent.
// Segments with an end outside the view frustum are skipped.
func DrawGuide(c *Canvas, proj camera.Projector, extent float64) {
	for _, axis := range [2][3]float64{{1, 0, 0}, {0, 0, 1}} {
		var px, py float64
		prev := false
		for i := 0; i <= guideSegments; i++ {
			t := extent * (2*float64(i)/guideSegments - 1)
			sx, sy, _, ok := proj.Project(axis[0]*t, axis[1]*t, axis[2]*t)
			if ok && prev {
				c.DrawLine(int(px), int(py), int(sx), int(sy), guideColor)
			}
			px, py, prev = sx, sy, ok
		}
	}
}

// DrawScene projects every live object of s onto c. Objects with more than
// maxDrawn particles are strided and brightened to keep the total light
// constant; maxDrawn <= 0 draws everything.
func DrawScene(c *Canvas, s *scene.Scene, proj camera.Projector, maxDrawn int) int {
	drawn := 0
	s.Each(func(r *scene.Renderable) {
		if r.Released() || r.Buffer == nil {
			return
		}
		drawn += drawObject(c, r, proj, maxDrawn)
	})
	return drawn
}

func drawObject(c *Canvas, r *scene.Renderable, proj camera.Projector, maxDrawn int) int {
	buf := r.Buffer
	stride := 1
	if maxDrawn > 0 && buf.Count > maxDrawn {
		stride = int(math.Ceil(float64(buf.Count) / float64(maxDrawn)))
	}
	weight := Exposure * float64(stride)
	additive := r.Material.Blending == scene.BlendAdditive

	drawn := 0
	for i := 0; i < buf.Count; i += stride {
		x, y, z := buf.Position(i)
		sx, sy, _, ok := proj.Project(float64(x), float64(y), float64(z))
		if !ok {
			continue
		}
		cr, cg, cb := buf.Color(i)
		col := colorful.Color{R: float64(cr), G: float64(cg), B: float64(cb)}
		if additive {
			c.Add(int(sx), int(sy), colorful.Color{R: col.R * weight, G: col.G * weight, B: col.B * weight})
		} else {
			c.Paint(int(sx), int(sy), col)
		}
		drawn++
	}
	return drawn
}
