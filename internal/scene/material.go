package scene

import "github.com/san-kum/galaxy/internal/galaxy"

// Blending selects how overlapping point colors combine.
type Blending int

const (
	BlendNormal Blending = iota
	BlendAdditive
)

func (b Blending) String() string {
	switch b {
	case BlendAdditive:
		return "additive"
	default:
		return "normal"
	}
}

// Material is the point-rendering configuration of a renderable.
type Material struct {
	Size            float64
	Blending        Blending
	DepthWrite      bool
	VertexColors    bool
	SizeAttenuation bool
	Transparent     bool
}

// MaterialFor returns the galaxy point material: additive, no depth writes,
// per-vertex color and perspective size attenuation.
func MaterialFor(p galaxy.Parameters) Material {
	return Material{
		Size:            p.Size,
		Blending:        BlendAdditive,
		DepthWrite:      false,
		VertexColors:    true,
		SizeAttenuation: true,
		Transparent:     true,
	}
}

// SolidMaterial is the opaque, depth-tested material of static geometry.
func SolidMaterial(size float64) Material {
	return Material{
		Size:            size,
		Blending:        BlendNormal,
		DepthWrite:      true,
		VertexColors:    true,
		SizeAttenuation: true,
	}
}
