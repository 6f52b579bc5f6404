package config

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/galaxy/internal/camera"
	"github.com/san-kum/galaxy/internal/label"
)

// Orbit builds the viewer camera described by the section.
func (c CameraConfig) Orbit() *camera.Orbit {
	return camera.NewOrbit(mgl64.Vec3(c.Position), c.FOV, c.Near, c.Far, c.Damping)
}

// Options converts the section into label build options.
func (l LabelConfig) Options() label.Options {
	opts := label.DefaultOptions()
	opts.Text = l.Text
	opts.Font = l.Font
	opts.Size = l.Size
	opts.Height = l.Height
	opts.BevelThickness = l.BevelThickness
	opts.BevelSize = l.BevelSize
	opts.OffsetY = l.OffsetY
	return opts
}
