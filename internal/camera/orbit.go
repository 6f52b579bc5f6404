// Package camera provides an orbiting perspective camera and a resize-aware
// viewport shared by the terminal and window viewers.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const polarEpsilon = 1e-4

// Orbit is a perspective camera circling a target, with damped input.
type Orbit struct {
	Target      mgl64.Vec3
	Up          mgl64.Vec3
	FOV         float64 // vertical, degrees
	Near, Far   float64
	Aspect      float64
	Damping     float64
	MinDistance float64
	MaxDistance float64

	azimuth, polar, distance float64
	dAzimuth, dPolar, dLog   float64
}

// NewOrbit places the camera at pos looking at the origin.
func NewOrbit(pos mgl64.Vec3, fov, near, far, damping float64) *Orbit {
	o := &Orbit{
		Up:          mgl64.Vec3{0, 1, 0},
		FOV:         fov,
		Near:        near,
		Far:         far,
		Aspect:      1,
		Damping:     damping,
		MinDistance: near * 2,
		MaxDistance: far * 0.9,
	}
	o.SetPosition(pos)
	return o
}

// SetPosition moves the camera, keeping the target.
func (o *Orbit) SetPosition(pos mgl64.Vec3) {
	off := pos.Sub(o.Target)
	o.distance = off.Len()
	if o.distance == 0 {
		o.azimuth, o.polar = 0, math.Pi/2
		return
	}
	o.azimuth = math.Atan2(off.X(), off.Z())
	o.polar = math.Acos(mgl64.Clamp(off.Y()/o.distance, -1, 1))
}

// Rotate queues an orbit by the given angles in radians.
func (o *Orbit) Rotate(dAzimuth, dPolar float64) {
	o.dAzimuth += dAzimuth
	o.dPolar += dPolar
}

// Zoom queues a dolly; factor > 1 moves closer.
func (o *Orbit) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	o.dLog -= math.Log(factor)
}

// Update applies queued input. With damping, a fraction of the pending motion
// is applied per call and the rest decays, so motion eases out over frames.
func (o *Orbit) Update() {
	k := o.Damping
	if k <= 0 || k > 1 {
		k = 1
	}
	o.azimuth += o.dAzimuth * k
	o.polar += o.dPolar * k
	o.distance *= math.Exp(o.dLog * k)
	o.dAzimuth *= 1 - k
	o.dPolar *= 1 - k
	o.dLog *= 1 - k

	o.polar = mgl64.Clamp(o.polar, polarEpsilon, math.Pi-polarEpsilon)
	if o.MinDistance > 0 && o.distance < o.MinDistance {
		o.distance = o.MinDistance
	}
	if o.MaxDistance > 0 && o.distance > o.MaxDistance {
		o.distance = o.MaxDistance
	}
}

// Settled reports whether queued motion has decayed away.
func (o *Orbit) Settled() bool {
	const eps = 1e-6
	return math.Abs(o.dAzimuth) < eps && math.Abs(o.dPolar) < eps && math.Abs(o.dLog) < eps
}

func (o *Orbit) Distance() float64 { return o.distance }
func (o *Orbit) Azimuth() float64  { return o.azimuth }
func (o *Orbit) Polar() float64    { return o.polar }

// Position returns the eye position in world space.
func (o *Orbit) Position() mgl64.Vec3 {
	s := math.Sin(o.polar)
	return o.Target.Add(mgl64.Vec3{
		o.distance * s * math.Sin(o.azimuth),
		o.distance * math.Cos(o.polar),
		o.distance * s * math.Cos(o.azimuth),
	})
}

// SetAspect updates the projection aspect ratio after a resize.
func (o *Orbit) SetAspect(aspect float64) {
	if aspect > 0 && !math.IsInf(aspect, 0) {
		o.Aspect = aspect
	}
}

func (o *Orbit) View() mgl64.Mat4 {
	return mgl64.LookAtV(o.Position(), o.Target, o.Up)
}

func (o *Orbit) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(o.FOV), o.Aspect, o.Near, o.Far)
}

func (o *Orbit) ViewProjection() mgl64.Mat4 {
	return o.Projection().Mul4(o.View())
}

// Projector maps world points to a w×h pixel grid with a fixed view-projection.
type Projector struct {
	vp   mgl64.Mat4
	view mgl64.Mat4
	w, h float64
}

// Projector snapshots the current matrices for a w×h target.
func (o *Orbit) Projector(w, h int) Projector {
	return Projector{vp: o.ViewProjection(), view: o.View(), w: float64(w), h: float64(h)}
}

// Project returns pixel coordinates, the eye-space depth (positive in front)
// and whether the point lies inside the view frustum.
func (p Projector) Project(x, y, z float64) (sx, sy, depth float64, ok bool) {
	clip := p.vp.Mul4x1(mgl64.Vec4{x, y, z, 1})
	wc := clip.W()
	if wc <= 0 {
		return 0, 0, 0, false
	}
	nx, ny, nz := clip.X()/wc, clip.Y()/wc, clip.Z()/wc
	if nx < -1 || nx > 1 || ny < -1 || ny > 1 || nz < -1 || nz > 1 {
		return 0, 0, 0, false
	}
	sx = (nx + 1) / 2 * p.w
	sy = (1 - ny) / 2 * p.h
	return sx, sy, wc, true
}
