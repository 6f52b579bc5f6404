// Package galaxy generates spiral-galaxy point clouds.
//
// A [Parameters] value describes the galaxy; [Generate] maps it to a [Buffer]
// of interleaved xyz positions and rgb colors, one triple per particle:
//
//	p := galaxy.DefaultParameters()
//	buf, err := galaxy.Generate(p, galaxy.NewRandomSource())
//
// Particles are assigned to branches round-robin by index, pushed out to a
// uniformly drawn radius, twisted by Spin radians per unit of radius and then
// jittered on each axis. Colors are a linear RGB blend from InsideColor at the
// core to OutsideColor at the rim.
//
// # Reproducibility
//
// Generate consumes exactly seven draws per particle from the [RandomSource],
// in this order: radius, x magnitude, x sign, y magnitude, y sign, z magnitude,
// z sign. Two calls with equal parameters and equally seeded sources
// ([NewSeededSource]) produce identical buffers.
package galaxy
