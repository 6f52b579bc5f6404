// Package scene owns the live galaxy renderable and its regeneration lifecycle.
//
// A [Host] holds at most one [Renderable] attached to a [Graph]. Each call to
// [Host.Regenerate] tears the current renderable down (device buffers first,
// then detach from the graph) before building its replacement, so two
// galaxies are never resident at once:
//
//	sc := scene.New()
//	host := scene.NewHost(sc, scene.WithLogger(log))
//	if err := host.Regenerate(params); err != nil {
//	    // invalid parameters leave the previous galaxy in place
//	}
//
// # Thread Safety
//
// Regenerate and View are mutually exclusive. Renderers should only touch a
// Renderable inside a View callback.
package scene
