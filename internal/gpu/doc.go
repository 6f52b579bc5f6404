// Package gpu draws particle buffers with OpenGL 3.3 core.
//
// A [Renderer] compiles the point shader once and acts as the scene's
// uploader: every galaxy buffer becomes a [Points] resource holding a vertex
// array with position and color buffers. Points are drawn as GL_POINTS with
// the renderable's material:
//
//   - additive blending and no depth writes for galaxies
//   - normal blending and depth writes for solid geometry
//   - sizes attenuated by eye distance, size * (height/2) / -z
//
// All calls must happen on the thread that owns the GL context.
package gpu
