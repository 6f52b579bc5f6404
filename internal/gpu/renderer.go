package gpu

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/galaxy/internal/galaxy"
	"github.com/san-kum/galaxy/internal/scene"
)

var (
	ErrInit   = errors.New("gpu: opengl init failed")
	ErrShader = errors.New("gpu: shader build failed")
	ErrUpload = errors.New("gpu: buffer upload failed")
)

// Points is a particle buffer resident in GPU memory.
type Points struct {
	vao      uint32
	vbo      [2]uint32
	count    int32
	material scene.Material
	released bool
}

func (p *Points) Count() int { return int(p.count) }

// Release deletes the vertex array and its buffers. Safe to call twice.
func (p *Points) Release() {
	if p.released {
		return
	}
	p.released = true
	if p.vao != 0 {
		gl.DeleteBuffers(2, &p.vbo[0])
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao, p.vbo = 0, [2]uint32{}
	}
}

// Renderer owns the point shader and implements scene.Uploader.
type Renderer struct {
	program uint32
	log     *slog.Logger

	locView, locProjection      int32
	locSize, locScale           int32
	locAttenuate, locVertexCols int32

	uploads int
}

// NewRenderer loads the GL entry points for the current context and builds
// the point shader.
func NewRenderer(log *slog.Logger) (*Renderer, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}
	program, err := createProgram(pointsVertexShader, pointsFragmentShader)
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		program: program,
		log:     log.With("component", "gpu"),
	}
	r.locView = uniform(program, "uView")
	r.locProjection = uniform(program, "uProjection")
	r.locSize = uniform(program, "uSize")
	r.locScale = uniform(program, "uScale")
	r.locAttenuate = uniform(program, "uAttenuate")
	r.locVertexCols = uniform(program, "uVertexColors")
	r.log.Info("point renderer ready", "gl", gl.GoStr(gl.GetString(gl.VERSION)))
	return r, nil
}

// Upload copies buf into a new vertex array.
func (r *Renderer) Upload(buf *galaxy.Buffer, mat scene.Material) (scene.Resource, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrUpload)
	}
	p := &Points{count: int32(buf.Count), material: mat}
	if buf.Count == 0 {
		return p, nil
	}

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)
	gl.GenBuffers(2, &p.vbo[0])
	for i, data := range [2][]float32{buf.Positions, buf.Colors} {
		gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo[i])
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointerWithOffset(uint32(i), 3, gl.FLOAT, false, 0, 0)
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		p.Release()
		return nil, fmt.Errorf("%w: %d particles: gl error 0x%x", ErrUpload, buf.Count, code)
	}
	r.uploads++
	r.log.Debug("points uploaded", "count", buf.Count, "bytes", buf.Bytes(), "uploads", r.uploads)
	return p, nil
}

// Frame holds the per-frame camera state shared by every draw.
type Frame struct {
	View, Projection mgl32.Mat4
	// Scale converts point sizes to pixels: half the framebuffer height.
	Scale float32
}

// NewFrame converts camera matrices for a framebuffer of the given height.
func NewFrame(view, projection mgl64.Mat4, framebufferHeight int) Frame {
	return Frame{View: mat32(view), Projection: mat32(projection), Scale: float32(framebufferHeight) / 2}
}

func mat32(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := range m {
		out[i] = float32(m[i])
	}
	return out
}

// Begin binds the point program and sets the frame uniforms.
func (r *Renderer) Begin(x, y, w, h int, f Frame) {
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locView, 1, false, &f.View[0])
	gl.UniformMatrix4fv(r.locProjection, 1, false, &f.Projection[0])
	gl.Uniform1f(r.locScale, f.Scale)
}

// Draw renders p with its material. Call between Begin and End.
func (r *Renderer) Draw(p *Points) {
	if p == nil || p.released || p.count == 0 {
		return
	}
	m := p.material
	if m.Blending == scene.BlendAdditive {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	gl.DepthMask(m.DepthWrite)
	gl.Uniform1f(r.locSize, float32(m.Size))
	gl.Uniform1i(r.locAttenuate, boolInt(m.SizeAttenuation))
	gl.Uniform1i(r.locVertexCols, boolInt(m.VertexColors))

	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.POINTS, 0, p.count)
}

// End restores the state the window toolkit expects.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.DepthMask(true)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
}

func (r *Renderer) Close() {
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
