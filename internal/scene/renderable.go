package scene

import (
	"github.com/google/uuid"
	"github.com/san-kum/galaxy/internal/galaxy"
)

// Resource is device-side memory backing a renderable.
type Resource interface {
	Release()
}

// Uploader copies a particle buffer to device memory.
type Uploader interface {
	Upload(buf *galaxy.Buffer, mat Material) (Resource, error)
}

// Renderable is a particle buffer plus the material used to draw it.
type Renderable struct {
	ID       uuid.UUID
	Buffer   *galaxy.Buffer
	Material Material
	Resource Resource
	released bool
}

// NewRenderable wraps buf for drawing. The host builds its own galaxy
// renderables; viewers use this for static objects such as the title label.
func NewRenderable(buf *galaxy.Buffer, mat Material) *Renderable {
	return &Renderable{ID: uuid.New(), Buffer: buf, Material: mat}
}

// Count returns the number of particles, zero once released.
func (r *Renderable) Count() int {
	if r.Buffer == nil {
		return 0
	}
	return r.Buffer.Count
}

// Released reports whether Release has run.
func (r *Renderable) Released() bool { return r.released }

// Release frees the device resource and drops the host buffer. Only the first
// call has any effect.
func (r *Renderable) Release() {
	if r.released {
		return
	}
	r.released = true
	if r.Resource != nil {
		r.Resource.Release()
		r.Resource = nil
	}
	r.Buffer = nil
}
