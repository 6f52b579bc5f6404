package scene

import "sync"

// Graph is the render graph a host attaches its galaxy to.
type Graph interface {
	Attach(r *Renderable)
	Detach(r *Renderable)
}

// Scene is an ordered in-memory render graph.
type Scene struct {
	mu      sync.RWMutex
	objects []*Renderable
}

func New() *Scene {
	return &Scene{objects: make([]*Renderable, 0, 2)}
}

// Attach appends r unless it is already present.
func (s *Scene) Attach(r *Renderable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.objects {
		if o == r {
			return
		}
	}
	s.objects = append(s.objects, r)
}

// Detach removes r if present.
func (s *Scene) Detach(r *Renderable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.objects {
		if o == r {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return
		}
	}
}

// Len returns the number of attached objects.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Objects returns a copy of the attached objects in attach order.
func (s *Scene) Objects() []*Renderable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Renderable, len(s.objects))
	copy(out, s.objects)
	return out
}

// Each calls fn for every attached object while holding the read lock.
func (s *Scene) Each(fn func(r *Renderable)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.objects {
		fn(o)
	}
}
