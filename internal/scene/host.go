package scene

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/san-kum/galaxy/internal/galaxy"
)

// State is the host lifecycle state.
type State int

const (
	Empty State = iota
	Populated
)

func (s State) String() string {
	if s == Populated {
		return "populated"
	}
	return "empty"
}

// Snapshot describes the current renderable without exposing its buffers.
type Snapshot struct {
	ID       uuid.UUID
	Count    int
	Material Material
	Params   galaxy.Parameters
}

// Host owns the single live galaxy renderable.
type Host struct {
	mu       sync.RWMutex
	graph    Graph
	uploader Uploader
	random   func() galaxy.RandomSource
	budget   int64
	log      *slog.Logger

	current *Renderable
	params  galaxy.Parameters
	builds  int
}

// Option configures a Host.
type Option func(*Host)

// WithUploader moves every generated buffer to device memory.
func WithUploader(u Uploader) Option {
	return func(h *Host) { h.uploader = u }
}

// WithRandom replaces the entropy-backed source factory.
func WithRandom(factory func() galaxy.RandomSource) Option {
	return func(h *Host) { h.random = factory }
}

// WithBudget rejects galaxies whose host buffers exceed bytes. Zero disables the check.
func WithBudget(bytes int64) Option {
	return func(h *Host) { h.budget = bytes }
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Host) { h.log = l }
}

func NewHost(graph Graph, opts ...Option) *Host {
	h := &Host{
		graph:  graph,
		random: galaxy.NewRandomSource,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.With("component", "scene")
	return h
}

// Regenerate replaces the current galaxy with one built from p.
//
// Invalid parameters and budget overruns are rejected before anything is torn
// down. Once teardown has started, a failed build leaves the host Empty.
func (h *Host) Regenerate(p galaxy.Parameters) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := p.Validate(); err != nil {
		h.log.Warn("regenerate rejected", "error", err)
		return err
	}
	if err := galaxy.CheckBudget(p.Count, h.budget); err != nil {
		h.log.Warn("regenerate rejected", "error", err)
		return err
	}

	h.teardown()

	buf, err := galaxy.Generate(p, h.random())
	if err != nil {
		h.log.Error("generate failed", "count", p.Count, "error", err)
		return err
	}

	r := NewRenderable(buf, MaterialFor(p))
	if h.uploader != nil {
		res, err := h.uploader.Upload(buf, r.Material)
		if err != nil {
			r.Release()
			err = fmt.Errorf("%w: upload: %v", galaxy.ErrAllocation, err)
			h.log.Error("upload failed", "count", p.Count, "error", err)
			return err
		}
		r.Resource = res
	}

	h.graph.Attach(r)
	h.current, h.params = r, p
	h.builds++
	h.log.Debug("galaxy attached", "id", r.ID, "count", p.Count, "bytes", buf.Bytes(), "build", h.builds)
	return nil
}

// teardown releases device buffers, then detaches from the graph.
func (h *Host) teardown() {
	if h.current == nil {
		return
	}
	r := h.current
	h.current = nil
	r.Release()
	h.graph.Detach(r)
	h.log.Debug("galaxy detached", "id", r.ID)
}

// State reports whether a galaxy is attached.
func (h *Host) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return Empty
	}
	return Populated
}

// Current returns a description of the attached galaxy.
func (h *Host) Current() (Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return Snapshot{}, false
	}
	return Snapshot{ID: h.current.ID, Count: h.current.Count(), Material: h.current.Material, Params: h.params}, true
}

// Builds counts successful regenerations.
func (h *Host) Builds() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.builds
}

// View runs fn with the current renderable, or nil when Empty. fn must not
// retain r past its return.
func (h *Host) View(fn func(r *Renderable)) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	fn(h.current)
}

// Close detaches and releases the current galaxy.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.teardown()
}
