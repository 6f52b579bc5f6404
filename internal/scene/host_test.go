package scene_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/galaxy/internal/galaxy"
	"github.com/san-kum/galaxy/internal/scene"
)

// journal records graph and device events in the order they happen.
type journal struct {
	events []string
}

func (j *journal) add(format string, args ...any) {
	j.events = append(j.events, fmt.Sprintf(format, args...))
}

type recordingGraph struct {
	*scene.Scene
	j *journal
}

func (g *recordingGraph) Attach(r *scene.Renderable) {
	g.j.add("attach %d", r.Count())
	g.Scene.Attach(r)
}

func (g *recordingGraph) Detach(r *scene.Renderable) {
	g.j.add("detach")
	g.Scene.Detach(r)
}

type fakeResource struct {
	j        *journal
	released int
}

func (f *fakeResource) Release() {
	f.released++
	f.j.add("release")
}

type fakeUploader struct {
	j         *journal
	fail      bool
	resources []*fakeResource
}

func (u *fakeUploader) Upload(buf *galaxy.Buffer, mat scene.Material) (scene.Resource, error) {
	if u.fail {
		return nil, errors.New("out of device memory")
	}
	u.j.add("upload %d", buf.Count)
	res := &fakeResource{j: u.j}
	u.resources = append(u.resources, res)
	return res, nil
}

func params(count int) galaxy.Parameters {
	p := galaxy.DefaultParameters()
	p.Count = count
	return p
}

var _ = Describe("Host", func() {
	var (
		j        *journal
		graph    *recordingGraph
		uploader *fakeUploader
		host     *scene.Host
		seed     uint64
	)

	BeforeEach(func() {
		j = &journal{}
		graph = &recordingGraph{Scene: scene.New(), j: j}
		uploader = &fakeUploader{j: j}
		seed = 0
		host = scene.NewHost(graph,
			scene.WithUploader(uploader),
			scene.WithRandom(func() galaxy.RandomSource {
				seed++
				return galaxy.NewSeededSource(seed)
			}),
		)
	})

	It("starts empty", func() {
		Expect(host.State()).To(Equal(scene.Empty))
		_, ok := host.Current()
		Expect(ok).To(BeFalse())
	})

	It("attaches exactly one galaxy per regeneration", func() {
		for i := 0; i < 3; i++ {
			Expect(host.Regenerate(params(200 + i))).To(Succeed())
			Expect(graph.Len()).To(Equal(1))
			Expect(host.State()).To(Equal(scene.Populated))
		}
		snap, ok := host.Current()
		Expect(ok).To(BeTrue())
		Expect(snap.Count).To(Equal(202))
		Expect(host.Builds()).To(Equal(3))
	})

	It("releases device buffers before detaching and before building the replacement", func() {
		Expect(host.Regenerate(params(100))).To(Succeed())
		Expect(host.Regenerate(params(300))).To(Succeed())

		Expect(j.events).To(Equal([]string{
			"upload 100", "attach 100",
			"release", "detach",
			"upload 300", "attach 300",
		}))
		Expect(uploader.resources[0].released).To(Equal(1))
		Expect(uploader.resources[1].released).To(Equal(0))
	})

	It("draws a fresh random sequence on every regeneration", func() {
		var first, second []float32
		Expect(host.Regenerate(params(100))).To(Succeed())
		host.View(func(r *scene.Renderable) {
			first = append(first, r.Buffer.Positions...)
		})
		Expect(host.Regenerate(params(100))).To(Succeed())
		host.View(func(r *scene.Renderable) {
			second = append(second, r.Buffer.Positions...)
		})
		Expect(second).NotTo(Equal(first))
	})

	It("configures the point material for additive galaxies", func() {
		Expect(host.Regenerate(params(100))).To(Succeed())
		snap, _ := host.Current()
		Expect(snap.Material.Blending).To(Equal(scene.BlendAdditive))
		Expect(snap.Material.DepthWrite).To(BeFalse())
		Expect(snap.Material.VertexColors).To(BeTrue())
		Expect(snap.Material.SizeAttenuation).To(BeTrue())
		Expect(snap.Material.Size).To(Equal(galaxy.DefaultParameters().Size))
	})

	Context("with invalid parameters", func() {
		It("keeps the previous galaxy", func() {
			Expect(host.Regenerate(params(150))).To(Succeed())
			before, _ := host.Current()

			bad := params(150)
			bad.Branches = 0
			err := host.Regenerate(bad)

			Expect(err).To(MatchError(galaxy.ErrInvalidParameter))
			after, ok := host.Current()
			Expect(ok).To(BeTrue())
			Expect(after.ID).To(Equal(before.ID))
			Expect(graph.Len()).To(Equal(1))
			Expect(uploader.resources[0].released).To(Equal(0))
		})
	})

	Context("with a memory budget", func() {
		BeforeEach(func() {
			host = scene.NewHost(graph, scene.WithUploader(uploader), scene.WithBudget(galaxy.BufferBytes(1000)))
		})

		It("rejects oversized galaxies before tearing down", func() {
			Expect(host.Regenerate(params(1000))).To(Succeed())
			err := host.Regenerate(params(1001))

			Expect(err).To(MatchError(galaxy.ErrAllocation))
			Expect(host.State()).To(Equal(scene.Populated))
			snap, _ := host.Current()
			Expect(snap.Count).To(Equal(1000))
		})
	})

	Context("when the upload fails", func() {
		It("reports an allocation error and is left empty", func() {
			Expect(host.Regenerate(params(100))).To(Succeed())
			uploader.fail = true

			err := host.Regenerate(params(100))

			Expect(err).To(MatchError(galaxy.ErrAllocation))
			Expect(host.State()).To(Equal(scene.Empty))
			Expect(graph.Len()).To(BeZero())
			Expect(uploader.resources[0].released).To(Equal(1))
		})

		It("recovers on the next successful regeneration", func() {
			uploader.fail = true
			Expect(host.Regenerate(params(100))).NotTo(Succeed())
			uploader.fail = false
			Expect(host.Regenerate(params(100))).To(Succeed())
			Expect(graph.Len()).To(Equal(1))
		})
	})

	It("hands View a nil renderable when empty", func() {
		called := false
		host.View(func(r *scene.Renderable) {
			called = true
			Expect(r).To(BeNil())
		})
		Expect(called).To(BeTrue())
	})

	It("tears down on Close", func() {
		Expect(host.Regenerate(params(100))).To(Succeed())
		host.Close()
		Expect(host.State()).To(Equal(scene.Empty))
		Expect(graph.Len()).To(BeZero())
		Expect(uploader.resources[0].released).To(Equal(1))
	})
})

var _ = Describe("Renderable", func() {
	It("releases its resource exactly once", func() {
		j := &journal{}
		res := &fakeResource{j: j}
		r := &scene.Renderable{Buffer: &galaxy.Buffer{Count: 1}, Resource: res}

		r.Release()
		r.Release()

		Expect(res.released).To(Equal(1))
		Expect(r.Released()).To(BeTrue())
		Expect(r.Count()).To(BeZero())
	})
})

var _ = Describe("Scene", func() {
	It("ignores duplicate attaches and unknown detaches", func() {
		sc := scene.New()
		r := &scene.Renderable{}
		sc.Attach(r)
		sc.Attach(r)
		sc.Detach(&scene.Renderable{})
		Expect(sc.Len()).To(Equal(1))
		Expect(sc.Objects()).To(ConsistOf(r))
	})
})
