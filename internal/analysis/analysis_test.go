package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/galaxy/internal/galaxy"
)

func generate(t *testing.T, p galaxy.Parameters) *galaxy.Buffer {
	t.Helper()
	buf, err := galaxy.Generate(p, galaxy.NewSeededSource(7))
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestHistogramSumsToCount(t *testing.T) {
	p := galaxy.DefaultParameters()
	p.Count = 5000
	prof, err := Compute(generate(t, p), p, 24)
	if err != nil {
		t.Fatal(err)
	}
	if len(prof.RadialBins) != 24 {
		t.Fatalf("bins = %d, want 24", len(prof.RadialBins))
	}
	sum := 0.0
	for _, c := range prof.RadialBins {
		sum += c
	}
	if sum != float64(p.Count) {
		t.Errorf("histogram sum = %v, want %d", sum, p.Count)
	}
}

func TestBranchOccupancy(t *testing.T) {
	p := galaxy.DefaultParameters()
	p.Count = 703
	p.Branches = 7
	prof, err := Compute(generate(t, p), p, 8)
	if err != nil {
		t.Fatal(err)
	}
	for b, c := range prof.BranchCounts {
		want := 100
		if b < 3 {
			want = 101
		}
		if c != want {
			t.Errorf("branch %d holds %d particles, want %d", b, c, want)
		}
	}
}

func TestDominantArms(t *testing.T) {
	for _, branches := range []int{3, 5, 7} {
		p := galaxy.DefaultParameters()
		p.Count = 7000
		p.Branches = branches
		p.Randomness = 0
		prof, err := Compute(generate(t, p), p, 16)
		if err != nil {
			t.Fatal(err)
		}
		if prof.DominantArms != branches {
			t.Errorf("branches %d: detected %d arms", branches, prof.DominantArms)
		}
	}
}

func TestFlatDiscHasNoThickness(t *testing.T) {
	p := galaxy.DefaultParameters()
	p.Count = 1000
	p.Randomness = 0
	prof, err := Compute(generate(t, p), p, 10)
	if err != nil {
		t.Fatal(err)
	}
	if prof.StdHeight != 0 || prof.MeanHeight != 0 {
		t.Errorf("height moments = %v/%v, want 0", prof.MeanHeight, prof.StdHeight)
	}
	if prof.MaxRadius > p.Radius+1e-5 {
		t.Errorf("max radius %v exceeds %v", prof.MaxRadius, p.Radius)
	}
	if math.Abs(prof.MeanRadius-p.Radius/2) > 0.25 {
		t.Errorf("mean radius %v, want near %v", prof.MeanRadius, p.Radius/2)
	}
}

func TestCollapsedGalaxy(t *testing.T) {
	p := galaxy.DefaultParameters()
	p.Count = 200
	p.Radius = 0
	p.Randomness = 0
	buf := generate(t, p)
	for _, bins := range []int{1, 40, 1000} {
		prof, err := Compute(buf, p, bins)
		if err != nil {
			t.Fatalf("bins=%d: %v", bins, err)
		}
		if prof.MaxRadius != 0 {
			t.Errorf("bins=%d: max radius = %v, want 0", bins, prof.MaxRadius)
		}
		if prof.RadialBins[0] != float64(p.Count) {
			t.Errorf("bins=%d: first bin = %v, want %d", bins, prof.RadialBins[0], p.Count)
		}
		if prof.BinWidth <= 0 {
			t.Errorf("bins=%d: bin width = %v, want positive", bins, prof.BinWidth)
		}
	}
}

func TestComputeEmpty(t *testing.T) {
	if _, err := Compute(nil, galaxy.DefaultParameters(), 4); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("nil buffer: %v", err)
	}
	if _, err := Compute(&galaxy.Buffer{}, galaxy.DefaultParameters(), 4); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("empty buffer: %v", err)
	}
}

func TestRendering(t *testing.T) {
	p := galaxy.DefaultParameters()
	p.Count = 2000
	buf := generate(t, p)
	prof, err := Compute(buf, p, 20)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(Chart(prof, 40, 6), "particles by radius") {
		t.Error("chart missing caption")
	}
	if !strings.Contains(Summary(prof), "7 generated") {
		t.Error("summary missing branch count")
	}

	m := TopDown(buf, 30, 12)
	lines := strings.Split(strings.TrimSuffix(m, "\n"), "\n")
	if len(lines) != 12 {
		t.Fatalf("map has %d rows, want 12", len(lines))
	}
	for _, l := range lines {
		if n := len([]rune(l)); n != 30 {
			t.Fatalf("row width %d, want 30", n)
		}
	}
	if strings.TrimSpace(m) == "" {
		t.Error("density map is blank")
	}
	if TopDown(nil, 10, 10) != "" || Chart(nil, 10, 10) != "" {
		t.Error("nil inputs should render empty")
	}
}
