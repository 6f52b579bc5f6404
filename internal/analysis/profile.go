package analysis

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/galaxy/internal/galaxy"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// AngularBins is the resolution of the unwound angle histogram.
const AngularBins = 64

// Below collapsedRadius the radial histogram spans [0, 1).
const collapsedRadius = 1e-9

var ErrEmptyBuffer = errors.New("analysis: empty buffer")

// Profile summarizes the particle distribution of one buffer.
type Profile struct {
	Count      int
	BinWidth   float64
	RadialBins []float64 // particle counts by planar radius

	MeanRadius, StdRadius float64
	MeanHeight, StdHeight float64
	MaxRadius             float64

	BranchCounts    []int
	AngularSpectrum []float64 // |F(k)| for k = 0..AngularBins/2
	DominantArms    int
}

// Compute profiles buf, which must have been generated from p.
func Compute(buf *galaxy.Buffer, p galaxy.Parameters, bins int) (*Profile, error) {
	if buf == nil || buf.Count == 0 {
		return nil, ErrEmptyBuffer
	}
	if bins < 1 {
		bins = 1
	}

	n := buf.Count
	radii := make([]float64, n)
	heights := make([]float64, n)
	angles := make([]float64, AngularBins)
	branches := p.Branches
	if branches < 1 {
		branches = 1
	}
	prof := &Profile{Count: n, BranchCounts: make([]int, branches)}

	for i := 0; i < n; i++ {
		x, y, z := buf.Position(i)
		r := math.Hypot(float64(x), float64(z))
		radii[i] = r
		heights[i] = float64(y)
		prof.BranchCounts[i%branches]++

		theta := math.Atan2(float64(z), float64(x)) - r*p.Spin
		theta = math.Mod(theta, 2*math.Pi)
		if theta < 0 {
			theta += 2 * math.Pi
		}
		b := int(theta / (2 * math.Pi) * AngularBins)
		if b >= AngularBins {
			b = AngularBins - 1
		}
		angles[b]++
	}

	prof.MeanRadius, prof.StdRadius = stat.MeanStdDev(radii, nil)
	prof.MeanHeight, prof.StdHeight = stat.MeanStdDev(heights, nil)
	if n == 1 {
		prof.StdRadius, prof.StdHeight = 0, 0
	}

	sort.Float64s(radii)
	prof.MaxRadius = radii[n-1]
	upper := math.Nextafter(prof.MaxRadius, math.Inf(1))
	if prof.MaxRadius < collapsedRadius {
		// collapsed disc; dividers need a positive extent
		upper = 1
	}
	dividers := floats.Span(make([]float64, bins+1), 0, upper)
	prof.RadialBins = stat.Histogram(nil, dividers, radii, nil)
	prof.BinWidth = upper / float64(bins)

	spectrum := fft.FFTReal(angles)
	prof.AngularSpectrum = make([]float64, AngularBins/2+1)
	for k := range prof.AngularSpectrum {
		prof.AngularSpectrum[k] = cmplx.Abs(spectrum[k])
	}
	prof.DominantArms = floats.MaxIdx(prof.AngularSpectrum[1:]) + 1

	return prof, nil
}
