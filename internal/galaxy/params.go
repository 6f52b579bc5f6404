package galaxy

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Parameter bounds exposed to the tweak panel.
const (
	MinCount           = 100
	MaxCount           = 1_000_000
	MinSize            = 0.001
	MaxSize            = 0.1
	MinRadius          = 0.01
	MaxRadius          = 20.0
	MinBranches        = 2
	MaxBranches        = 100
	MinSpin            = -5.0
	MaxSpin            = 5.0
	MinRandomness      = 0.0
	MaxRandomness      = 2.0
	MinRandomnessPower = 1.0
	MaxRandomnessPower = 10.0
)

// Parameters is an immutable snapshot of the galaxy configuration.
// It is passed by value; Generate never retains or mutates it.
type Parameters struct {
	Count           int
	Size            float64
	Radius          float64
	Branches        int
	Spin            float64
	Randomness      float64
	RandomnessPower float64
	InsideColor     colorful.Color
	OutsideColor    colorful.Color
}

// DefaultParameters returns the stock galaxy: seven warm-cored arms.
func DefaultParameters() Parameters {
	return Parameters{
		Count:           100000,
		Size:            0.01,
		Radius:          5,
		Branches:        7,
		Spin:            1.5,
		Randomness:      0.2,
		RandomnessPower: 3,
		InsideColor:     mustHex("#ff6030"),
		OutsideColor:    mustHex("#1b3984"),
	}
}

// Validate reports whether p can be generated without producing NaN or
// infinite coordinates. It is deliberately looser than Clamp: a zero radius
// or a randomness power below one are accepted.
func (p Parameters) Validate() error {
	if p.Count < 0 {
		return &ParamError{Field: "count", Value: float64(p.Count), Reason: "must not be negative"}
	}
	if p.Branches < 1 {
		return &ParamError{Field: "branches", Value: float64(p.Branches), Reason: "must be at least 1"}
	}
	floats := []struct {
		name string
		v    float64
	}{
		{"size", p.Size},
		{"radius", p.Radius},
		{"spin", p.Spin},
		{"randomness", p.Randomness},
		{"randomnessPower", p.RandomnessPower},
	}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &ParamError{Field: f.name, Value: f.v, Reason: "must be finite"}
		}
	}
	if p.Radius < 0 {
		return &ParamError{Field: "radius", Value: p.Radius, Reason: "must not be negative"}
	}
	if p.Randomness < 0 {
		return &ParamError{Field: "randomness", Value: p.Randomness, Reason: "must not be negative"}
	}
	colors := []struct {
		name string
		c    colorful.Color
	}{
		{"insideColor", p.InsideColor},
		{"outsideColor", p.OutsideColor},
	}
	for _, c := range colors {
		for _, ch := range [3]float64{c.c.R, c.c.G, c.c.B} {
			if math.IsNaN(ch) || math.IsInf(ch, 0) {
				return &ParamError{Field: c.name, Value: ch, Reason: "channel must be finite"}
			}
		}
	}
	return nil
}

// Clamp returns a copy of p with every field forced into its UI range.
func (p Parameters) Clamp() Parameters {
	p.Count = clampInt(p.Count, MinCount, MaxCount)
	p.Size = clampFloat(p.Size, MinSize, MaxSize)
	p.Radius = clampFloat(p.Radius, MinRadius, MaxRadius)
	p.Branches = clampInt(p.Branches, MinBranches, MaxBranches)
	p.Spin = clampFloat(p.Spin, MinSpin, MaxSpin)
	p.Randomness = clampFloat(p.Randomness, MinRandomness, MaxRandomness)
	p.RandomnessPower = clampFloat(p.RandomnessPower, MinRandomnessPower, MaxRandomnessPower)
	p.InsideColor = p.InsideColor.Clamped()
	p.OutsideColor = p.OutsideColor.Clamped()
	return p
}

// ParseColor parses a "#rrggbb" or "#rgb" string.
func ParseColor(s string) (colorful.Color, error) {
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return colorful.Hex(s)
}

func mustHex(s string) colorful.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
