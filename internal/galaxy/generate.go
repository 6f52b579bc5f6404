package galaxy

import (
	"fmt"
	"math"
)

// bytesPerParticle covers one float32 xyz position plus one float32 rgb color.
const bytesPerParticle = 2 * 3 * 4

// Buffer holds one generated particle set. Positions and Colors are parallel:
// triple i of each describes particle i.
type Buffer struct {
	Count     int
	Positions []float32
	Colors    []float32
}

// Position returns the world-space coordinates of particle i.
func (b *Buffer) Position(i int) (x, y, z float32) {
	i3 := i * 3
	return b.Positions[i3], b.Positions[i3+1], b.Positions[i3+2]
}

// Color returns the rgb color of particle i.
func (b *Buffer) Color(i int) (r, g, bl float32) {
	i3 := i * 3
	return b.Colors[i3], b.Colors[i3+1], b.Colors[i3+2]
}

// Bytes reports the host memory held by the buffer.
func (b *Buffer) Bytes() int64 {
	return int64(len(b.Positions)+len(b.Colors)) * 4
}

// BufferBytes reports the host memory a buffer of count particles needs.
func BufferBytes(count int) int64 {
	return int64(count) * bytesPerParticle
}

// CheckBudget reports ErrAllocation when count particles exceed budget bytes.
// A budget of zero or less disables the check.
func CheckBudget(count int, budget int64) error {
	if need := BufferBytes(count); budget > 0 && need > budget {
		return fmt.Errorf("%w: %d particles need %d bytes, budget is %d", ErrAllocation, count, need, budget)
	}
	return nil
}

// BranchAngle returns the base angle of the arm particle i belongs to.
func BranchAngle(i, branches int) float64 {
	return float64(i%branches) / float64(branches) * 2 * math.Pi
}

// Generate builds a fresh particle buffer for p, drawing all randomness from rng.
func Generate(p Parameters, rng RandomSource) (*Buffer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	buf, err := allocate(p.Count)
	if err != nil {
		return nil, err
	}

	for i := 0; i < p.Count; i++ {
		i3 := i * 3

		radius := rng.Float64() * p.Radius
		spinAngle := radius * p.Spin
		branchAngle := BranchAngle(i, p.Branches)

		jx := jitter(rng, p.Randomness, p.RandomnessPower)
		jy := jitter(rng, p.Randomness, p.RandomnessPower)
		jz := jitter(rng, p.Randomness, p.RandomnessPower)

		angle := branchAngle + spinAngle
		buf.Positions[i3] = float32(math.Cos(angle)*radius + jx)
		buf.Positions[i3+1] = float32(jy)
		buf.Positions[i3+2] = float32(math.Sin(angle)*radius + jz)

		ratio := 0.0
		if p.Radius > 0 {
			ratio = radius / p.Radius
		}
		mixed := p.InsideColor.BlendRgb(p.OutsideColor, ratio).Clamped()
		buf.Colors[i3] = float32(mixed.R)
		buf.Colors[i3+1] = float32(mixed.G)
		buf.Colors[i3+2] = float32(mixed.B)
	}
	return buf, nil
}

// jitter draws the magnitude first, then the sign.
func jitter(rng RandomSource, randomness, power float64) float64 {
	v := math.Pow(rng.Float64(), power) * randomness
	if rng.Float64() < 0.5 {
		return v
	}
	return -v
}

// allocate turns a makeslice panic for absurd counts into ErrAllocation.
func allocate(count int) (buf *Buffer, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, fmt.Errorf("%w: %d particles: %v", ErrAllocation, count, r)
		}
	}()
	n := count * 3
	if n/3 != count {
		return nil, fmt.Errorf("%w: %d particles overflows buffer length", ErrAllocation, count)
	}
	return &Buffer{
		Count:     count,
		Positions: make([]float32, n),
		Colors:    make([]float32, n),
	}, nil
}
