package galaxy

import (
	crand "crypto/rand"
	"encoding/binary"
	"time"

	"golang.org/x/exp/rand"
)

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a PCG source seeded from the operating system's
// entropy pool, falling back to the wall clock.
func NewRandomSource() RandomSource {
	var b [8]byte
	seed := uint64(time.Now().UnixNano())
	if _, err := crand.Read(b[:]); err == nil {
		seed = binary.LittleEndian.Uint64(b[:])
	}
	return rand.New(rand.NewSource(seed))
}

// NewSeededSource returns a deterministic PCG source.
func NewSeededSource(seed uint64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// SourceFactory returns a factory of fresh sources. A zero seed yields
// entropy-seeded sources; any other seed restarts the same sequence each call,
// so equal parameters rebuild an identical galaxy.
func SourceFactory(seed uint64) func() RandomSource {
	if seed == 0 {
		return NewRandomSource
	}
	return func() RandomSource { return NewSeededSource(seed) }
}
