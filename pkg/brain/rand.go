package brain

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Rand is the capability surface the brain needs from a random source:
// uniform draws, Bernoulli trials, shuffling, and mid-sequence duplication.
// The Clone capability lets generation run a nested selection path without
// disturbing the primary sequence used for top-level decisions. Tests can
// substitute fixed-sequence implementations.
type Rand interface {
	// IntN returns a uniform int in [0, n). n must be > 0.
	IntN(n int) int
	// Float64 returns a uniform float64 in [0, 1).
	Float64() float64
	// Bernoulli reports a success draw with probability p.
	Bernoulli(p float64) bool
	// Shuffle pseudo-randomizes the order of n elements via swap.
	Shuffle(n int, swap func(i, j int))
	// Clone returns an independent source that continues from the current
	// state; advancing the clone does not advance the original.
	Clone() Rand
}

// pcgRand implements Rand over a PCG source from math/rand/v2.
type pcgRand struct {
	src *rand.PCG
	rnd *rand.Rand
}

// NewRand returns a deterministic Rand seeded with the given value. Two
// sources built from the same seed produce identical sequences.
func NewRand(seed uint64) Rand {
	return newPCGRand(seed, seed^0x9e3779b97f4a7c15)
}

// NewEntropyRand returns a Rand seeded from the system entropy source.
func NewEntropyRand() Rand {
	var buf [16]byte
	// rand.Read never returns an error on supported platforms.
	_, _ = crand.Read(buf[:])
	return newPCGRand(binary.LittleEndian.Uint64(buf[:8]), binary.LittleEndian.Uint64(buf[8:]))
}

func newPCGRand(seed1, seed2 uint64) *pcgRand {
	src := rand.NewPCG(seed1, seed2)
	return &pcgRand{src: src, rnd: rand.New(src)}
}

func (p *pcgRand) IntN(n int) int { return p.rnd.IntN(n) }

func (p *pcgRand) Float64() float64 { return p.rnd.Float64() }

func (p *pcgRand) Bernoulli(prob float64) bool { return p.rnd.Float64() < prob }

func (p *pcgRand) Shuffle(n int, swap func(i, j int)) { p.rnd.Shuffle(n, swap) }

// Clone copies the PCG state through its binary encoding, so the clone
// continues the exact sequence the original would have produced.
func (p *pcgRand) Clone() Rand {
	state, err := p.src.MarshalBinary()
	if err != nil {
		// PCG marshaling cannot fail; fall back to a fresh source anyway.
		return NewEntropyRand()
	}
	src := rand.NewPCG(0, 0)
	if err := src.UnmarshalBinary(state); err != nil {
		return NewEntropyRand()
	}
	return &pcgRand{src: src, rnd: rand.New(src)}
}
