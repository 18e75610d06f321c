package vmath

import "math"

// Tau is a full turn in radians
const Tau = 2 * math.Pi

// --- Randomness ---

// Source is the random stream consumed by the simulation
// Implementations need not be safe for concurrent use; the simulation is single-writer
type Source interface {
	// Float64 returns a value in [0, 1)
	Float64() float64
	// Intn returns a value in [0, n), 0 when n <= 0
	Intn(n int) int
}

// FastRand is a xorshift64 generator, deterministic for a given seed
type FastRand struct {
	state uint64
}

// NewFastRand returns a generator seeded with seed, zero is remapped to 1
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

// Next advances the generator and returns the raw 64-bit state
func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a value in [0, n)
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1) built from the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a value in [lo, hi)
func Range(src Source, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + src.Float64()*(hi-lo)
}

// Angle returns a uniform angle in [0, Tau)
func Angle(src Source) float64 {
	return src.Float64() * Tau
}

// --- Scalars ---

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates a→b by t without clamping t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
