package sim

import "math/rand"

// Rand is the random source the simulation draws from.
// *math/rand.Rand satisfies it; tests may script their own.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// cosmeticSalt separates the cosmetic stream from the gameplay stream.
const cosmeticSalt = 0x5eed_c0de

// NewRand returns a deterministic random source for the given seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// streams derives the gameplay and cosmetic random sources from a run seed.
// Particles and weather draw only from the cosmetic stream so that visual
// settings never change where obstacles spawn.
func streams(seed int64) (gameplay, cosmetic Rand) {
	return NewRand(seed), NewRand(seed ^ cosmeticSalt)
}

// between returns a uniform value in [lo, hi).
func between(rng Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
