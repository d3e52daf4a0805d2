package core

import (
	"math/rand"
)

// Sampler is the random source consulted by camera jitter, lens sampling, material
// scattering and BVH axis selection. Implementations need not be safe for concurrent use;
// give each render task its own.
type Sampler interface {
	// Float64 returns a uniform value in [0, 1)
	Float64() float64
	// IntN returns a uniform integer in the closed range [min, max]
	IntN(min, max int) int
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a deterministic sampler from a seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Float64 returns a random float64 in [0, 1)
func (r *RandomSampler) Float64() float64 {
	return r.random.Float64()
}

// IntN returns a random int in [min, max]
func (r *RandomSampler) IntN(min, max int) int {
	return min + r.random.Intn(max-min+1)
}

// RandomRange returns a uniform value in [min, max)
func RandomRange(sampler Sampler, min, max float64) float64 {
	return min + (max-min)*sampler.Float64()
}

// RandomVec3 returns a vector with each component uniform in [min, max)
func RandomVec3(sampler Sampler, min, max float64) Vec3 {
	return NewVec3(
		RandomRange(sampler, min, max),
		RandomRange(sampler, min, max),
		RandomRange(sampler, min, max),
	)
}
