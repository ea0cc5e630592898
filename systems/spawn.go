package systems

import (
	"github.com/Lucieguerin431/bloomfall/terrain"
)

// RNG is the interface for random number generation.
type RNG interface {
	Float64() float64
}

// Sampler draws validated positions on the simulation plane. Candidates
// are uniform over the square arena and rejected while they land on
// mountain ground.
type Sampler struct {
	half        float64
	maxAttempts int
	ground      terrain.Field
	rng         RNG
}

// NewSampler creates a sampler over the arena of the given half-extent.
func NewSampler(half float64, maxAttempts int, ground terrain.Field, rng RNG) *Sampler {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Sampler{
		half:        half,
		maxAttempts: maxAttempts,
		ground:      ground,
		rng:         rng,
	}
}

// Sample returns a position on non-mountain ground. The retry budget is
// bounded; when every candidate lands on mountain the last one is
// returned anyway and fallback reports true. Sampling never blocks.
func (s *Sampler) Sample() (x, y float64, fallback bool) {
	for i := 0; i < s.maxAttempts; i++ {
		x = (s.rng.Float64()*2 - 1) * s.half
		y = (s.rng.Float64()*2 - 1) * s.half
		if s.ground.BiomeAt(x, y) != terrain.BiomeMountain {
			return x, y, false
		}
	}
	return x, y, true
}
