package terrain

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// NoiseParams shapes the procedural elevation field.
type NoiseParams struct {
	Scale           float64 // world units per base noise period
	Octaves         int     // fractal octaves summed
	Lacunarity      float64 // frequency multiplier per octave
	Gain            float64 // amplitude multiplier per octave
	MaxHeight       float64 // world height at elevation 1
	MountainLevel   float64 // normalized elevation at or above which ground is mountain
	TransitionLevel float64 // normalized elevation at or above which ground is transition
}

// DefaultNoiseParams returns the stock field shape: rolling plains with
// mountain ridges covering roughly a tenth of the arena.
func DefaultNoiseParams() NoiseParams {
	return NoiseParams{
		Scale:           180,
		Octaves:         4,
		Lacunarity:      2.0,
		Gain:            0.5,
		MaxHeight:       40,
		MountainLevel:   0.62,
		TransitionLevel: 0.48,
	}
}

// classify maps a normalized elevation to its biome band.
func (p NoiseParams) classify(e float64) Biome {
	switch {
	case e >= p.MountainLevel:
		return BiomeMountain
	case e >= p.TransitionLevel:
		return BiomeTransition
	default:
		return BiomePlains
	}
}

// NoiseField is the default Field implementation: fractal opensimplex
// elevation with threshold biome bands. Deterministic per seed.
type NoiseField struct {
	noise  opensimplex.Noise
	params NoiseParams
}

// NewNoiseField creates a field seeded for reproducible generation.
func NewNoiseField(seed int64, params NoiseParams) *NoiseField {
	if params.Octaves < 1 {
		params.Octaves = 1
	}
	if params.Scale <= 0 {
		params.Scale = 1
	}
	if params.Lacunarity <= 0 {
		params.Lacunarity = 2
	}
	return &NoiseField{
		noise:  opensimplex.NewNormalized(seed),
		params: params,
	}
}

// Params returns the field's shape parameters.
func (f *NoiseField) Params() NoiseParams { return f.params }

// Elevation returns the normalized elevation in [0, 1] at a plane
// coordinate.
func (f *NoiseField) Elevation(x, z float64) float64 {
	freq := 1.0 / f.params.Scale
	amp := 1.0
	sum := 0.0
	norm := 0.0
	for o := 0; o < f.params.Octaves; o++ {
		sum += f.noise.Eval2(x*freq, z*freq) * amp
		norm += amp
		freq *= f.params.Lacunarity
		amp *= f.params.Gain
	}
	return sum / norm
}

// HeightAt returns the world elevation at a plane coordinate.
func (f *NoiseField) HeightAt(x, z float64) float64 {
	return f.Elevation(x, z) * f.params.MaxHeight
}

// BiomeAt classifies the ground at a plane coordinate.
func (f *NoiseField) BiomeAt(x, z float64) Biome {
	return f.params.classify(f.Elevation(x, z))
}
