// Package terrain supplies ground elevation and biome classification to
// the simulation.
package terrain

// Biome classifies a ground sample.
type Biome uint8

const (
	BiomePlains Biome = iota
	BiomeTransition
	BiomeMountain
)

// String returns the biome name.
func (b Biome) String() string {
	switch b {
	case BiomePlains:
		return "plains"
	case BiomeTransition:
		return "transition"
	case BiomeMountain:
		return "mountain"
	default:
		return "unknown"
	}
}

// Field is the ground surface the simulation consumes: elevation for
// placement and a biome class for spawn validation.
type Field interface {
	HeightAt(x, z float64) float64
	BiomeAt(x, z float64) Biome
}

// GroundPoint maps a simulation-plane coordinate onto the 3D ground
// surface. The plane's first axis is world x, the plane's SECOND axis is
// world z, and elevation fills world y:
//
//	(px, py) -> (px, HeightAt(px, py), py)
//
// Every crossing between the 2D simulation and 3D ground space goes
// through this mapping; nothing else may reinterpret the axes.
func GroundPoint(f Field, px, py float64) (wx, wy, wz float64) {
	return px, f.HeightAt(px, py), py
}

// Flat is a zero-elevation, all-plains field for tests and tuning runs.
type Flat struct{}

// HeightAt returns zero everywhere.
func (Flat) HeightAt(x, z float64) float64 { return 0 }

// BiomeAt returns plains everywhere.
func (Flat) BiomeAt(x, z float64) Biome { return BiomePlains }
