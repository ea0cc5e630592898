// Package phenotype maps appearance genomes to display traits. It is the
// read side of the gene vector: renderers consume it, nothing here feeds
// back into evolution.
package phenotype

import "math"

// Gene indices within an appearance genome.
const (
	GeneBodyScale = iota
	GeneHue
	GeneSaturation
	GeneLimbPairs
	GeneLimbLength
	GeneCrest
	GeneEyeSize
	GeneTailLength
	GeneStride
	GenePattern

	GeneCount = 10
)

// Phenotype holds the display traits derived from one genome.
type Phenotype struct {
	BodyScale  float64 // overall mesh scale multiplier
	Hue        float64 // base body hue in degrees [0, 360)
	Saturation float64 // base body saturation [0.35, 0.9]
	LimbPairs  int     // walking limb pairs, 1 to 4
	LimbLength float64 // limb length multiplier
	Crest      bool    // dorsal crest present
	EyeSize    float64 // eye radius as a fraction of body scale
	TailLength float64 // tail length multiplier
	Stride     float64 // gait cycle length multiplier
	Pattern    float64 // body pattern blend factor [0, 1]
}

// FromGenes derives the phenotype for a genome. Gene values are clamped
// into [0, 1] before mapping; missing genes read as the neutral 0.5.
func FromGenes(genes []float64) Phenotype {
	g := func(i int) float64 {
		if i >= len(genes) {
			return 0.5
		}
		v := genes[i]
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}

	pairs := 1 + int(g(GeneLimbPairs)*4)
	if pairs > 4 {
		pairs = 4
	}

	return Phenotype{
		BodyScale:  0.6 + g(GeneBodyScale),
		Hue:        g(GeneHue) * 360,
		Saturation: 0.35 + g(GeneSaturation)*0.55,
		LimbPairs:  pairs,
		LimbLength: 0.5 + g(GeneLimbLength),
		Crest:      g(GeneCrest) >= 0.5,
		EyeSize:    0.05 + g(GeneEyeSize)*0.2,
		TailLength: g(GeneTailLength) * 1.5,
		Stride:     0.75 + g(GeneStride)*0.5,
		Pattern:    g(GenePattern),
	}
}

// Color returns the base body color as RGB bytes.
func (p Phenotype) Color() (r, g, b uint8) {
	return hsvToRGB(p.Hue, p.Saturation, 0.85)
}

// hsvToRGB converts hue [0,360), saturation [0,1], value [0,1] to RGB.
func hsvToRGB(h, s, v float64) (r, g, b uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var rf, gf, bf float64
	switch {
	case h < 60:
		rf, gf, bf = c, x, 0
	case h < 120:
		rf, gf, bf = x, c, 0
	case h < 180:
		rf, gf, bf = 0, c, x
	case h < 240:
		rf, gf, bf = 0, x, c
	case h < 300:
		rf, gf, bf = x, 0, c
	default:
		rf, gf, bf = c, 0, x
	}

	r = uint8((rf + m) * 255)
	g = uint8((gf + m) * 255)
	b = uint8((bf + m) * 255)
	return r, g, b
}
