package phenotype

import (
	"math/rand"
	"testing"
)

func TestFromGenesRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		genes := make([]float64, GeneCount)
		for i := range genes {
			genes[i] = rng.Float64()
		}
		p := FromGenes(genes)

		if p.BodyScale < 0.6 || p.BodyScale > 1.6 {
			t.Fatalf("body scale %f outside [0.6, 1.6]", p.BodyScale)
		}
		if p.Hue < 0 || p.Hue >= 360.0001 {
			t.Fatalf("hue %f outside [0, 360]", p.Hue)
		}
		if p.Saturation < 0.35 || p.Saturation > 0.9 {
			t.Fatalf("saturation %f outside [0.35, 0.9]", p.Saturation)
		}
		if p.LimbPairs < 1 || p.LimbPairs > 4 {
			t.Fatalf("limb pairs %d outside [1, 4]", p.LimbPairs)
		}
		if p.Pattern < 0 || p.Pattern > 1 {
			t.Fatalf("pattern %f outside [0, 1]", p.Pattern)
		}
	}
}

func TestFromGenesDeterministic(t *testing.T) {
	genes := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	a := FromGenes(genes)
	b := FromGenes(genes)
	if a != b {
		t.Fatal("same genome produced different phenotypes")
	}
}

func TestFromGenesClampsAndDefaults(t *testing.T) {
	// Out-of-range genes clamp rather than blow up downstream consumers.
	p := FromGenes([]float64{-5, 99, -1, 2, 0, 0, 0, 0, 0, 0})
	if p.BodyScale != 0.6 {
		t.Errorf("clamped body scale: got %f, want 0.6", p.BodyScale)
	}
	if p.Hue != 360 {
		t.Errorf("clamped hue: got %f, want 360", p.Hue)
	}
	if p.LimbPairs != 4 {
		t.Errorf("clamped limb pairs: got %d, want 4", p.LimbPairs)
	}

	// A short genome reads neutral values for the missing genes.
	short := FromGenes([]float64{1})
	if short.Hue != 180 {
		t.Errorf("missing hue gene: got %f, want neutral 180", short.Hue)
	}
	if !short.Crest {
		t.Error("missing crest gene: want crest at neutral 0.5")
	}
}

func TestCrestThreshold(t *testing.T) {
	genes := make([]float64, GeneCount)
	genes[GeneCrest] = 0.49
	if FromGenes(genes).Crest {
		t.Error("crest present below threshold")
	}
	genes[GeneCrest] = 0.5
	if !FromGenes(genes).Crest {
		t.Error("crest absent at threshold")
	}
}

func TestColorKnownHues(t *testing.T) {
	red := Phenotype{Hue: 0, Saturation: 1}
	r, g, b := red.Color()
	if r != 216 || g != 0 || b != 0 {
		t.Errorf("hue 0: got (%d, %d, %d), want (216, 0, 0)", r, g, b)
	}

	green := Phenotype{Hue: 120, Saturation: 1}
	r, g, b = green.Color()
	if r != 0 || g != 216 || b != 0 {
		t.Errorf("hue 120: got (%d, %d, %d), want (0, 216, 0)", r, g, b)
	}

	blue := Phenotype{Hue: 240, Saturation: 1}
	r, g, b = blue.Color()
	if r != 0 || g != 0 || b != 216 {
		t.Errorf("hue 240: got (%d, %d, %d), want (0, 0, 216)", r, g, b)
	}

	// Zero saturation is an even gray regardless of hue.
	gray := Phenotype{Hue: 77, Saturation: 0}
	r, g, b = gray.Color()
	if r != g || g != b {
		t.Errorf("zero saturation: got (%d, %d, %d), want gray", r, g, b)
	}
}
