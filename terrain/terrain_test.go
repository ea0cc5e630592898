package terrain

import (
	"testing"
)

// rampField raises ground linearly with x so tests can pick biomes by
// position.
type rampField struct{}

func (rampField) HeightAt(x, z float64) float64 { return x*10 + z }

func (rampField) BiomeAt(x, z float64) Biome {
	if x > 1 {
		return BiomeMountain
	}
	return BiomePlains
}

func TestGroundPointMapping(t *testing.T) {
	wx, wy, wz := GroundPoint(rampField{}, 3, 7)

	if wx != 3 {
		t.Errorf("world x: got %f, want 3", wx)
	}
	if wz != 7 {
		t.Errorf("world z: got %f, want plane y 7", wz)
	}
	if want := 3.0*10 + 7; wy != want {
		t.Errorf("world y: got %f, want HeightAt(3, 7) = %f", wy, want)
	}
}

func TestFlatField(t *testing.T) {
	var f Flat
	if h := f.HeightAt(100, -40); h != 0 {
		t.Errorf("flat height: got %f, want 0", h)
	}
	if b := f.BiomeAt(100, -40); b != BiomePlains {
		t.Errorf("flat biome: got %v, want plains", b)
	}
}

func TestBiomeString(t *testing.T) {
	cases := []struct {
		biome Biome
		want  string
	}{
		{BiomePlains, "plains"},
		{BiomeTransition, "transition"},
		{BiomeMountain, "mountain"},
		{Biome(99), "unknown"},
	}
	for _, c := range cases {
		if got := c.biome.String(); got != c.want {
			t.Errorf("Biome(%d).String() = %q, want %q", c.biome, got, c.want)
		}
	}
}

func TestClassifyThresholds(t *testing.T) {
	p := DefaultNoiseParams()

	if got := p.classify(p.MountainLevel); got != BiomeMountain {
		t.Errorf("elevation at mountain level: got %v, want mountain", got)
	}
	if got := p.classify(p.MountainLevel - 0.001); got != BiomeTransition {
		t.Errorf("elevation just below mountain level: got %v, want transition", got)
	}
	if got := p.classify(p.TransitionLevel); got != BiomeTransition {
		t.Errorf("elevation at transition level: got %v, want transition", got)
	}
	if got := p.classify(p.TransitionLevel - 0.001); got != BiomePlains {
		t.Errorf("elevation just below transition level: got %v, want plains", got)
	}
	if got := p.classify(0); got != BiomePlains {
		t.Errorf("elevation 0: got %v, want plains", got)
	}
	if got := p.classify(1); got != BiomeMountain {
		t.Errorf("elevation 1: got %v, want mountain", got)
	}
}

func TestNoiseFieldDeterministic(t *testing.T) {
	a := NewNoiseField(7, DefaultNoiseParams())
	b := NewNoiseField(7, DefaultNoiseParams())

	for _, pt := range [][2]float64{{0, 0}, {13.5, -40}, {199, 87}, {-150, -150}} {
		ha := a.HeightAt(pt[0], pt[1])
		hb := b.HeightAt(pt[0], pt[1])
		if ha != hb {
			t.Fatalf("same seed diverged at (%f, %f): %f vs %f", pt[0], pt[1], ha, hb)
		}
		if a.BiomeAt(pt[0], pt[1]) != b.BiomeAt(pt[0], pt[1]) {
			t.Fatalf("same seed biome diverged at (%f, %f)", pt[0], pt[1])
		}
	}
}

func TestNoiseFieldSeedsDiffer(t *testing.T) {
	a := NewNoiseField(1, DefaultNoiseParams())
	b := NewNoiseField(2, DefaultNoiseParams())

	same := true
	for x := -200.0; x <= 200 && same; x += 37 {
		for z := -200.0; z <= 200 && same; z += 41 {
			if a.HeightAt(x, z) != b.HeightAt(x, z) {
				same = false
			}
		}
	}
	if same {
		t.Fatal("different seeds produced identical fields over the sample grid")
	}
}

func TestNoiseFieldRanges(t *testing.T) {
	p := DefaultNoiseParams()
	f := NewNoiseField(42, p)

	for x := -200.0; x <= 200; x += 23 {
		for z := -200.0; z <= 200; z += 29 {
			e := f.Elevation(x, z)
			if e < 0 || e > 1 {
				t.Fatalf("elevation at (%f, %f) = %f outside [0,1]", x, z, e)
			}
			h := f.HeightAt(x, z)
			if h < 0 || h > p.MaxHeight {
				t.Fatalf("height at (%f, %f) = %f outside [0, %f]", x, z, h, p.MaxHeight)
			}
		}
	}
}
