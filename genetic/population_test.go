package genetic

import (
	"math/rand"
	"testing"

	"github.com/Lucieguerin431/bloomfall/neural"
)

func testPopulation(size int) *Population {
	rng := rand.New(rand.NewSource(42))
	return NewPopulation(size, DefaultGeneCount, DefaultMutationRate, DefaultMutationAmount, rng)
}

func TestNewPopulation(t *testing.T) {
	p := testPopulation(20)

	if p.Size() != 20 {
		t.Fatalf("size: got %d, want 20", p.Size())
	}
	if p.Generation() != 0 {
		t.Errorf("generation: got %d, want 0", p.Generation())
	}
	if len(p.individuals) != 20 {
		t.Fatalf("individuals: got %d, want 20", len(p.individuals))
	}
	for i, ind := range p.individuals {
		if len(ind.Genes) != DefaultGeneCount {
			t.Fatalf("individual %d gene count: got %d, want %d", i, len(ind.Genes), DefaultGeneCount)
		}
		if ind.Fitness != 0 {
			t.Errorf("individual %d fitness: got %d, want 0", i, ind.Fitness)
		}
		if ind.Brain != nil {
			t.Errorf("individual %d has a brain genome before any was threaded through", i)
		}
		for g, v := range ind.Genes {
			if v < 0 || v > 1 {
				t.Fatalf("individual %d gene %d = %f outside [0,1]", i, g, v)
			}
		}
	}
}

func TestCrossoverAtBounds(t *testing.T) {
	a := []float64{0.0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}
	b := []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}

	child := crossoverAt(a, b, 0)
	for i := range child {
		if child[i] != b[i] {
			t.Fatalf("cut 0: gene %d = %f, want %f", i, child[i], b[i])
		}
	}

	child = crossoverAt(a, b, len(a))
	for i := range child {
		if child[i] != a[i] {
			t.Fatalf("cut %d: gene %d = %f, want %f", len(a), i, child[i], a[i])
		}
	}
}

func TestCrossoverAtMidpoint(t *testing.T) {
	a := []float64{0.0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}
	b := []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}

	child := crossoverAt(a, b, 5)
	for i := 0; i < 5; i++ {
		if child[i] != a[i] {
			t.Errorf("gene %d = %f, want parent A's %f", i, child[i], a[i])
		}
	}
	for i := 5; i < 10; i++ {
		if child[i] != b[i] {
			t.Errorf("gene %d = %f, want parent B's %f", i, child[i], b[i])
		}
	}
}

func TestCrossoverIsSinglePoint(t *testing.T) {
	p := testPopulation(4)
	a := make([]float64, DefaultGeneCount)
	b := make([]float64, DefaultGeneCount)
	for i := range a {
		a[i] = 0
		b[i] = 1
	}

	for trial := 0; trial < 100; trial++ {
		child := p.Crossover(a, b)
		if len(child) != DefaultGeneCount {
			t.Fatalf("child length: got %d, want %d", len(child), DefaultGeneCount)
		}
		// A single cut means all of A's genes precede all of B's.
		seenB := false
		for i, v := range child {
			switch v {
			case 1:
				seenB = true
			case 0:
				if seenB {
					t.Fatalf("trial %d: parent A gene at index %d after a parent B gene", trial, i)
				}
			default:
				t.Fatalf("trial %d: gene %d = %f came from neither parent", trial, i, v)
			}
		}
	}
}

func TestMutateClamp(t *testing.T) {
	p := testPopulation(4)
	genes := []float64{0, 0.01, 0.5, 0.99, 1, 0.25, 0.75, 0.33, 0.66, 0.5}

	for i := 0; i < 1000; i++ {
		p.Mutate(genes, 1.0, 5.0)
		for g, v := range genes {
			if v < 0 || v > 1 {
				t.Fatalf("iteration %d: gene %d = %f escaped [0,1]", i, g, v)
			}
		}
	}
}

func TestMutateRateZeroIdentity(t *testing.T) {
	p := testPopulation(4)
	genes := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	orig := append([]float64(nil), genes...)

	p.Mutate(genes, 0, DefaultMutationAmount)
	for i := range genes {
		if genes[i] != orig[i] {
			t.Fatalf("gene %d changed under rate 0: %f -> %f", i, orig[i], genes[i])
		}
	}
}

func TestNextGenerationReplacesWholesale(t *testing.T) {
	p := testPopulation(20)
	p.IncrementFitness(3)
	p.IncrementFitness(3)
	p.IncrementFitness(7)

	next := p.NextGeneration([]int{3, 7})

	if len(next) != 20 {
		t.Fatalf("next generation size: got %d, want 20", len(next))
	}
	if p.Generation() != 1 {
		t.Fatalf("generation: got %d, want 1", p.Generation())
	}
	for i, ind := range next {
		if ind.Fitness != 0 {
			t.Errorf("individual %d fitness: got %d, want 0", i, ind.Fitness)
		}
		if len(ind.Genes) != DefaultGeneCount {
			t.Fatalf("individual %d gene count: got %d, want %d", i, len(ind.Genes), DefaultGeneCount)
		}
		for g, v := range ind.Genes {
			if v < 0 || v > 1 {
				t.Fatalf("individual %d gene %d = %f outside [0,1]", i, g, v)
			}
		}
	}
}

func TestNextGenerationEmptySelection(t *testing.T) {
	p := testPopulation(20)

	for gen := 1; gen <= 50; gen++ {
		next := p.NextGeneration(nil)
		if len(next) != 20 {
			t.Fatalf("generation %d: size %d, want 20", gen, len(next))
		}
		if p.Generation() != gen {
			t.Fatalf("generation counter: got %d, want %d", p.Generation(), gen)
		}
	}
}

func TestNextGenerationElite(t *testing.T) {
	p := testPopulation(8)
	want := append([]float64(nil), p.individuals[5].Genes...)

	next := p.NextGeneration([]int{5})

	// A one-member pool makes the elite deterministic.
	for i, v := range next[0].Genes {
		if v != want[i] {
			t.Fatalf("elite gene %d = %f, want verbatim parent gene %f", i, v, want[i])
		}
	}
	if next[0].Brain != nil {
		t.Error("elite carries a brain genome")
	}
}

func TestNextGenerationCopiesGenes(t *testing.T) {
	p := testPopulation(8)
	parent := p.individuals[2].Genes

	next := p.NextGeneration([]int{2})

	parent[0] = 42
	if next[0].Genes[0] == 42 {
		t.Fatal("elite aliases the parent's gene slice")
	}
}

func TestNextGenerationIgnoresBrains(t *testing.T) {
	p := testPopulation(8)
	p.individuals[1].Brain = &neural.Genome{
		InputWeights:  [][]float64{{1}, {1}},
		OutputWeights: [][]float64{{1}},
	}

	next := p.NextGeneration([]int{1})
	for i, ind := range next {
		if ind.Brain != nil {
			t.Fatalf("individual %d inherited a brain genome through reproduction", i)
		}
	}
}

func TestSetBrainClones(t *testing.T) {
	p := testPopulation(4)
	g := &neural.Genome{
		InputWeights:  [][]float64{{1}, {2}},
		OutputWeights: [][]float64{{3}},
	}

	p.SetBrain(2, g)
	g.InputWeights[0][0] = 99

	stored := p.Brain(2)
	if stored == nil {
		t.Fatal("brain not stored")
	}
	if stored.InputWeights[0][0] != 1 {
		t.Error("SetBrain aliased the caller's genome")
	}

	p.SetBrain(2, nil)
	if p.Brain(2) != nil {
		t.Error("SetBrain(nil) should clear the genome")
	}
}

func TestFitnessBookkeeping(t *testing.T) {
	p := testPopulation(4)

	p.IncrementFitness(2)
	p.IncrementFitness(2)
	if got := p.Fitness(2); got != 2 {
		t.Fatalf("fitness: got %d, want 2", got)
	}

	vals := p.FitnessValues()
	if len(vals) != 4 || vals[2] != 2 || vals[0] != 0 {
		t.Fatalf("fitness values: got %v, want [0 0 2 0]", vals)
	}

	p.ResetFitness()
	for i, v := range p.FitnessValues() {
		if v != 0 {
			t.Fatalf("fitness %d after reset: got %d, want 0", i, v)
		}
	}
}

func TestGenesReturnsCopy(t *testing.T) {
	p := testPopulation(4)
	g := p.Genes(0)
	g[0] = 42
	if p.individuals[0].Genes[0] == 42 {
		t.Fatal("Genes returned the underlying slice")
	}
}

func TestIndividualsReturnsDeepCopy(t *testing.T) {
	p := testPopulation(4)
	p.IncrementFitness(2)

	inds := p.Individuals()
	if len(inds) != 4 {
		t.Fatalf("len = %d, want 4", len(inds))
	}
	if inds[2].Fitness != 1 {
		t.Errorf("fitness[2] = %d, want 1", inds[2].Fitness)
	}

	inds[0].Genes[0] = 42
	inds[0].Fitness = 99
	if p.individuals[0].Genes[0] == 42 {
		t.Error("Individuals aliased the gene slice")
	}
	if p.individuals[0].Fitness == 99 {
		t.Error("Individuals aliased the fitness record")
	}
}
