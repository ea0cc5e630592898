// Package genetic owns the genotype population and its generational
// operators: selection-pool construction, single-point crossover, per-gene
// mutation, elitism, and wholesale replacement.
package genetic

import (
	"math/rand"

	"github.com/Lucieguerin431/bloomfall/neural"
)

// Operator defaults.
const (
	DefaultGeneCount      = 10
	DefaultMutationRate   = 0.08
	DefaultMutationAmount = 0.12

	// Breeding pool size when no individual was selected.
	fallbackPoolSize = 3
)

// Individual is one genotype plus its fitness record. Brain optionally
// carries serialized network weights; the generational operators never
// read or write it, and spawners randomize a fresh brain when it is nil.
type Individual struct {
	Genes   []float64
	Fitness int
	Brain   *neural.Genome
}

// Population holds the evolving individuals. Reproduction always allocates
// new Individuals; nothing mutates a genotype in place once bred.
type Population struct {
	individuals []Individual
	generation  int

	size           int
	geneCount      int
	mutationRate   float64
	mutationAmount float64
	rng            *rand.Rand
}

// NewPopulation creates a population of size individuals with geneCount
// uniform random genes each. The rng drives all genetic operators.
func NewPopulation(size, geneCount int, mutationRate, mutationAmount float64, rng *rand.Rand) *Population {
	p := &Population{
		size:           size,
		geneCount:      geneCount,
		mutationRate:   mutationRate,
		mutationAmount: mutationAmount,
		rng:            rng,
	}
	p.InitRandom()
	return p
}

// InitRandom replaces the whole population with fresh individuals, every
// gene an independent uniform draw in [0, 1], fitness zero.
func (p *Population) InitRandom() {
	p.individuals = make([]Individual, p.size)
	for i := range p.individuals {
		genes := make([]float64, p.geneCount)
		for g := range genes {
			genes[g] = p.rng.Float64()
		}
		p.individuals[i] = Individual{Genes: genes}
	}
}

// Size returns the population size.
func (p *Population) Size() int { return p.size }

// GeneCount returns the genome length.
func (p *Population) GeneCount() int { return p.geneCount }

// Generation returns the number of completed generational transitions.
func (p *Population) Generation() int { return p.generation }

// Genes returns a copy of individual i's genome.
func (p *Population) Genes(i int) []float64 {
	return append([]float64(nil), p.individuals[i].Genes...)
}

// Brain returns individual i's brain genome, nil when none was threaded
// through.
func (p *Population) Brain(i int) *neural.Genome {
	return p.individuals[i].Brain
}

// SetBrain pins a brain genome on individual i. Spawners decode it
// instead of randomizing; NextGeneration drops it like any other brain.
func (p *Population) SetBrain(i int, g *neural.Genome) {
	p.individuals[i].Brain = g.Clone()
}

// Fitness returns individual i's fitness.
func (p *Population) Fitness(i int) int {
	return p.individuals[i].Fitness
}

// Individuals returns a deep copy of the current individuals for
// inspection. Mutating the result does not touch the population.
func (p *Population) Individuals() []Individual {
	out := make([]Individual, len(p.individuals))
	for i, ind := range p.individuals {
		out[i] = Individual{
			Genes:   append([]float64(nil), ind.Genes...),
			Fitness: ind.Fitness,
			Brain:   ind.Brain.Clone(),
		}
	}
	return out
}

// FitnessValues returns a copy of all fitness values, indexed by slot.
func (p *Population) FitnessValues() []int {
	out := make([]int, len(p.individuals))
	for i := range p.individuals {
		out[i] = p.individuals[i].Fitness
	}
	return out
}

// IncrementFitness adds one successful-meal credit to individual i.
// Fitness only ever grows within a generation.
func (p *Population) IncrementFitness(i int) {
	p.individuals[i].Fitness++
}

// ResetFitness zeroes every individual's fitness. Called exactly once per
// generation, at spawn time.
func (p *Population) ResetFitness() {
	for i := range p.individuals {
		p.individuals[i].Fitness = 0
	}
}

// Crossover breeds a child genome from two parents with a single cut point
// sampled uniformly in [0, geneCount).
func (p *Population) Crossover(a, b []float64) []float64 {
	return crossoverAt(a, b, p.rng.Intn(p.geneCount))
}

// crossoverAt copies a's genes below the cut and b's genes from the cut
// onward. cut 0 reproduces b entirely; cut len(a) reproduces a.
func crossoverAt(a, b []float64, cut int) []float64 {
	child := make([]float64, len(a))
	copy(child[:cut], a[:cut])
	copy(child[cut:], b[cut:])
	return child
}

// Mutate perturbs genes in place: each gene independently, with
// probability rate, gains a uniform delta in [-amount, amount] and is
// clamped back into [0, 1]. Rate zero leaves the genome untouched.
func (p *Population) Mutate(genes []float64, rate, amount float64) {
	for i := range genes {
		if p.rng.Float64() < rate {
			genes[i] = clamp01(genes[i] + (p.rng.Float64()*2-1)*amount)
		}
	}
}

// NextGeneration replaces the population wholesale. The breeding pool is
// the genomes at the selected indices; when the selection is empty it
// falls back to three uniformly random picks so evolution never stalls.
// One uniformly sampled pool member survives verbatim as the elite, the
// remaining slots are bred by crossover plus mutation from pool parents
// sampled with replacement. Increments the generation counter and returns
// the new individuals. Brain genomes are not propagated.
func (p *Population) NextGeneration(selected []int) []Individual {
	pool := make([][]float64, 0, max(len(selected), fallbackPoolSize))
	for _, idx := range selected {
		pool = append(pool, p.individuals[idx].Genes)
	}
	if len(pool) == 0 {
		for i := 0; i < fallbackPoolSize; i++ {
			pool = append(pool, p.individuals[p.rng.Intn(len(p.individuals))].Genes)
		}
	}

	next := make([]Individual, 0, p.size)

	elite := pool[p.rng.Intn(len(pool))]
	next = append(next, Individual{Genes: append([]float64(nil), elite...)})

	for len(next) < p.size {
		a := pool[p.rng.Intn(len(pool))]
		b := pool[p.rng.Intn(len(pool))]
		child := p.Crossover(a, b)
		p.Mutate(child, p.mutationRate, p.mutationAmount)
		next = append(next, Individual{Genes: child})
	}

	p.individuals = next
	p.generation++
	return next
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
