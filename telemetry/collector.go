package telemetry

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Collector accumulates events for the generation in flight. All methods
// are safe on a nil receiver so a disabled collector can stay nil.
type Collector struct {
	generation     int
	ticks          int
	meals          int
	deaths         int
	spawnFallbacks int
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// BeginGeneration clears the counters for a new generation.
func (c *Collector) BeginGeneration(generation int) {
	if c == nil {
		return
	}
	*c = Collector{generation: generation}
}

// RecordTick counts one completed simulation step.
func (c *Collector) RecordTick() {
	if c == nil {
		return
	}
	c.ticks++
}

// RecordMeal counts one food consumption.
func (c *Collector) RecordMeal() {
	if c == nil {
		return
	}
	c.meals++
}

// RecordDeath counts one creature running out of energy.
func (c *Collector) RecordDeath() {
	if c == nil {
		return
	}
	c.deaths++
}

// RecordSpawnFallback counts one placement that exhausted its rejection
// attempts and kept the last candidate.
func (c *Collector) RecordSpawnFallback() {
	if c == nil {
		return
	}
	c.spawnFallbacks++
}

// Flush folds the counters and the end-of-generation fitness and energy
// values into a stats row. Both slices cover every creature, dead ones
// included, so survivors can be derived from the death count.
func (c *Collector) Flush(fitness, energies []float64) GenerationStats {
	if c == nil {
		return GenerationStats{}
	}

	gs := GenerationStats{
		Generation:     c.generation,
		Ticks:          c.ticks,
		Deaths:         c.deaths,
		Meals:          c.meals,
		SpawnFallbacks: c.spawnFallbacks,
		Survivors:      len(fitness) - c.deaths,
	}

	if len(fitness) > 0 {
		gs.BestFitness = floats.Max(fitness)
		gs.MeanFitness, gs.P50Fitness, gs.P90Fitness = summarize(fitness)
	}
	if len(energies) > 0 {
		gs.MinEnergy = floats.Min(energies)
		gs.MeanEnergy = stat.Mean(energies, nil)
	}

	return gs
}
