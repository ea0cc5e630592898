package main

import (
	"log"
	"math"
	"math/rand"
	"sync"

	"github.com/Lucieguerin431/bloomfall/config"
	"github.com/Lucieguerin431/bloomfall/sim"
	"github.com/Lucieguerin431/bloomfall/telemetry"
	"github.com/Lucieguerin431/bloomfall/terrain"
)

// FitnessEvaluator runs headless simulations and computes fitness.
// Evaluations run on a flat field so terrain noise never masks the effect
// of the parameters under test.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	genTicks    int
	seeds       []int64
	configPath  string

	// Best run tracking
	mu            sync.Mutex
	bestFitness   float64
	bestStats     []telemetry.GenerationStats
	lastMeanMeals float64 // mean meals per generation from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, generations, genTicks int, seeds []int64, configPath string) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		genTicks:    genTicks,
		seeds:       seeds,
		configPath:  configPath,
		bestFitness: math.Inf(1),
	}
}

// BestStats returns the per-generation stats from the best evaluation.
func (fe *FitnessEvaluator) BestStats() []telemetry.GenerationStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestStats
}

// LastMeanMeals returns the mean meals per generation from the most recent evaluation.
func (fe *FitnessEvaluator) LastMeanMeals() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMeanMeals
}

// runResult holds the results from a single simulation run.
type runResult struct {
	meanMeals float64
	stats     []telemetry.GenerationStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative mean meals per generation, averaged across seeds:
// more eating = lower (better) fitness.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	// Engines treat the config as read-only, so the seed runs share one copy.
	cfg, err := config.Load(fe.configPath)
	if err != nil {
		log.Fatalf("reloading config: %v", err)
	}
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var totalMeals float64
	var bestSeedMeals float64 = math.Inf(-1)
	var bestSeedStats []telemetry.GenerationStats

	for _, r := range results {
		totalMeals += r.meanMeals
		if r.meanMeals > bestSeedMeals {
			bestSeedMeals = r.meanMeals
			bestSeedStats = r.stats
		}
	}

	meanMeals := totalMeals / float64(len(fe.seeds))
	fitness := -meanMeals

	// Update best tracking
	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestStats = bestSeedStats
	}
	fe.lastMeanMeals = meanMeals
	fe.mu.Unlock()

	return fitness
}

// runSimulation executes a single headless run of the configured number of
// generations and returns the mean meals per generation.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) runResult {
	rng := rand.New(rand.NewSource(seed))
	eng := sim.New(cfg, terrain.Flat{}, sim.WithRNG(rng))

	var totalMeals int
	stats := make([]telemetry.GenerationStats, 0, fe.generations)

	for gen := 0; gen < fe.generations; gen++ {
		for tick := 0; tick < fe.genTicks; tick++ {
			eng.Update(cfg.Physics.DT)
		}
		gs := eng.NextGeneration()
		totalMeals += gs.Meals
		stats = append(stats, gs)
	}

	return runResult{
		meanMeals: float64(totalMeals) / float64(fe.generations),
		stats:     stats,
	}
}
