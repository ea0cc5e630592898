package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats is one row of per-generation experiment output.
type GenerationStats struct {
	Generation     int     `csv:"generation"`
	Ticks          int     `csv:"ticks"`
	Survivors      int     `csv:"survivors"`
	Deaths         int     `csv:"deaths"`
	Meals          int     `csv:"meals"`
	SpawnFallbacks int     `csv:"spawn_fallbacks"`
	BestFitness    float64 `csv:"best_fitness"`
	MeanFitness    float64 `csv:"mean_fitness"`
	P50Fitness     float64 `csv:"p50_fitness"`
	P90Fitness     float64 `csv:"p90_fitness"`
	MeanEnergy     float64 `csv:"mean_energy"`
	MinEnergy      float64 `csv:"min_energy"`
}

// LogValue implements slog.LogValuer for structured logging.
func (gs GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", gs.Generation),
		slog.Int("ticks", gs.Ticks),
		slog.Int("survivors", gs.Survivors),
		slog.Int("deaths", gs.Deaths),
		slog.Int("meals", gs.Meals),
		slog.Int("spawn_fallbacks", gs.SpawnFallbacks),
		slog.Float64("best_fitness", gs.BestFitness),
		slog.Float64("mean_fitness", gs.MeanFitness),
		slog.Float64("p50_fitness", gs.P50Fitness),
		slog.Float64("p90_fitness", gs.P90Fitness),
		slog.Float64("mean_energy", gs.MeanEnergy),
		slog.Float64("min_energy", gs.MinEnergy),
	)
}

// LogStats logs the generation summary using slog.
func (gs GenerationStats) LogStats() {
	slog.Info("generation complete", "stats", gs)
}

// summarize returns the mean and the p50/p90 empirical quantiles of xs
// without mutating it. Zero values are returned for an empty slice.
func summarize(xs []float64) (mean, p50, p90 float64) {
	if len(xs) == 0 {
		return 0, 0, 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, p50, p90
}
