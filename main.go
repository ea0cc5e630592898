package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/Lucieguerin431/bloomfall/config"
	"github.com/Lucieguerin431/bloomfall/sim"
	"github.com/Lucieguerin431/bloomfall/telemetry"
	"github.com/Lucieguerin431/bloomfall/terrain"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	generations := flag.Int("generations", 50, "Number of generations to run")
	genTicks := flag.Int("gen-ticks", 600, "Simulation ticks per generation")
	dt := flag.Float64("dt", 0, "Tick delta in simulation time units (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	runDB := flag.String("run-db", "", "Path to sqlite run history database (empty = disabled)")
	runLabel := flag.String("run-label", "headless", "Label stored with the run in the history database")
	logStats := flag.Bool("log-stats", true, "Output per-generation stats via slog")
	dumpConfig := flag.String("dump-config", "", "Write the effective config YAML to this path and exit")
	snapshot := flag.Bool("snapshot", false, "Write a final world snapshot JSON into the output directory")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *dumpConfig != "" {
		if err := cfg.WriteYAML(*dumpConfig); err != nil {
			slog.Error("failed to dump config", "error", err)
			os.Exit(1)
		}
		return
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	// Use config tick delta if not overridden by CLI
	tickDT := cfg.Physics.DT
	if *dt > 0 {
		tickDT = *dt
	}
	logGenerations := *logStats && cfg.Telemetry.LogStats

	ground := terrain.NewNoiseField(cfg.Terrain.Seed, terrain.NoiseParams{
		Scale:           cfg.Terrain.Scale,
		Octaves:         cfg.Terrain.Octaves,
		Lacunarity:      cfg.Terrain.Lacunarity,
		Gain:            cfg.Terrain.Gain,
		MaxHeight:       cfg.Terrain.MaxHeight,
		MountainLevel:   cfg.Terrain.MountainLevel,
		TransitionLevel: cfg.Terrain.TransitionLevel,
	})

	ctx := context.Background()

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	store, err := telemetry.OpenRunStore(ctx, *runDB, *runLabel, rngSeed)
	if err != nil {
		slog.Error("failed to open run database", "error", err)
		os.Exit(1)
	}

	eng := sim.New(cfg, ground, sim.WithRNG(rng))

	slog.Info("starting headless run",
		"seed", rngSeed,
		"generations", *generations,
		"gen_ticks", *genTicks,
		"dt", tickDT,
		"terrain_seed", cfg.Terrain.Seed,
	)

	for gen := 0; gen < *generations; gen++ {
		for tick := 0; tick < *genTicks; tick++ {
			eng.Update(tickDT)
		}

		stats := eng.NextGeneration()
		if logGenerations {
			stats.LogStats()
		}
		if err := out.WriteStats(stats); err != nil {
			slog.Error("failed to write stats row", "error", err, "generation", stats.Generation)
		}
		if err := store.SaveStats(ctx, stats); err != nil {
			slog.Error("failed to save stats row", "error", err, "generation", stats.Generation)
		}
	}

	if *snapshot {
		if out == nil {
			slog.Warn("snapshot requested without -output-dir, skipping")
		} else if err := out.WriteJSON("snapshot.json", eng.Snapshot()); err != nil {
			slog.Error("failed to write snapshot", "error", err)
		}
	}

	if err := store.FinishRun(ctx, *generations); err != nil {
		slog.Error("failed to finalize run", "error", err)
	}
	if err := store.Close(); err != nil {
		slog.Error("failed to close run database", "error", err)
	}
	if err := out.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}

	slog.Info("run complete", "generations", eng.Generation())
}
