// Package config provides configuration loading and access for the
// simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Population PopulationConfig `yaml:"population"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Brain      BrainConfig      `yaml:"brain"`
	Energy     EnergyConfig     `yaml:"energy"`
	Food       FoodConfig       `yaml:"food"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds arena dimensions. The arena is a square of side Size
// centered on the origin of the simulation plane.
type WorldConfig struct {
	Size float64 `yaml:"size"`
}

// PhysicsConfig holds per-tick locomotion parameters.
type PhysicsConfig struct {
	DT        float64 `yaml:"dt"`         // default tick delta when the host passes none
	TurnGain  float64 `yaml:"turn_gain"`  // heading delta per unit of brain output 0
	AccelGain float64 `yaml:"accel_gain"` // speed delta per unit of brain output 1
	MaxSpeed  float64 `yaml:"max_speed"`  // speed magnitude cap; 0 leaves speed unbounded
}

// PopulationConfig holds evolutionary population parameters.
type PopulationConfig struct {
	Size      int `yaml:"size"`
	GeneCount int `yaml:"gene_count"`
}

// MutationConfig holds per-gene mutation parameters.
type MutationConfig struct {
	Rate   float64 `yaml:"rate"`
	Amount float64 `yaml:"amount"`
}

// BrainConfig holds network topology.
type BrainConfig struct {
	Inputs  int `yaml:"inputs"`
	Hidden  int `yaml:"hidden"`
	Outputs int `yaml:"outputs"`
}

// EnergyConfig holds the energy economy.
type EnergyConfig struct {
	Initial   float64 `yaml:"initial"`    // energy at spawn
	BaseCost  float64 `yaml:"base_cost"`  // drain per tick for existing
	SpeedCost float64 `yaml:"speed_cost"` // extra drain per tick per unit of |speed|
	MealBonus float64 `yaml:"meal_bonus"` // energy granted per consumed food item
}

// FoodConfig holds food pool parameters.
type FoodConfig struct {
	Count        int     `yaml:"count"`
	PickupRadius float64 `yaml:"pickup_radius"`
}

// SpawnConfig holds position sampling parameters.
type SpawnConfig struct {
	MaxAttempts int `yaml:"max_attempts"` // biome rejection retries before falling back
}

// TerrainConfig holds procedural ground generation parameters.
type TerrainConfig struct {
	Seed            int64   `yaml:"seed"`
	Scale           float64 `yaml:"scale"`
	Octaves         int     `yaml:"octaves"`
	Lacunarity      float64 `yaml:"lacunarity"`
	Gain            float64 `yaml:"gain"`
	MaxHeight       float64 `yaml:"max_height"`
	MountainLevel   float64 `yaml:"mountain_level"`
	TransitionLevel float64 `yaml:"transition_level"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogStats bool `yaml:"log_stats"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	HalfSize       float64 // arena half-extent from the origin
	PickupRadiusSq float64 // squared consumption radius for distance tests
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config and fills
// zero values that would otherwise wedge the simulation.
func (c *Config) computeDerived() {
	if c.Population.Size == 0 {
		c.Population.Size = 24
	}
	if c.Population.GeneCount == 0 {
		c.Population.GeneCount = 10
	}
	if c.Brain.Inputs == 0 {
		c.Brain.Inputs = 5
	}
	if c.Brain.Hidden == 0 {
		c.Brain.Hidden = 4
	}
	if c.Brain.Outputs == 0 {
		c.Brain.Outputs = 2
	}
	if c.Physics.DT == 0 {
		c.Physics.DT = 1.0
	}
	if c.Spawn.MaxAttempts == 0 {
		c.Spawn.MaxAttempts = 24
	}

	c.Derived.HalfSize = c.World.Size / 2
	c.Derived.PickupRadiusSq = c.Food.PickupRadius * c.Food.PickupRadius
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
