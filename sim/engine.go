// Package sim drives the generational creature simulation: an ark ECS
// world of creatures steered by evolved neural networks, a shared food
// pool, and the spawn/tick/transition state machine around them.
package sim

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/Lucieguerin431/bloomfall/components"
	"github.com/Lucieguerin431/bloomfall/config"
	"github.com/Lucieguerin431/bloomfall/genetic"
	"github.com/Lucieguerin431/bloomfall/neural"
	"github.com/Lucieguerin431/bloomfall/phenotype"
	"github.com/Lucieguerin431/bloomfall/systems"
	"github.com/Lucieguerin431/bloomfall/telemetry"
	"github.com/Lucieguerin431/bloomfall/terrain"
)

// Phase is the engine lifecycle state.
type Phase uint8

const (
	PhaseSpawning Phase = iota
	PhaseActive
	PhaseTransitioning
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseActive:
		return "active"
	case PhaseTransitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// SpawnInfo describes one placed creature. WorldX/WorldY/WorldZ is the
// terrain.GroundPoint mapping of the planar position, for observers that
// render or index the 3D scene.
type SpawnInfo struct {
	ID      uint32
	Slot    int
	X, Y    float64
	WorldX  float64
	WorldY  float64
	WorldZ  float64
	Heading float64
	Look    phenotype.Phenotype
}

// SpawnObserver is notified once per creature placement.
type SpawnObserver func(SpawnInfo)

// Option configures an Engine.
type Option func(*Engine)

// WithRNG sets the random source driving placement, brains, and breeding.
func WithRNG(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithSpawnObserver registers a callback invoked for every placement.
func WithSpawnObserver(fn SpawnObserver) Option {
	return func(e *Engine) { e.observer = fn }
}

// Engine owns the ECS world, the food pool, and the population, and runs
// the Spawning -> Active -> Transitioning cycle over them. The host owns
// the loop; exactly one goroutine may drive an Engine, and Update must
// never overlap NextGeneration.
type Engine struct {
	cfg    *config.Config
	ground terrain.Field
	rng    *rand.Rand

	world  *ecs.World
	mapper *ecs.Map4[components.Position, components.Motion, components.Energy, components.Agent]
	filter *ecs.Filter4[components.Position, components.Motion, components.Energy, components.Agent]

	// Brain storage (per entity by ID)
	brains map[uint32]*neural.Network

	pop     *genetic.Population
	sampler *systems.Sampler
	food    *systems.FoodPool

	collector *telemetry.Collector
	observer  SpawnObserver

	phase      Phase
	tick       int
	nextID     uint32
	aliveCount int

	// Reported food distance when the pool has no active item.
	noFoodDistance float64

	inputMismatchLogged bool
}

// New builds an engine over ground and spawns generation zero. The
// returned engine is in the Active phase.
func New(cfg *config.Config, ground terrain.Field, opts ...Option) *Engine {
	world := ecs.NewWorld()

	e := &Engine{
		cfg:    cfg,
		ground: ground,
		rng:    rand.New(rand.NewSource(1)),
		world:  world,
		mapper: ecs.NewMap4[components.Position, components.Motion, components.Energy, components.Agent](world),
		filter: ecs.NewFilter4[components.Position, components.Motion, components.Energy, components.Agent](world),
		brains: make(map[uint32]*neural.Network),

		collector: telemetry.NewCollector(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.pop = genetic.NewPopulation(
		cfg.Population.Size, cfg.Population.GeneCount,
		cfg.Mutation.Rate, cfg.Mutation.Amount, e.rng)
	e.sampler = systems.NewSampler(cfg.Derived.HalfSize, cfg.Spawn.MaxAttempts, ground, e.rng)
	e.food = systems.NewFoodPool(cfg.Food.Count, e.sampler)

	e.noFoodDistance = cfg.World.Size * math.Sqrt2

	e.spawn()
	return e
}

// spawn places one creature per Individual and ends in the Active phase.
func (e *Engine) spawn() {
	e.phase = PhaseSpawning
	e.tick = 0
	e.pop.ResetFitness()
	e.collector.BeginGeneration(e.pop.Generation())

	fallbacks := 0
	for slot := 0; slot < e.pop.Size(); slot++ {
		x, y, fallback := e.sampler.Sample()
		if fallback {
			fallbacks++
			e.collector.RecordSpawnFallback()
		}

		id := e.nextID
		e.nextID++
		e.brains[id] = e.brainFor(slot)

		pos := components.Position{X: x, Y: y}
		mot := components.Motion{Heading: e.rng.Float64() * 2 * math.Pi}
		energy := components.Energy{Value: e.cfg.Energy.Initial, Alive: true}
		agent := components.Agent{ID: id, Slot: slot}

		e.mapper.NewEntity(&pos, &mot, &energy, &agent)

		if e.observer != nil {
			wx, wy, wz := terrain.GroundPoint(e.ground, x, y)
			e.observer(SpawnInfo{
				ID:      id,
				Slot:    slot,
				X:       x,
				Y:       y,
				WorldX:  wx,
				WorldY:  wy,
				WorldZ:  wz,
				Heading: mot.Heading,
				Look:    phenotype.FromGenes(e.pop.Genes(slot)),
			})
		}
	}
	e.aliveCount = e.pop.Size()
	if fallbacks > 0 {
		slog.Warn("spawn placement fell back to unvalidated ground",
			"generation", e.pop.Generation(), "count", fallbacks)
	}

	e.phase = PhaseActive
}

// brainFor builds the brain for slot: a decoded genome when the
// individual carries one, fresh random weights otherwise.
func (e *Engine) brainFor(slot int) *neural.Network {
	if g := e.pop.Brain(slot); g != nil {
		net, err := neural.FromGenome(g)
		if err == nil {
			return net
		}
		slog.Warn("stored brain genome rejected, randomizing", "slot", slot, "err", err)
	}
	return neural.New(e.cfg.Brain.Inputs, e.cfg.Brain.Hidden, e.cfg.Brain.Outputs, e.rng)
}

// Update advances the active generation by one tick. dt <= 0 falls back
// to the configured default delta. Outside the Active phase this is a
// no-op.
func (e *Engine) Update(dt float64) {
	if e.phase != PhaseActive {
		return
	}
	if dt <= 0 {
		dt = e.cfg.Physics.DT
	}

	step := systems.StepParams{
		TurnGain:  e.cfg.Physics.TurnGain,
		AccelGain: e.cfg.Physics.AccelGain,
		MaxSpeed:  e.cfg.Physics.MaxSpeed,
		BaseCost:  e.cfg.Energy.BaseCost,
		SpeedCost: e.cfg.Energy.SpeedCost,
	}
	half := e.cfg.Derived.HalfSize
	pickupSq := e.cfg.Derived.PickupRadiusSq

	// One sequential pass. Food relocations made for creature i are
	// visible to every creature after i in the same tick.
	query := e.filter.Query()
	for query.Next() {
		pos, mot, energy, agent := query.Get()
		if !energy.Alive {
			continue
		}

		foodIdx, _, hasFood := e.food.Nearest(pos.X, pos.Y)
		var foodX, foodY float64
		if hasFood {
			item := e.food.Item(foodIdx)
			foodX, foodY = item.X, item.Y
		}

		sensors := systems.ComputeSensors(*pos, *mot, energy.Value, foodX, foodY, hasFood, e.noFoodDistance)
		agent.Sensors = sensors.Array()

		var outputs []float64
		if brain, ok := e.brains[agent.ID]; ok {
			var err error
			outputs, err = brain.Compute(sensors.AsSlice())
			if err != nil && !e.inputMismatchLogged {
				slog.Warn("sensor vector rejected by brain, steering zeroed", "id", agent.ID, "err", err)
				e.inputMismatchLogged = true
			}
		}

		systems.ApplySteering(mot, outputs, step)
		systems.Integrate(pos, *mot, dt)
		if systems.DrainEnergy(energy, mot.Speed, step) {
			e.aliveCount--
			e.collector.RecordDeath()
		}
		systems.ClampToArena(pos, half)

		// Dead creatures are not eligible to consume, even on the tick
		// they died.
		if energy.Alive && hasFood {
			dx := pos.X - foodX
			dy := pos.Y - foodY
			if dx*dx+dy*dy < pickupSq {
				e.food.Consume(foodIdx)
				energy.Value += e.cfg.Energy.MealBonus
				agent.Meals++
				e.pop.IncrementFitness(agent.Slot)
				e.collector.RecordMeal()
			}
		}
	}

	e.tick++
	e.collector.RecordTick()
}

// NextGeneration closes out the current generation: selection is every
// individual that ate at least once, the population breeds, all creature
// entities and brains are discarded, and the new generation spawns. The
// returned row summarizes the generation that just ended.
func (e *Engine) NextGeneration() telemetry.GenerationStats {
	e.phase = PhaseTransitioning

	fitness := e.pop.FitnessValues()
	stats := e.collector.Flush(floatValues(fitness), e.energyValues())

	var selected []int
	for slot, f := range fitness {
		if f > 0 {
			selected = append(selected, slot)
		}
	}
	e.pop.NextGeneration(selected)

	e.teardown()
	e.spawn()
	return stats
}

// teardown removes every creature entity and its brain.
func (e *Engine) teardown() {
	// Collect first: the world is locked while a query is open.
	var entities []ecs.Entity
	query := e.filter.Query()
	for query.Next() {
		entities = append(entities, query.Entity())
	}
	for _, entity := range entities {
		e.world.RemoveEntity(entity)
	}
	e.brains = make(map[uint32]*neural.Network)
	e.aliveCount = 0
}

// energyValues returns the current energy of every creature, dead ones
// included, in slot order.
func (e *Engine) energyValues() []float64 {
	out := make([]float64, e.pop.Size())
	query := e.filter.Query()
	for query.Next() {
		_, _, energy, agent := query.Get()
		out[agent.Slot] = energy.Value
	}
	return out
}

// Generation returns the number of completed generational transitions.
func (e *Engine) Generation() int { return e.pop.Generation() }

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// Tick returns the number of Update calls since the last spawn.
func (e *Engine) Tick() int { return e.tick }

// AliveCount returns the number of creatures still active.
func (e *Engine) AliveCount() int { return e.aliveCount }

// Fitness returns a copy of all individual fitness values, by slot.
func (e *Engine) Fitness() []int { return e.pop.FitnessValues() }

// Individuals returns a deep copy of the population's individuals.
func (e *Engine) Individuals() []genetic.Individual { return e.pop.Individuals() }

// FoodCount returns the invariant food pool size.
func (e *Engine) FoodCount() int { return e.food.Count() }

func floatValues(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}
