package sim

import (
	"sort"

	"github.com/Lucieguerin431/bloomfall/neural"
	"github.com/Lucieguerin431/bloomfall/terrain"
)

// CreatureState is a point-in-time copy of one creature. WorldX/Y/Z is
// the terrain.GroundPoint mapping of the planar position.
type CreatureState struct {
	ID      uint32         `json:"id"`
	Slot    int            `json:"slot"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	WorldX  float64        `json:"world_x"`
	WorldY  float64        `json:"world_y"`
	WorldZ  float64        `json:"world_z"`
	Heading float64        `json:"heading"`
	Speed   float64        `json:"speed"`
	Energy  float64        `json:"energy"`
	Alive   bool           `json:"alive"`
	Meals   int            `json:"meals"`
	Fitness int            `json:"fitness"`
	Genes   []float64      `json:"genes"`
	Brain   *neural.Genome `json:"brain,omitempty"`
}

// FoodState is a point-in-time copy of one food item.
type FoodState struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Active bool    `json:"active"`
}

// Snapshot is a read-only export of the visible simulation state for
// inspection and display. It shares no memory with the engine.
type Snapshot struct {
	Generation int             `json:"generation"`
	Tick       int             `json:"tick"`
	Phase      string          `json:"phase"`
	Creatures  []CreatureState `json:"creatures"`
	Food       []FoodState     `json:"food"`
}

// Snapshot captures the current state, creatures in slot order.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Generation: e.pop.Generation(),
		Tick:       e.tick,
		Phase:      e.phase.String(),
		Creatures:  make([]CreatureState, 0, e.pop.Size()),
		Food:       make([]FoodState, 0, e.food.Count()),
	}

	query := e.filter.Query()
	for query.Next() {
		pos, mot, energy, agent := query.Get()
		wx, wy, wz := terrain.GroundPoint(e.ground, pos.X, pos.Y)

		cs := CreatureState{
			ID:      agent.ID,
			Slot:    agent.Slot,
			X:       pos.X,
			Y:       pos.Y,
			WorldX:  wx,
			WorldY:  wy,
			WorldZ:  wz,
			Heading: mot.Heading,
			Speed:   mot.Speed,
			Energy:  energy.Value,
			Alive:   energy.Alive,
			Meals:   agent.Meals,
			Fitness: e.pop.Fitness(agent.Slot),
			Genes:   e.pop.Genes(agent.Slot),
		}
		if brain, ok := e.brains[agent.ID]; ok {
			cs.Brain = brain.ExportGenome()
		}
		snap.Creatures = append(snap.Creatures, cs)
	}
	sort.Slice(snap.Creatures, func(i, j int) bool {
		return snap.Creatures[i].Slot < snap.Creatures[j].Slot
	})

	for _, item := range e.food.Items() {
		snap.Food = append(snap.Food, FoodState{X: item.X, Y: item.Y, Active: item.Active})
	}

	return snap
}
