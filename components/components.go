// Package components defines ECS components for the simulation.
package components

// SensorCount is the width of the agent sensor vector.
const SensorCount = 5

// Position is an entity's location on the simulation plane.
type Position struct {
	X, Y float64
}

// Motion holds heading-as-state locomotion: a facing angle in radians and
// a signed scalar speed along it. Speed accumulates tick over tick and is
// unbounded unless the max-speed knob is enabled.
type Motion struct {
	Heading float64
	Speed   float64
}

// Energy tracks an agent's remaining energy budget. Alive flips to false
// exactly once, when Value first reaches zero or below, and stays false
// until the next generation rebuild.
type Energy struct {
	Value float64
	Alive bool
}

// Agent links a creature entity to its source individual for one
// generation.
type Agent struct {
	ID      uint32               // brain map key, unique within a run
	Slot    int                  // index of the individual this agent embodies
	Meals   int                  // food items consumed this generation
	Sensors [SensorCount]float64 // last sensor vector fed to the brain
}
