package systems

import (
	"math"

	"github.com/Lucieguerin431/bloomfall/components"
)

// StepParams bundles the locomotion and energy constants for one tick.
type StepParams struct {
	TurnGain  float64
	AccelGain float64
	MaxSpeed  float64 // 0 leaves accumulated speed unbounded
	BaseCost  float64
	SpeedCost float64
}

// ApplySteering folds brain outputs into heading and speed: output 0
// turns, output 1 accelerates. Speed accumulates without bound unless the
// MaxSpeed knob is set.
func ApplySteering(mot *components.Motion, outputs []float64, p StepParams) {
	if len(outputs) < 2 {
		return
	}
	mot.Heading += outputs[0] * p.TurnGain
	mot.Speed += outputs[1] * p.AccelGain
	if p.MaxSpeed > 0 {
		mot.Speed = clampFloat(mot.Speed, -p.MaxSpeed, p.MaxSpeed)
	}
}

// Integrate advances position by one explicit Euler step along the
// heading.
func Integrate(pos *components.Position, mot components.Motion, dt float64) {
	pos.X += math.Cos(mot.Heading) * mot.Speed * dt
	pos.Y += math.Sin(mot.Heading) * mot.Speed * dt
}

// ClampToArena hard-clamps a position into the square arena of the given
// half-extent. This runs after integration; it is a position clamp, not a
// steering force.
func ClampToArena(pos *components.Position, half float64) {
	pos.X = clampFloat(pos.X, -half, half)
	pos.Y = clampFloat(pos.Y, -half, half)
}

// DrainEnergy applies the per-tick cost: a base cost for existing plus a
// tax on speed magnitude. Reports whether the creature died this tick.
// Dead creatures drain nothing.
func DrainEnergy(en *components.Energy, speed float64, p StepParams) bool {
	if !en.Alive {
		return false
	}
	en.Value -= p.BaseCost + math.Abs(speed)*p.SpeedCost
	if en.Value <= 0 {
		en.Alive = false
		return true
	}
	return false
}
