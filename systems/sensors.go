package systems

import (
	"math"

	"github.com/Lucieguerin431/bloomfall/components"
)

// SensorInputs are the raw values fed to a creature brain, in wire order.
// Nothing is normalized; the brain sees world-unit distances and the
// undivided energy value.
type SensorInputs struct {
	FoodDistance float64 // Euclidean distance to the nearest active food
	FoodBearing  float64 // signed angle from heading to that food, [-Pi, Pi]
	VelocityX    float64
	VelocityY    float64
	Energy       float64
}

// AsSlice returns the inputs in the order the brain expects.
func (s *SensorInputs) AsSlice() []float64 {
	return []float64{s.FoodDistance, s.FoodBearing, s.VelocityX, s.VelocityY, s.Energy}
}

// Array returns the inputs as a fixed-size vector for component storage.
func (s *SensorInputs) Array() [components.SensorCount]float64 {
	return [components.SensorCount]float64{s.FoodDistance, s.FoodBearing, s.VelocityX, s.VelocityY, s.Energy}
}

// ComputeSensors derives one creature's sensor vector. Velocity is the
// heading/speed pair resolved into plane components. When no food item is
// active the distance reads noFoodDistance and the bearing reads zero.
func ComputeSensors(pos components.Position, mot components.Motion, energy float64, foodX, foodY float64, hasFood bool, noFoodDistance float64) SensorInputs {
	in := SensorInputs{
		VelocityX: math.Cos(mot.Heading) * mot.Speed,
		VelocityY: math.Sin(mot.Heading) * mot.Speed,
		Energy:    energy,
	}
	if hasFood {
		in.FoodDistance = distance(pos.X, pos.Y, foodX, foodY)
		in.FoodBearing = normalizeAngle(math.Atan2(foodY-pos.Y, foodX-pos.X) - mot.Heading)
	} else {
		in.FoodDistance = noFoodDistance
	}
	return in
}
