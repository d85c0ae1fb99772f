package physics

import (
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
)

// Vacuum returns the closed-form metrics of a drag-free flight from
// launch height h: landing time (vy + sqrt(vy^2 + 2gh)) / g, range vx*t,
// apex h + vy^2/2g when launched upward. Drag settings in p are ignored.
func Vacuum(p dynamo.Params) dynamo.Metrics {
	vx, vy := p.InitialVelocity()
	g, h := p.Gravity, p.LaunchHeight
	if !(g > 0) {
		return dynamo.Metrics{}
	}

	tof := (vy + math.Sqrt(vy*vy+2*g*h)) / g
	apex := h
	if vy > 0 {
		apex += vy * vy / (2 * g)
	}
	return dynamo.Metrics{
		MaxHeight:    apex,
		Range:        vx * tof,
		TimeOfFlight: tof,
	}
}

// VacuumPosition is the exact drag-free position at time t.
func VacuumPosition(p dynamo.Params, t float64) (x, y float64) {
	vx, vy := p.InitialVelocity()
	return vx * t, p.LaunchHeight + vy*t - 0.5*p.Gravity*t*t
}
