package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
)

type Projectile struct {
	Mass      float64
	Gravity   float64
	Drag      bool
	DragCoeff float64
}

func NewProjectile(p dynamo.Params) *Projectile {
	return &Projectile{
		Mass:      p.Mass,
		Gravity:   p.Gravity,
		Drag:      p.Drag,
		DragCoeff: p.DragCoeff,
	}
}

func (p *Projectile) StateDim() int {
	return 4
}

// Derive returns [vx, vy, ax, ay]. Drag decelerates along each velocity
// component in proportion to k*|v| with k = DragCoeff/Mass; gravity acts
// on y only. A projectile at rest feels no drag.
func (p *Projectile) Derive(x dynamo.State, t float64) dynamo.State {
	vx, vy := x[2], x[3]

	if !p.Drag {
		return dynamo.State{vx, vy, 0, -p.Gravity}
	}

	speed := math.Sqrt(vx*vx + vy*vy)
	k := p.DragCoeff / p.Mass
	ax := -k * speed * vx
	ay := -k*speed*vy - p.Gravity

	return dynamo.State{vx, vy, ax, ay}
}

// Energy is kinetic plus potential energy measured from the ground.
func (p *Projectile) Energy(x dynamo.State) float64 {
	vx, vy := x[2], x[3]
	ke := 0.5 * p.Mass * (vx*vx + vy*vy)
	pe := p.Mass * p.Gravity * x[1]
	return ke + pe
}

func (p *Projectile) GetParams() map[string]float64 {
	drag := 0.0
	if p.Drag {
		drag = 1
	}
	return map[string]float64{
		"mass":       p.Mass,
		"gravity":    p.Gravity,
		"drag":       drag,
		"drag_coeff": p.DragCoeff,
	}
}

func (p *Projectile) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		p.Mass = value
	case "gravity":
		p.Gravity = value
	case "drag":
		p.Drag = value != 0
	case "drag_coeff":
		p.DragCoeff = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
