package dynamo

import (
	"math"
)

// State is the integration vector. Projectile systems use [x, y, vx, vy]:
// positions in the first half, velocities in the second.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// Params is the launch configuration of one run. Angle is in degrees,
// everything else in SI units. WorldWidth and WorldHeight only size the
// rendered scene.
type Params struct {
	Velocity     float64 `yaml:"velocity" json:"velocity"`
	Angle        float64 `yaml:"angle" json:"angle"`
	Mass         float64 `yaml:"mass" json:"mass"`
	Drag         bool    `yaml:"drag" json:"drag"`
	DragCoeff    float64 `yaml:"drag_coeff" json:"drag_coeff"`
	Gravity      float64 `yaml:"gravity" json:"gravity"`
	LaunchHeight float64 `yaml:"launch_height" json:"launch_height"`
	WorldWidth   float64 `yaml:"world_width" json:"world_width"`
	WorldHeight  float64 `yaml:"world_height" json:"world_height"`
}

// DefaultParams returns the launch configuration the simulator opens with.
func DefaultParams() Params {
	return Params{
		Velocity:     25,
		Angle:        45,
		Mass:         5,
		Drag:         false,
		DragCoeff:    0.01,
		Gravity:      9.81,
		LaunchHeight: 2,
		WorldWidth:   100,
		WorldHeight:  60,
	}
}

// Validate reports the first field outside its accepted range.
func (p Params) Validate() error {
	switch {
	case !(p.Velocity > 0):
		return &BoundsError{Field: "velocity", Value: p.Velocity, Want: "> 0"}
	case !(p.Angle >= -90 && p.Angle <= 90):
		return &BoundsError{Field: "angle", Value: p.Angle, Want: "-90..90"}
	case !(p.Mass > 0):
		return &BoundsError{Field: "mass", Value: p.Mass, Want: "> 0"}
	case p.Drag && !(p.DragCoeff > 0):
		return &BoundsError{Field: "drag_coeff", Value: p.DragCoeff, Want: "> 0"}
	case !(p.Gravity > 0):
		return &BoundsError{Field: "gravity", Value: p.Gravity, Want: "> 0"}
	case !(p.LaunchHeight >= 0) || math.IsInf(p.LaunchHeight, 0):
		return &BoundsError{Field: "launch_height", Value: p.LaunchHeight, Want: ">= 0"}
	case p.WorldWidth < 0:
		return &BoundsError{Field: "world_width", Value: p.WorldWidth, Want: ">= 0"}
	case p.WorldHeight < 0:
		return &BoundsError{Field: "world_height", Value: p.WorldHeight, Want: ">= 0"}
	}
	return nil
}

// InitialVelocity decomposes the launch speed along the launch angle.
func (p Params) InitialVelocity() (vx, vy float64) {
	rad := p.Angle * math.Pi / 180
	return p.Velocity * math.Cos(rad), p.Velocity * math.Sin(rad)
}

// InitialState is the integration vector at t=0.
func (p Params) InitialState() State {
	vx, vy := p.InitialVelocity()
	return State{0, p.LaunchHeight, vx, vy}
}

// Sample is the projectile's kinematic state at one time step.
type Sample struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
	T  float64 `json:"t"`
}

func SampleFromState(x State, t float64) Sample {
	return Sample{X: x[0], Y: x[1], VX: x[2], VY: x[3], T: t}
}

func (s Sample) Speed() float64 {
	return math.Hypot(s.VX, s.VY)
}

// Trajectory is ordered by strictly increasing T and starts at T=0.
type Trajectory []Sample

func (tr Trajectory) Len() int { return len(tr) }

// Last returns the final sample, or false for an empty trajectory.
func (tr Trajectory) Last() (Sample, bool) {
	if len(tr) == 0 {
		return Sample{}, false
	}
	return tr[len(tr)-1], true
}

// Times returns the T column.
func (tr Trajectory) Times() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.T
	}
	return out
}

// Column extracts one derived series, e.g. heights or speeds.
func (tr Trajectory) Column(fn func(Sample) float64) []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = fn(s)
	}
	return out
}

// Metrics are derived once from a completed trajectory.
type Metrics struct {
	MaxHeight    float64 `json:"max_height"`
	Range        float64 `json:"range"`
	TimeOfFlight float64 `json:"time_of_flight"`
}
