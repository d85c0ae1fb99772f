package config

import (
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
)

// Slider is the adjustable range of one numeric parameter.
type Slider struct {
	Key   string
	Label string
	Unit  string
	Min   float64
	Max   float64
	Step  float64
}

// Sliders lists the tunable parameters in display order. The launch height
// maximum depends on the world height, see MaxLaunchHeight.
var Sliders = []Slider{
	{Key: "velocity", Label: "Velocity", Unit: "m/s", Min: 2, Max: 50, Step: 1},
	{Key: "angle", Label: "Angle", Unit: "deg", Min: -90, Max: 90, Step: 1},
	{Key: "mass", Label: "Mass", Unit: "kg", Min: 0.1, Max: 10, Step: 0.1},
	{Key: "gravity", Label: "Gravity", Unit: "m/s2", Min: 1, Max: 20, Step: 0.1},
	{Key: "launch_height", Label: "Height", Unit: "m", Min: 0, Max: 48, Step: 0.1},
	{Key: "drag_coeff", Label: "Drag coeff", Unit: "", Min: 0.001, Max: 0.1, Step: 0.001},
}

func MaxLaunchHeight(p dynamo.Params) float64 {
	return p.WorldHeight * 0.8
}

func (s Slider) Get(p dynamo.Params) float64 {
	switch s.Key {
	case "velocity":
		return p.Velocity
	case "angle":
		return p.Angle
	case "mass":
		return p.Mass
	case "gravity":
		return p.Gravity
	case "launch_height":
		return p.LaunchHeight
	case "drag_coeff":
		return p.DragCoeff
	}
	return 0
}

// Nudge moves the parameter by steps increments, clamped to the slider
// range and rounded to the step.
func (s Slider) Nudge(p dynamo.Params, steps int) dynamo.Params {
	max := s.Max
	if s.Key == "launch_height" {
		max = MaxLaunchHeight(p)
	}
	v := s.Get(p) + float64(steps)*s.Step
	v = math.Round(v/s.Step) * s.Step
	v = math.Max(s.Min, math.Min(max, v))
	return s.Set(p, v)
}

// Set assigns v to the parameter without clamping.
func (s Slider) Set(p dynamo.Params, v float64) dynamo.Params {
	switch s.Key {
	case "velocity":
		p.Velocity = v
	case "angle":
		p.Angle = v
	case "mass":
		p.Mass = v
	case "gravity":
		p.Gravity = v
	case "launch_height":
		p.LaunchHeight = v
	case "drag_coeff":
		p.DragCoeff = v
	}
	return p
}
