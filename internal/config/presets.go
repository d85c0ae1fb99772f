package config

import (
	"sort"

	"github.com/san-kum/projsim/internal/dynamo"
)

// Preset is a named launch. Applying it replaces the projectile and launch
// fields only; gravity and the world size stay as configured.
type Preset struct {
	Name        string
	Description string
	Velocity    float64
	Angle       float64
	Mass        float64
	Drag        bool
	DragCoeff   float64
	Height      float64
}

func (p Preset) Apply(params dynamo.Params) dynamo.Params {
	params.Velocity = p.Velocity
	params.Angle = p.Angle
	params.Mass = p.Mass
	params.Drag = p.Drag
	params.DragCoeff = p.DragCoeff
	params.LaunchHeight = p.Height
	return params
}

var Presets = map[string]Preset{
	"cannonball": {
		Name: "Cannon Ball", Description: "Heavy projectile with moderate air resistance from elevated position",
		Velocity: 28, Angle: 45, Mass: 50, Drag: true, DragCoeff: 0.02, Height: 2.0,
	},
	"handball": {
		Name: "Handball", Description: "Very light object thrown straight up",
		Velocity: 42, Angle: 90, Mass: 0.1, Drag: false, DragCoeff: 0.08, Height: 0.0,
	},
	"vacuum": {
		Name: "Perfect Vacuum", Description: "Ideal physics without air resistance - perfect parabolic motion",
		Velocity: 35, Angle: 45, Mass: 25, Drag: false, DragCoeff: 0.01, Height: 1.5,
	},
	"bullet": {
		Name: "Bullet", Description: "High-speed, lightweight projectile with minimal air resistance",
		Velocity: 47, Angle: 26, Mass: 0.01, Drag: false, DragCoeff: 0.005, Height: 0.0,
	},
	"longrange": {
		Name: "Long Range", Description: "Optimized for maximum range with realistic air resistance",
		Velocity: 60, Angle: 30, Mass: 20, Drag: true, DragCoeff: 0.015, Height: 3.0,
	},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

// ListPresets returns preset keys in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
