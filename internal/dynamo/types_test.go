package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{0, 2, 17.7, 17.7}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Clone(t *testing.T) {
	s := State{1, 2, 3, 4}
	c := s.Clone()
	c[0] = 99
	if s[0] != 1 {
		t.Error("Clone shares backing array")
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Params)
		field string
	}{
		{"defaults", func(*Params) {}, ""},
		{"zero velocity", func(p *Params) { p.Velocity = 0 }, "velocity"},
		{"NaN velocity", func(p *Params) { p.Velocity = math.NaN() }, "velocity"},
		{"angle above", func(p *Params) { p.Angle = 91 }, "angle"},
		{"angle below", func(p *Params) { p.Angle = -90.5 }, "angle"},
		{"vertical", func(p *Params) { p.Angle = -90 }, ""},
		{"zero mass", func(p *Params) { p.Mass = 0 }, "mass"},
		{"drag without coeff", func(p *Params) { p.Drag = true; p.DragCoeff = 0 }, "drag_coeff"},
		{"coeff ignored without drag", func(p *Params) { p.DragCoeff = 0 }, ""},
		{"negative gravity", func(p *Params) { p.Gravity = -9.81 }, "gravity"},
		{"negative height", func(p *Params) { p.LaunchHeight = -1 }, "launch_height"},
		{"ground launch", func(p *Params) { p.LaunchHeight = 0 }, ""},
		{"negative world", func(p *Params) { p.WorldWidth = -1 }, "world_width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.edit(&p)
			err := p.Validate()

			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrParameterBounds) {
				t.Fatalf("expected ErrParameterBounds, got %v", err)
			}
			var be *BoundsError
			if !errors.As(err, &be) || be.Field != tt.field {
				t.Errorf("field = %v, want %s", err, tt.field)
			}
		})
	}
}

func TestParams_InitialState(t *testing.T) {
	p := DefaultParams()
	p.Angle = 90
	p.LaunchHeight = 3

	x := p.InitialState()
	if x[0] != 0 || x[1] != 3 {
		t.Errorf("position = (%v, %v), want (0, 3)", x[0], x[1])
	}
	if math.Abs(x[2]) > 1e-12 || x[3] != p.Velocity {
		t.Errorf("velocity = (%v, %v), want (0, %v)", x[2], x[3], p.Velocity)
	}

	p.Angle = 45
	vx, vy := p.InitialVelocity()
	if math.Abs(vx-vy) > 1e-12 || math.Abs(math.Hypot(vx, vy)-p.Velocity) > 1e-12 {
		t.Errorf("45 degrees gave (%v, %v)", vx, vy)
	}
}

func TestTrajectory(t *testing.T) {
	var empty Trajectory
	if _, ok := empty.Last(); ok {
		t.Error("empty trajectory reported a last sample")
	}

	tr := Trajectory{
		SampleFromState(State{0, 2, 3, 4}, 0),
		SampleFromState(State{1, 3, 3, 0}, 0.5),
	}
	last, ok := tr.Last()
	if !ok || last.T != 0.5 || last.X != 1 {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
	if tr[0].Speed() != 5 {
		t.Errorf("speed = %v, want 5", tr[0].Speed())
	}
	if ts := tr.Times(); len(ts) != 2 || ts[1] != 0.5 {
		t.Errorf("Times() = %v", ts)
	}
	if ys := tr.Column(func(s Sample) float64 { return s.Y }); ys[0] != 2 || ys[1] != 3 {
		t.Errorf("Column(Y) = %v", ys)
	}
}

func TestBoundsError(t *testing.T) {
	err := &BoundsError{Field: "mass", Value: -1, Want: "> 0"}
	if got := err.Error(); got != "dynamo: mass = -1 out of bounds (want > 0)" {
		t.Errorf("Error() = %q", got)
	}
}
