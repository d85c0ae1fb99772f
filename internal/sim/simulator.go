package sim

import (
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/integrators"
	"github.com/san-kum/projsim/internal/physics"
)

type Simulator struct {
	integrator dynamo.Integrator
	cfg        Config
}

func New(integrator dynamo.Integrator, cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if integrator == nil {
		integrator = integrators.NewSemiImplicitEuler()
	}
	return &Simulator{integrator: integrator, cfg: cfg}, nil
}

// Default returns the fixed-step semi-implicit simulator used for playback.
func Default() *Simulator {
	return &Simulator{integrator: integrators.NewSemiImplicitEuler(), cfg: DefaultConfig()}
}

func (s *Simulator) Config() Config { return s.cfg }

// ComputeTrajectory integrates p with the default simulator.
func ComputeTrajectory(p dynamo.Params) dynamo.Trajectory {
	traj, _ := Default().Compute(p)
	return traj
}

// Compute integrates the flight described by p. Each state is recorded
// before it is advanced, so the t=0 sample always exists. Integration
// stops once the projectile goes below the ground (that state is not
// recorded) or t passes MaxFlightTime. The returned error is non-nil only
// when ValidateState is set and the state turned NaN or Inf; the samples
// recorded up to that point are still returned.
func (s *Simulator) Compute(p dynamo.Params) (dynamo.Trajectory, error) {
	dyn := physics.NewProjectile(p)
	dt := s.cfg.Dt

	x := p.InitialState()
	t := 0.0

	traj := make(dynamo.Trajectory, 0, s.estimateSamples(p))
	for step := 0; ; step++ {
		traj = append(traj, dynamo.SampleFromState(x, t))

		x = s.integrator.Step(dyn, x, t, dt)
		t += dt

		if s.cfg.ValidateState && !x.IsValid() {
			return traj, SimError{Time: t, Step: step, Message: dynamo.ErrInvalidState.Error()}
		}
		if t > s.cfg.MaxFlightTime {
			break
		}
		if x[1] < 0 {
			break
		}
	}

	return traj, nil
}

// estimateSamples sizes the buffer from the vacuum flight time.
func (s *Simulator) estimateSamples(p dynamo.Params) int {
	_, vy := p.InitialVelocity()
	g := p.Gravity
	if !(g > 0) {
		return s.cfg.MaxSamples()
	}
	tof := (vy + math.Sqrt(math.Max(0, vy*vy+2*g*p.LaunchHeight))) / g
	if math.IsNaN(tof) || tof > s.cfg.MaxFlightTime {
		return s.cfg.MaxSamples()
	}
	return int(tof/s.cfg.Dt) + 2
}
