package metrics

import (
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
)

// EnergyLoss tracks the share of mechanical energy dissipated since the
// first observed sample. Without drag it stays near zero, up to the
// integrator's own drift.
type EnergyLoss struct {
	name    string
	dyn     dynamo.Hamiltonian
	initial float64
	current float64
	samples int
}

func NewEnergyLoss(dyn dynamo.Hamiltonian) *EnergyLoss {
	return &EnergyLoss{
		name: "energy_loss",
		dyn:  dyn,
	}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Observe(s dynamo.Sample) {
	energy := e.dyn.Energy(dynamo.State{s.X, s.Y, s.VX, s.VY})
	if e.samples == 0 {
		e.initial = energy
	}
	e.current = energy
	e.samples++
}

func (e *EnergyLoss) OnFrame(s dynamo.Sample) { e.Observe(s) }
func (e *EnergyLoss) OnReset()                { e.Reset() }

// Value is (initial - current) / initial, or zero before two samples.
func (e *EnergyLoss) Value() float64 {
	if e.samples < 2 || e.initial == 0 {
		return 0
	}
	return (e.initial - e.current) / math.Abs(e.initial)
}

func (e *EnergyLoss) Initial() float64 { return e.initial }
func (e *EnergyLoss) Current() float64 { return e.current }

func (e *EnergyLoss) Reset() {
	e.initial = 0
	e.current = 0
	e.samples = 0
}

// ObserveAll feeds a whole trajectory.
func (e *EnergyLoss) ObserveAll(traj dynamo.Trajectory) {
	for _, s := range traj {
		e.Observe(s)
	}
}
