// Package export writes a computed trajectory to files: CSV and JSON for
// data, PNG charts through gonum/plot, and SVG renders of the terminal scene.
package export

import (
	"time"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/metrics"
)

// Run bundles one computed flight with the settings that produced it.
type Run struct {
	ID         string            `json:"id"`
	Timestamp  time.Time         `json:"timestamp"`
	Integrator string            `json:"integrator"`
	Dt         float64           `json:"dt"`
	Params     dynamo.Params     `json:"params"`
	Metrics    dynamo.Metrics    `json:"metrics"`
	Steps      int               `json:"steps"`
	Samples    dynamo.Trajectory `json:"samples"`
}

func NewRun(id, integrator string, dt float64, params dynamo.Params, traj dynamo.Trajectory) *Run {
	return &Run{
		ID:         id,
		Timestamp:  time.Now(),
		Integrator: integrator,
		Dt:         dt,
		Params:     params,
		Metrics:    metrics.Compute(traj),
		Steps:      len(traj),
		Samples:    traj,
	}
}
