package metrics

import (
	"github.com/san-kum/projsim/internal/dynamo"
)

// Compute derives the summary metrics of a completed trajectory. An empty
// trajectory yields zero metrics.
func Compute(traj dynamo.Trajectory) dynamo.Metrics {
	last, ok := traj.Last()
	if !ok {
		return dynamo.Metrics{}
	}

	maxHeight := traj[0].Y
	for _, s := range traj[1:] {
		if s.Y > maxHeight {
			maxHeight = s.Y
		}
	}

	return dynamo.Metrics{
		MaxHeight:    maxHeight,
		Range:        last.X,
		TimeOfFlight: last.T,
	}
}

// Progress answers "how high has it been so far" in O(1) per query by
// precomputing the running maximum of Y once per trajectory.
type Progress struct {
	traj      dynamo.Trajectory
	prefixMax []float64
}

func NewProgress(traj dynamo.Trajectory) *Progress {
	prefix := make([]float64, len(traj))
	for i, s := range traj {
		if i == 0 || s.Y > prefix[i-1] {
			prefix[i] = s.Y
		} else {
			prefix[i] = prefix[i-1]
		}
	}
	return &Progress{traj: traj, prefixMax: prefix}
}

// At returns the highest point reached and the horizontal distance covered
// up to and including sample i. Out-of-range indices are clamped.
func (p *Progress) At(i int) (maxHeight, distance float64) {
	if len(p.traj) == 0 {
		return 0, 0
	}
	if i < 0 {
		i = 0
	}
	if i >= len(p.traj) {
		i = len(p.traj) - 1
	}
	return p.prefixMax[i], p.traj[i].X
}
