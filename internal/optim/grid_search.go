// Package optim searches launch parameters for the best value of a flight
// metric, e.g. the angle giving the longest range under drag.
package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/projsim/internal/config"
	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/metrics"
	"github.com/san-kum/projsim/internal/sim"
)

// Objective scores one flight; larger is better.
type Objective func(dynamo.Metrics) float64

var Objectives = map[string]Objective{
	"range":          func(m dynamo.Metrics) float64 { return m.Range },
	"max_height":     func(m dynamo.Metrics) float64 { return m.MaxHeight },
	"time_of_flight": func(m dynamo.Metrics) float64 { return m.TimeOfFlight },
}

// Result is the best point found and its score.
type Result struct {
	Params    dynamo.Params
	Metrics   dynamo.Metrics
	Score     float64
	Evaluated int
}

// GridSearch tries every combination of the given slider values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// NewGridSearch takes parameter keys as used by config.Sliders and the
// values to try for each.
func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("%d parameters but %d ranges", len(params), len(ranges))
	}
	for i, name := range params {
		if _, ok := sliderFor(name); !ok {
			return nil, fmt.Errorf("unknown parameter: %s", name)
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("no values for %s", name)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Steps returns n evenly spaced values from lo to hi inclusive.
func Steps(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

// Search computes a trajectory for every grid point over base and keeps
// the highest score. Points with invalid parameters are skipped.
func (g *GridSearch) Search(ctx context.Context, s *sim.Simulator, base dynamo.Params, obj Objective) (Result, error) {
	best := Result{Score: math.Inf(-1)}
	err := g.searchRecursive(ctx, 0, base, s, obj, &best)
	if err != nil {
		return best, err
	}
	if best.Evaluated == 0 || math.IsInf(best.Score, -1) {
		return best, fmt.Errorf("no valid grid point")
	}
	return best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current dynamo.Params,
	s *sim.Simulator,
	obj Objective,
	best *Result,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		if current.Validate() != nil {
			return nil
		}
		traj, err := s.Compute(current)
		if err != nil {
			return nil
		}

		m := metrics.Compute(traj)
		best.Evaluated++
		if score := obj(m); score > best.Score {
			best.Score = score
			best.Params = current
			best.Metrics = m
		}
		return nil
	}

	slider, _ := sliderFor(g.paramNames[depth])
	for _, val := range g.ranges[depth] {
		next := slider.Set(current, val)
		if err := g.searchRecursive(ctx, depth+1, next, s, obj, best); err != nil {
			return err
		}
	}
	return nil
}

func sliderFor(key string) (config.Slider, bool) {
	for _, s := range config.Sliders {
		if s.Key == key {
			return s, true
		}
	}
	return config.Slider{}, false
}
