package metrics

import (
	"github.com/san-kum/projsim/internal/dynamo"
)

// DefaultHistoryCapacity is the number of points kept for the live graphs.
const DefaultHistoryCapacity = 100

type GraphPoint struct {
	T     float64
	Speed float64
	Accel float64
}

// GraphHistory accumulates speed and acceleration for the live graphs as
// frames are displayed. Acceleration is the change in speed since the
// previous point over the elapsed simulated time; the first point, and any
// point without time elapsed, gets zero.
type GraphHistory struct {
	capacity int
	points   []GraphPoint
}

func NewGraphHistory(capacity int) *GraphHistory {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &GraphHistory{
		capacity: capacity,
		points:   make([]GraphPoint, 0, capacity),
	}
}

func (h *GraphHistory) OnFrame(s dynamo.Sample) {
	p := GraphPoint{T: s.T, Speed: s.Speed()}
	if n := len(h.points); n > 0 {
		prev := h.points[n-1]
		if dt := p.T - prev.T; dt > 0 {
			p.Accel = (p.Speed - prev.Speed) / dt
		}
	}

	h.points = append(h.points, p)
	if len(h.points) > h.capacity {
		h.points = h.points[1:]
	}
}

func (h *GraphHistory) OnReset() {
	h.points = h.points[:0]
}

func (h *GraphHistory) Len() int { return len(h.points) }

func (h *GraphHistory) Points() []GraphPoint {
	out := make([]GraphPoint, len(h.points))
	copy(out, h.points)
	return out
}

func (h *GraphHistory) Speeds() []float64 {
	out := make([]float64, len(h.points))
	for i, p := range h.points {
		out[i] = p.Speed
	}
	return out
}

func (h *GraphHistory) Accels() []float64 {
	out := make([]float64, len(h.points))
	for i, p := range h.points {
		out[i] = p.Accel
	}
	return out
}
