package viz

import (
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/playback"
)

// Scene is what the flight view draws: the launch setup, the whole
// trajectory and how far along it the projectile is.
type Scene struct {
	Params     dynamo.Params
	Trajectory dynamo.Trajectory
	Index      int
	HasCurrent bool
}

func SceneFromSnapshot(s playback.Snapshot) Scene {
	return Scene{
		Params:     s.Params,
		Trajectory: s.Trajectory,
		Index:      s.Index,
		HasCurrent: s.HasCurrent,
	}
}

// Viewport maps world metres onto canvas dots with one scale on both axes,
// leaving a margin at the left for the launcher and one row for the ground.
type Viewport struct {
	Scale   float64
	OriginX int
	OriginY int
}

const (
	marginDots = 4
	groundDots = 2
)

func NewViewport(c *Canvas, p dynamo.Params) Viewport {
	w, h := c.Dots()
	worldW, worldH := p.WorldWidth, p.WorldHeight
	if !(worldW > 0) {
		worldW = 100
	}
	if !(worldH > 0) {
		worldH = 60
	}
	usableW := float64(w - 2*marginDots)
	usableH := float64(h - groundDots - 1)
	return Viewport{
		Scale:   math.Max(math.Min(usableW/worldW, usableH/worldH), 1e-9),
		OriginX: marginDots,
		OriginY: h - groundDots - 1,
	}
}

func (v Viewport) ToDots(x, y float64) (int, int) {
	return v.OriginX + int(math.Round(x*v.Scale)), v.OriginY - int(math.Round(y*v.Scale))
}

// DrawScene renders the ground, the launcher, the travelled path, a sparse
// preview of the rest of the path and the projectile.
func DrawScene(c *Canvas, s Scene) {
	c.Clear()
	v := NewViewport(c, s.Params)
	w, h := c.Dots()

	for x := 0; x < w; x++ {
		c.Set(x, v.OriginY+1)
		if x%3 == 0 {
			c.Set(x, h-1)
		}
	}

	drawLauncher(c, v, s.Params)

	if len(s.Trajectory) == 0 {
		return
	}

	end := 0
	if s.HasCurrent {
		end = min(s.Index, len(s.Trajectory)-1)
	}
	for i := end + 1; i < len(s.Trajectory); i += 6 {
		x, y := v.ToDots(s.Trajectory[i].X, s.Trajectory[i].Y)
		c.Set(x, y)
	}
	for i := 1; i <= end; i++ {
		a, b := s.Trajectory[i-1], s.Trajectory[i]
		x1, y1 := v.ToDots(a.X, a.Y)
		x2, y2 := v.ToDots(b.X, b.Y)
		c.Line(x1, y1, x2, y2)
	}

	if s.HasCurrent {
		cur := s.Trajectory[end]
		x, y := v.ToDots(cur.X, cur.Y)
		c.Disc(x, y, 1)
	}
}

func drawLauncher(c *Canvas, v Viewport, p dynamo.Params) {
	bx, by := v.ToDots(0, 0)
	tx, ty := v.ToDots(0, p.LaunchHeight)
	c.Line(bx, by, tx, ty)
	c.Line(bx-2, by, bx+2, by)

	rad := p.Angle * math.Pi / 180
	const barrel = 6.0
	ex := tx + int(math.Round(barrel*math.Cos(rad)))
	ey := ty - int(math.Round(barrel*math.Sin(rad)))
	c.Line(tx, ty, ex, ey)
}
