package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/viz"
)

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit dot.
// scale is the size of a dot cell in SVG units.
func CanvasToSVG(canvas *viz.Canvas, theme viz.Theme, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, theme.Sky, theme.Path)

	dotRadius := scale * 0.4
	dw, dh := canvas.Dots()
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SceneSVG renders the final frame of a trajectory the way the live view
// draws it.
func SceneSVG(params dynamo.Params, traj dynamo.Trajectory, theme viz.Theme) string {
	c := viz.NewCanvas(60, 20)
	viz.DrawScene(c, viz.Scene{
		Params:     params,
		Trajectory: traj,
		Index:      len(traj) - 1,
		HasCurrent: len(traj) > 0,
	})
	return CanvasToSVG(c, theme, 4)
}

// TrajectoryToSVG draws the flight path with both axes on the same scale,
// ground at the bottom edge.
func TrajectoryToSVG(traj dynamo.Trajectory, width, height int, theme viz.Theme) (string, error) {
	if len(traj) < 2 {
		return "", dynamo.ErrEmptyTrajectory
	}

	maxX, maxY := 0.0, 0.0
	for _, s := range traj {
		maxX = math.Max(maxX, s.X)
		maxY = math.Max(maxY, s.Y)
	}
	const pad = 0.1
	spanX := math.Max(maxX, 1) * (1 + pad)
	spanY := math.Max(maxY, 1) * (1 + pad)
	scale := math.Min(float64(width)/spanX, float64(height)/spanY)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<line x1="0" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, theme.Sky,
		height, width, height, theme.Ground, theme.Path)

	for i, s := range traj {
		x := s.X * scale
		y := float64(height) - s.Y*scale
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	last := traj[len(traj)-1]
	fmt.Fprintf(&sb, "\"/>\n<circle cx=\"%.1f\" cy=\"%.1f\" r=\"4\" fill=\"%s\"/>\n</svg>",
		last.X*scale, float64(height)-last.Y*scale, theme.Projectile)
	return sb.String(), nil
}

func ExportSVG(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}
