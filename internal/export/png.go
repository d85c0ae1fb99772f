package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/metrics"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Chart sizes in inches.
const (
	chartWidth  = 8.0
	chartHeight = 5.0
	chartDPI    = 150
)

// PathPlot draws height against horizontal distance with the apex marked.
func PathPlot(traj dynamo.Trajectory, title string) (*plot.Plot, error) {
	if len(traj) == 0 {
		return nil, dynamo.ErrEmptyTrajectory
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "distance (m)"
	p.Y.Label.Text = "height (m)"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(traj))
	apex := 0
	for i, s := range traj {
		pts[i].X = s.X
		pts[i].Y = s.Y
		if s.Y > traj[apex].Y {
			apex = i
		}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)

	m := metrics.Compute(traj)
	peak, err := plotter.NewScatter(plotter.XYs{{X: traj[apex].X, Y: m.MaxHeight}})
	if err != nil {
		return nil, err
	}
	peak.GlyphStyle.Shape = draw.CircleGlyph{}
	peak.GlyphStyle.Radius = vg.Points(4)
	p.Add(peak)
	p.Legend.Add(fmt.Sprintf("max height %.2f m", m.MaxHeight), peak)

	return p, nil
}

// SeriesPlot draws one time series, e.g. speed or acceleration.
func SeriesPlot(title, ylabel string, ts, ys []float64) (*plot.Plot, error) {
	if len(ts) != len(ys) || len(ts) == 0 {
		return nil, fmt.Errorf("plot data invalid: %d times, %d values", len(ts), len(ys))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(ts))
	for i := range ts {
		pts[i].X = ts[i]
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)

	return p, nil
}

func WritePNG(w io.Writer, p *plot.Plot) error {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(chartWidth)*vg.Inch, vg.Length(chartHeight)*vg.Inch),
		vgimg.UseDPI(chartDPI),
	)
	p.Draw(draw.New(c))

	bw := bufio.NewWriter(w)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return bw.Flush()
}

func SavePNG(path string, p *plot.Plot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	return WritePNG(f, p)
}
