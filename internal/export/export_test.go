package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/sim"
	"github.com/san-kum/projsim/internal/viz"
)

func flight(t *testing.T) (dynamo.Params, dynamo.Trajectory) {
	t.Helper()
	p := dynamo.DefaultParams()
	return p, sim.ComputeTrajectory(p)
}

func TestCSVRoundTrip(t *testing.T) {
	_, traj := flight(t)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, traj); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "time,x,y,vx,vy,speed\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(traj) {
		t.Fatalf("read %d samples, want %d", len(got), len(traj))
	}
	for i := range traj {
		if got[i] != traj[i] {
			t.Fatalf("sample %d: got %+v, want %+v", i, got[i], traj[i])
		}
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"short row", "time,x,y,vx,vy,speed\n0,1,2\n"},
		{"bad number", "time,x,y,vx,vy,speed\n0,1,abc,3,4,5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.in)); err == nil {
				t.Error("expected error")
			}
		})
	}

	traj, err := ReadCSV(strings.NewReader("time,x,y,vx,vy,speed\n"))
	if err != nil || len(traj) != 0 {
		t.Errorf("header only: got %d samples, err %v", len(traj), err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	p, traj := flight(t)
	run := NewRun("run-1", "semi-implicit", sim.DefaultDt, p, traj)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, run); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if got.ID != "run-1" || got.Integrator != "semi-implicit" {
		t.Errorf("metadata lost: %+v", got)
	}
	if got.Params != p {
		t.Errorf("params = %+v, want %+v", got.Params, p)
	}
	if got.Metrics != run.Metrics || got.Steps != len(traj) {
		t.Errorf("metrics = %+v steps %d", got.Metrics, got.Steps)
	}
	if len(got.Samples) != len(traj) || got.Samples[len(traj)-1] != traj[len(traj)-1] {
		t.Error("samples not preserved")
	}
}

func TestExportFiles(t *testing.T) {
	p, traj := flight(t)
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "flight.csv")
	if err := ExportCSV(csvPath, traj); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadCSV(csvPath)
	if err != nil || len(loaded) != len(traj) {
		t.Errorf("load csv: %d samples, err %v", len(loaded), err)
	}

	jsonPath := filepath.Join(dir, "flight.json")
	if err := ExportJSON(jsonPath, NewRun("x", "rk4", 0.01, p, traj)); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(jsonPath); err != nil || info.Size() == 0 {
		t.Errorf("json not written: %v", err)
	}
}

func TestPNG(t *testing.T) {
	_, traj := flight(t)

	pl, err := PathPlot(traj, "default launch")
	if err != nil {
		t.Fatalf("path plot: %v", err)
	}
	var buf bytes.Buffer
	if err := WritePNG(&buf, pl); err != nil {
		t.Fatalf("write png: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}

	path := filepath.Join(t.TempDir(), "charts", "speed.png")
	ts, ys := traj.Times(), traj.Column(dynamo.Sample.Speed)
	sp, err := SeriesPlot("speed", "m/s", ts, ys)
	if err != nil {
		t.Fatalf("series plot: %v", err)
	}
	if err := SavePNG(path, sp); err != nil {
		t.Fatalf("save png: %v", err)
	}
}

func TestPlotErrors(t *testing.T) {
	if _, err := PathPlot(nil, "empty"); !errors.Is(err, dynamo.ErrEmptyTrajectory) {
		t.Errorf("expected ErrEmptyTrajectory, got %v", err)
	}
	if _, err := SeriesPlot("x", "y", []float64{1, 2}, []float64{1}); err == nil {
		t.Error("expected length mismatch error")
	}
}

func TestSVG(t *testing.T) {
	p, traj := flight(t)

	svg, err := TrajectoryToSVG(traj, 400, 200, viz.ThemeDay)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("malformed svg document")
	}
	if !strings.Contains(svg, string(viz.ThemeDay.Path)) {
		t.Error("path color missing")
	}

	if _, err := TrajectoryToSVG(traj[:1], 400, 200, viz.ThemeDay); !errors.Is(err, dynamo.ErrEmptyTrajectory) {
		t.Errorf("expected ErrEmptyTrajectory, got %v", err)
	}

	scene := SceneSVG(p, traj, viz.ThemeNight)
	if strings.Count(scene, "<circle") == 0 {
		t.Error("scene svg has no dots")
	}
	if CanvasToSVG(nil, viz.ThemeDay, 4) != "" {
		t.Error("nil canvas should give empty output")
	}
}
