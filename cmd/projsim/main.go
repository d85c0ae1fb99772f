package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/projsim/internal/config"
	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/export"
	"github.com/san-kum/projsim/internal/integrators"
	"github.com/san-kum/projsim/internal/logging"
	"github.com/san-kum/projsim/internal/metrics"
	"github.com/san-kum/projsim/internal/optim"
	"github.com/san-kum/projsim/internal/physics"
	"github.com/san-kum/projsim/internal/sim"
	"github.com/san-kum/projsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	logLevel   string
	logFile    string

	velocity   float64
	angle      float64
	mass       float64
	drag       bool
	dragCoeff  float64
	gravity    float64
	height     float64
	integrator string
	dt         float64
	maxTime    float64

	theme     string
	frameRate int

	analytic bool
	outPath  string
	csvInput string

	objective  string
	searchOver []string
	searchLo   []float64
	searchHi   []float64
	gridPoints int
)

// main registers the commands and flags and runs the live view when no
// subcommand is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "projsim",
		Short:        "projectile motion simulator",
		SilenceUsage: true,
		RunE:         runLive,
	}

	defaults := config.DefaultConfig()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "launch preset (see 'projsim presets')")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default $"+logging.EnvLevel+" or info)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.Float64Var(&velocity, "velocity", defaults.Params.Velocity, "launch speed (m/s)")
	pf.Float64Var(&angle, "angle", defaults.Params.Angle, "launch angle (degrees, -90..90)")
	pf.Float64Var(&mass, "mass", defaults.Params.Mass, "projectile mass (kg)")
	pf.BoolVar(&drag, "drag", defaults.Params.Drag, "enable air resistance")
	pf.Float64Var(&dragCoeff, "drag-coeff", defaults.Params.DragCoeff, "drag coefficient")
	pf.Float64Var(&gravity, "gravity", defaults.Params.Gravity, "gravitational acceleration (m/s^2)")
	pf.Float64Var(&height, "height", defaults.Params.LaunchHeight, "launch height (m)")
	pf.StringVar(&integrator, "integrator", defaults.Integrator, "integrator: "+strings.Join(integrators.Names(), ", "))
	pf.Float64Var(&dt, "dt", defaults.Dt, "timestep (s)")
	pf.Float64Var(&maxTime, "max-time", defaults.MaxFlightTime, "flight time cap (s)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the launch in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	for _, c := range []*cobra.Command{rootCmd, liveCmd} {
		c.Flags().StringVar(&theme, "theme", defaults.Theme, "theme: "+strings.Join(viz.ThemeNames(), ", "))
		c.Flags().IntVar(&frameRate, "fps", defaults.FPS, "frame rate")
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "compute a trajectory and print its metrics",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().BoolVar(&analytic, "analytic", false, "also print the closed-form vacuum values")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot height, speed and acceleration over time",
		Args:  cobra.NoArgs,
		RunE:  plotTrajectory,
	}
	plotCmd.Flags().StringVar(&csvInput, "csv", "", "plot a trajectory exported with 'export csv'")

	exportCmd := &cobra.Command{
		Use:       "export [csv|json|png|svg]",
		Short:     "write the trajectory to a file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"csv", "json", "png", "svg"},
		RunE:      exportTrajectory,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default trajectory.<format>)")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators against the closed-form vacuum flight",
		RunE:  compareIntegrators,
	}

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "grid search launch parameters for the best flight",
		Args:  cobra.NoArgs,
		RunE:  optimizeLaunch,
	}
	optimizeCmd.Flags().StringVar(&objective, "objective", "range", "metric to maximise: range, max_height, time_of_flight")
	optimizeCmd.Flags().StringSliceVar(&searchOver, "param", []string{"angle"}, "parameters to search")
	optimizeCmd.Flags().Float64SliceVar(&searchLo, "from", []float64{0}, "lower bound per parameter")
	optimizeCmd.Flags().Float64SliceVar(&searchHi, "to", []float64{90}, "upper bound per parameter")
	optimizeCmd.Flags().IntVar(&gridPoints, "points", 91, "grid points per parameter")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVELOCITY\tANGLE\tMASS\tDRAG\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				dragText := "off"
				if p.Drag {
					dragText = fmt.Sprintf("%g", p.DragCoeff)
				}
				fmt.Fprintf(w, "%s\t%g m/s\t%g°\t%g kg\t%s\t%s\n", name, p.Velocity, p.Angle, p.Mass, dragText, p.Description)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(liveCmd, runCmd, plotCmd, exportCmd, compareCmd, optimizeCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the configuration: defaults, then the preset, then
// the config file, then flags given on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Params = p.Apply(cfg.Params)
	}

	if configFile != "" {
		if err := config.Overlay(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("velocity") {
		cfg.Params.Velocity = velocity
	}
	if flags.Changed("angle") {
		cfg.Params.Angle = angle
	}
	if flags.Changed("mass") {
		cfg.Params.Mass = mass
	}
	if flags.Changed("drag") {
		cfg.Params.Drag = drag
	}
	if flags.Changed("drag-coeff") {
		cfg.Params.DragCoeff = dragCoeff
	}
	if flags.Changed("gravity") {
		cfg.Params.Gravity = gravity
	}
	if flags.Changed("height") {
		cfg.Params.LaunchHeight = height
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("max-time") {
		cfg.MaxFlightTime = maxTime
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger writes to --log-file when given. Otherwise it uses fallback,
// which is stderr for batch commands and nothing for the live view.
func newLogger(cmd *cobra.Command, fallback io.Writer) (*logging.Logger, func(), error) {
	level := logging.LevelFromEnv()
	if cmd.Flags().Changed("log-level") {
		level = logging.ParseLevel(logLevel)
	}

	if logFile == "" {
		if fallback == io.Discard {
			return logging.Discard(), func() {}, nil
		}
		return logging.New(fallback, level), func() {}, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return logging.New(f, level), func() { f.Close() }, nil
}

func computeRun(cmd *cobra.Command) (*config.Config, dynamo.Trajectory, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, closeLog, err := newLogger(cmd, os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	defer closeLog()

	simulator, err := cfg.Simulator()
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	traj, err := simulator.Compute(cfg.Params)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("trajectory computed",
		"integrator", cfg.Integrator,
		"samples", len(traj),
		"elapsed", time.Since(start),
	)
	return cfg, traj, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	m, err := viz.NewModel(cfg, log)
	if err != nil {
		return err
	}

	log.Info("live view started", "integrator", cfg.Integrator, "fps", cfg.FPS)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, traj, err := computeRun(cmd)
	if err != nil {
		return err
	}

	p := cfg.Params
	m := metrics.Compute(traj)
	loss := metrics.NewEnergyLoss(physics.NewProjectile(p))
	loss.ObserveAll(traj)

	fmt.Printf("launch: %g m/s at %g° from %g m, mass %g kg, g %g m/s^2\n",
		p.Velocity, p.Angle, p.LaunchHeight, p.Mass, p.Gravity)
	if p.Drag {
		fmt.Printf("air resistance: on (coefficient %g)\n", p.DragCoeff)
	} else {
		fmt.Println("air resistance: off")
	}
	fmt.Printf("integrator: %s (dt=%.5f)\n", cfg.Integrator, cfg.Dt)
	fmt.Printf("steps: %d\n", len(traj))
	fmt.Println("\nmetrics:")
	fmt.Printf("  max_height:     %.3f m\n", m.MaxHeight)
	fmt.Printf("  range:          %.3f m\n", m.Range)
	fmt.Printf("  time_of_flight: %.3f s\n", m.TimeOfFlight)
	fmt.Printf("  energy_loss:    %.2f%%\n", loss.Value()*100)

	if m.TimeOfFlight+cfg.Dt > cfg.MaxFlightTime {
		fmt.Printf("\nflight stopped at the %.0f s cap before landing\n", cfg.MaxFlightTime)
	}

	if analytic {
		v := physics.Vacuum(p)
		fmt.Println("\nclosed form (vacuum):")
		fmt.Printf("  max_height:     %.3f m\n", v.MaxHeight)
		fmt.Printf("  range:          %.3f m\n", v.Range)
		fmt.Printf("  time_of_flight: %.3f s\n", v.TimeOfFlight)
		if p.Drag {
			fmt.Println("  (drag is on; the closed form ignores it)")
		}
	}
	return nil
}

func plotTrajectory(cmd *cobra.Command, args []string) error {
	var traj dynamo.Trajectory
	if csvInput != "" {
		loaded, err := export.LoadCSV(csvInput)
		if err != nil {
			return err
		}
		traj = loaded
	} else {
		_, computed, err := computeRun(cmd)
		if err != nil {
			return err
		}
		traj = computed
	}

	if len(traj) < 2 {
		return fmt.Errorf("no data to plot")
	}

	history := metrics.NewGraphHistory(len(traj))
	for _, s := range traj {
		history.OnFrame(s)
	}

	m := metrics.Compute(traj)
	fmt.Printf("samples: %d  range: %.2f m  max height: %.2f m  time of flight: %.2f s\n\n",
		len(traj), m.Range, m.MaxHeight, m.TimeOfFlight)

	series := []struct {
		caption string
		data    []float64
	}{
		{"height (m) vs time", traj.Column(func(s dynamo.Sample) float64 { return s.Y })},
		{"speed (m/s) vs time", history.Speeds()},
		{"acceleration (m/s^2) vs time", history.Accels()[1:]},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportTrajectory(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(args[0])
	switch format {
	case "csv", "json", "png", "svg":
	default:
		return fmt.Errorf("unknown export format: %s (want csv, json, png or svg)", format)
	}

	cfg, traj, err := computeRun(cmd)
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = "trajectory." + format
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	switch format {
	case "csv":
		err = export.ExportCSV(path, traj)
	case "json":
		run := export.NewRun(uuid.NewString(), cfg.Integrator, cfg.Dt, cfg.Params, traj)
		err = export.ExportJSON(path, run)
	case "png":
		title := fmt.Sprintf("%g m/s at %g°", cfg.Params.Velocity, cfg.Params.Angle)
		p, perr := export.PathPlot(traj, title)
		if perr != nil {
			return perr
		}
		err = export.SavePNG(path, p)
	case "svg":
		err = export.ExportSVG(path, export.SceneSVG(cfg.Params, traj, viz.GetTheme(cfg.Theme)))
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}

	fmt.Printf("wrote %d samples to %s\n", len(traj), path)
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	p := cfg.Params
	ref := physics.Vacuum(p)
	fmt.Printf("comparing integrators (dt=%.4f, %g m/s at %g°)\n", cfg.Dt, p.Velocity, p.Angle)
	if p.Drag {
		fmt.Println("drag is on: errors are against the vacuum flight and include the drag effect")
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "integrator\trange\tmax_height\ttime_of_flight\trange_err\tenergy_loss\ttime_ms\t")
	fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%s\t%s\t%s\t\n", "exact", ref.Range, ref.MaxHeight, ref.TimeOfFlight, "-", "-", "-")

	for _, name := range names {
		integ, err := integrators.Get(name)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\t\t\t\t\n", name, err)
			continue
		}
		s, err := sim.New(integ, cfg.SimConfig())
		if err != nil {
			return err
		}

		start := time.Now()
		traj, err := s.Compute(p)
		elapsed := time.Since(start)
		if err != nil {
			log.Warn("integration failed", "integrator", name, "error", err)
			fmt.Fprintf(w, "%s\terror: %v\t\t\t\t\t\t\n", name, err)
			continue
		}

		m := metrics.Compute(traj)
		loss := metrics.NewEnergyLoss(physics.NewProjectile(p))
		loss.ObserveAll(traj)

		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.2e\t%.2e\t%.3f\t\n",
			name, m.Range, m.MaxHeight, m.TimeOfFlight,
			m.Range-ref.Range, loss.Value(),
			float64(elapsed.Microseconds())/1000)
	}
	return w.Flush()
}

func optimizeLaunch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	obj, ok := optim.Objectives[objective]
	if !ok {
		return fmt.Errorf("unknown objective: %s", objective)
	}
	if len(searchLo) != len(searchOver) || len(searchHi) != len(searchOver) {
		return fmt.Errorf("need one --from and --to per --param")
	}

	ranges := make([][]float64, len(searchOver))
	for i := range searchOver {
		ranges[i] = optim.Steps(searchLo[i], searchHi[i], gridPoints)
	}
	g, err := optim.NewGridSearch(searchOver, ranges)
	if err != nil {
		return err
	}
	simulator, err := cfg.Simulator()
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := g.Search(context.Background(), simulator, cfg.Params, obj)
	if err != nil {
		return err
	}

	fmt.Printf("searched %d launches in %v\n", res.Evaluated, time.Since(start).Round(time.Millisecond))
	fmt.Printf("best %s: %.3f\n", objective, res.Score)
	for _, name := range searchOver {
		for _, s := range config.Sliders {
			if s.Key == name {
				fmt.Printf("  %s: %g %s\n", name, s.Get(res.Params), s.Unit)
			}
		}
	}
	fmt.Printf("  (range %.2f m, max height %.2f m, time of flight %.2f s)\n",
		res.Metrics.Range, res.Metrics.MaxHeight, res.Metrics.TimeOfFlight)
	return nil
}
