package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/projsim/internal/config"
	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/logging"
	"github.com/san-kum/projsim/internal/metrics"
	"github.com/san-kum/projsim/internal/playback"
)

const (
	canvasWidth  = 60
	canvasHeight = 20
	graphWidth   = 30
	graphHeight  = 4
)

// Model is the Bubble Tea model for live playback. The controller, the
// scheduler and the graph history are shared through pointers, so copies
// of Model made by Bubble Tea drive the same run.
type Model struct {
	ctrl    *playback.Controller
	sched   *TeaScheduler
	history *metrics.GraphHistory
	canvas  *Canvas
	log     *logging.Logger

	presets   []string
	presetIdx int
	selected  int
	theme     Theme
	styles    Styles
	showHelp  bool
	flash     string
	snap      playback.Snapshot
}

// NewModel builds the live view for cfg. Runs are computed with the
// configuration's integrator and step.
func NewModel(cfg *config.Config, log *logging.Logger) (Model, error) {
	if log == nil {
		log = logging.Discard()
	}
	simulator, err := cfg.Simulator()
	if err != nil {
		return Model{}, err
	}

	sched := NewTeaScheduler(cfg.FPS)
	ctrl, err := playback.New(cfg.Params, sched, playback.SystemClock{},
		playback.WithSimulator(simulator),
		playback.WithLogger(log),
	)
	if err != nil {
		return Model{}, err
	}

	history := metrics.NewGraphHistory(metrics.DefaultHistoryCapacity)
	ctrl.Subscribe(history)

	theme := GetTheme(cfg.Theme)
	m := Model{
		ctrl:      ctrl,
		sched:     sched,
		history:   history,
		canvas:    NewCanvas(canvasWidth, canvasHeight),
		log:       log,
		presets:   config.ListPresets(),
		presetIdx: -1,
		theme:     theme,
		styles:    NewStyles(theme),
	}
	m.snap = ctrl.Snapshot()
	return m, nil
}

func (m Model) Controller() *playback.Controller { return m.ctrl }

func (m Model) Snapshot() playback.Snapshot { return m.snap }

func (m Model) Init() tea.Cmd { return nil }

// Update handles input events and playback ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.flash = ""
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s", "enter":
			m.ctrl.Start()
		case " ":
			switch m.ctrl.Phase() {
			case playback.Idle, playback.Completed:
				m.ctrl.Start()
			default:
				m.ctrl.TogglePause()
			}
		case "r":
			m.ctrl.Reset()
		case "tab":
			m.selected = (m.selected + 1) % len(config.Sliders)
		case "shift+tab":
			m.selected = (m.selected + len(config.Sliders) - 1) % len(config.Sliders)
		case "up", "k":
			m.nudge(1)
		case "down", "j":
			m.nudge(-1)
		case "a":
			p := m.ctrl.Params()
			p.Drag = !p.Drag
			m.setParams(p)
		case "p":
			m.nextPreset()
		case "t":
			m.theme = m.theme.Next()
			m.styles = NewStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.ctrl.Tick(msg.Token, msg.Time)
	}

	m.snap = m.ctrl.Snapshot()
	if m.snap.JustReset {
		m.flash = "reset: graphs cleared"
	}
	return m, m.sched.Flush()
}

func (m *Model) nudge(steps int) {
	s := config.Sliders[m.selected]
	m.setParams(s.Nudge(m.ctrl.Params(), steps))
}

func (m *Model) setParams(p dynamo.Params) {
	if err := m.ctrl.SetParams(p); err != nil {
		m.flash = err.Error()
		m.log.Warn("parameters rejected", "error", err)
		return
	}
	if m.ctrl.Phase() != playback.Idle {
		m.flash = "applies on next start"
	}
}

// nextPreset applies the next preset and resets, so the scene shows the
// new launch setup.
func (m *Model) nextPreset() {
	if len(m.presets) == 0 {
		return
	}
	m.presetIdx = (m.presetIdx + 1) % len(m.presets)
	preset, _ := config.GetPreset(m.presets[m.presetIdx])
	if err := m.ctrl.SetParams(preset.Apply(m.ctrl.Params())); err != nil {
		m.flash = err.Error()
		return
	}
	m.ctrl.Reset()
	m.log.Info("preset applied", "preset", m.presets[m.presetIdx])
}

func (m Model) View() string {
	snap := m.snap
	if snap.Phase == playback.Idle {
		snap.Params = m.ctrl.Params()
	}
	DrawScene(m.canvas, SceneFromSnapshot(snap))
	canvasView := m.styles.Canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(m.styles.Header.Render("PROJECTILE MOTION") + "\n")
	s.WriteString(m.status(snap) + "\n")
	if m.flash != "" {
		s.WriteString(m.styles.Flash.Render(m.flash) + "\n")
	}
	s.WriteString("\n")

	m.writeLive(&s, snap)
	s.WriteString("\nRESULTS\n")
	m.writeResults(&s, snap)
	s.WriteString("\nPARAMETERS\n")
	m.writeParams(&s)

	s.WriteString(m.styles.Help.Render("\nS:Start SP:Pause R:Reset Q:Quit\nA:Drag P:Preset T:Theme ?:Help"))
	panel := m.styles.Panel.Render(s.String())

	left := lipgloss.JoinVertical(lipgloss.Left, canvasView, m.graphs())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, left, panel)
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

func (m Model) status(snap playback.Snapshot) string {
	bar := ProgressBar(snap.Fraction, 20)
	switch snap.Phase {
	case playback.Running:
		return m.styles.Status.Render("RUNNING ") + bar
	case playback.Paused:
		return m.styles.StatusPaused.Render("PAUSED  ") + bar
	case playback.Completed:
		return m.styles.StatusDone.Render("LANDED  ") + ProgressBar(1, 20)
	}
	return m.styles.Label.Render("READY") + " press S to launch"
}

func (m Model) row(s *strings.Builder, label, value string) {
	s.WriteString(m.styles.Label.Render(label) + m.styles.Value.Render(value) + "\n")
}

func (m Model) writeLive(s *strings.Builder, snap playback.Snapshot) {
	if !snap.HasCurrent {
		m.row(s, "Position", "-")
		m.row(s, "Velocity", "-")
		return
	}
	c := snap.Current
	m.row(s, "Time", fmt.Sprintf("%.2f s", c.T))
	m.row(s, "Position", fmt.Sprintf("(%.2f, %.2f) m", c.X, c.Y))
	m.row(s, "Velocity", fmt.Sprintf("(%.2f, %.2f) m/s", c.VX, c.VY))
	m.row(s, "Speed", fmt.Sprintf("%.2f m/s", c.Speed()))
	m.row(s, "Max height", fmt.Sprintf("%.2f m", snap.LiveMaxHeight))
	m.row(s, "Distance", fmt.Sprintf("%.2f m", snap.LiveRange))
}

func (m Model) writeResults(s *strings.Builder, snap playback.Snapshot) {
	if !snap.Completed() {
		m.row(s, "Max height", "-")
		m.row(s, "Range", "-")
		m.row(s, "Flight time", "-")
		return
	}
	m.row(s, "Max height", fmt.Sprintf("%.2f m", snap.Metrics.MaxHeight))
	m.row(s, "Range", fmt.Sprintf("%.2f m", snap.Metrics.Range))
	m.row(s, "Flight time", fmt.Sprintf("%.2f s", snap.Metrics.TimeOfFlight))
}

func (m Model) writeParams(s *strings.Builder) {
	p := m.ctrl.Params()
	for i, sl := range config.Sliders {
		line := fmt.Sprintf("%-11s %8.3g %s", sl.Label, sl.Get(p), sl.Unit)
		if i == m.selected {
			s.WriteString(m.styles.ActiveParam.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + m.styles.Label.UnsetWidth().Render(line) + "\n")
		}
	}
	drag := "off"
	if p.Drag {
		drag = "on"
	}
	s.WriteString("  " + m.styles.Label.UnsetWidth().Render("Air drag    "+drag) + "\n")
	if m.presetIdx >= 0 {
		preset, _ := config.GetPreset(m.presets[m.presetIdx])
		s.WriteString("  " + m.styles.Help.Render("preset: "+preset.Name) + "\n")
	}
}

func (m Model) graphs() string {
	if m.history.Len() < 2 {
		return ""
	}
	speed := asciigraph.Plot(m.history.Speeds(),
		asciigraph.Height(graphHeight), asciigraph.Width(graphWidth), asciigraph.Caption("Speed (m/s)"))
	accel := asciigraph.Plot(m.history.Accels(),
		asciigraph.Height(graphHeight), asciigraph.Width(graphWidth), asciigraph.Caption("Accel (m/s2)"))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Graph.Render(speed), "  ", m.styles.Graph.Render(accel))
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  S/Enter  - Launch                   ║
║  Space    - Pause/Resume             ║
║  R        - Reset                    ║
║  Tab      - Select parameter         ║
║  Up/K     - Increase parameter       ║
║  Down/J   - Decrease parameter       ║
║  A        - Toggle air resistance    ║
║  P        - Next preset              ║
║  T        - Toggle day/night         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
