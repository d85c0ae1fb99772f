package playback

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/logging"
	"github.com/san-kum/projsim/internal/metrics"
	"github.com/san-kum/projsim/internal/sim"
)

// TrajectoryFunc computes the samples for one run.
type TrajectoryFunc func(dynamo.Params) (dynamo.Trajectory, error)

type Option func(*Controller)

// WithSimulator computes runs with s instead of the default fixed-step simulator.
func WithSimulator(s *sim.Simulator) Option {
	return func(c *Controller) { c.compute = s.Compute }
}

func WithTrajectoryFunc(fn TrajectoryFunc) Option {
	return func(c *Controller) { c.compute = fn }
}

func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) { c.log = l }
}

func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

type run struct {
	id       string
	params   dynamo.Params
	traj     dynamo.Trajectory
	metrics  dynamo.Metrics
	progress *metrics.Progress
}

type Controller struct {
	compute TrajectoryFunc
	sched   Scheduler
	clock   Clock
	log     *logging.Logger
	newID   func() string

	params    dynamo.Params
	observers []Observer

	phase     Phase
	run       *run
	index     int
	fraction  float64
	startRef  time.Time
	justReset bool

	gen     uint64
	seq     uint64
	pending *Token
}

func New(params dynamo.Params, sched Scheduler, clock Clock, opts ...Option) (*Controller, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = SystemClock{}
	}

	c := &Controller{
		compute: sim.Default().Compute,
		sched:   sched,
		clock:   clock,
		log:     logging.Discard(),
		newID:   uuid.NewString,
		params:  params,
		phase:   Idle,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "playback")

	return c, nil
}

func (c *Controller) Subscribe(o Observer) { c.observers = append(c.observers, o) }

func (c *Controller) Phase() Phase { return c.phase }

func (c *Controller) Params() dynamo.Params { return c.params }

// SetParams stores the configuration for the next Start. The current run
// keeps the parameters it was started with.
func (c *Controller) SetParams(p dynamo.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.params = p
	return nil
}

// Start discards any current run, computes a new one from the stored
// parameters and begins playback at its first sample. A run whose time of
// flight is zero completes immediately.
func (c *Controller) Start() {
	c.cancelPending()
	c.gen++

	traj, err := c.compute(c.params)
	if err != nil {
		c.log.Warn("trajectory integration stopped early", "error", err, "samples", len(traj))
	}
	if len(traj) == 0 {
		traj = dynamo.Trajectory{dynamo.SampleFromState(c.params.InitialState(), 0)}
	}

	c.run = &run{
		id:       c.newID(),
		params:   c.params,
		traj:     traj,
		metrics:  metrics.Compute(traj),
		progress: metrics.NewProgress(traj),
	}
	c.index = 0
	c.fraction = 0
	c.justReset = false
	c.startRef = c.clock.Now()

	c.log.Debug("run started",
		"run", c.run.id,
		"samples", len(traj),
		"time_of_flight", c.run.metrics.TimeOfFlight,
	)

	c.emitFrame()

	if !(c.run.metrics.TimeOfFlight > 0) {
		c.complete()
		return
	}

	c.phase = Running
	c.requestTick()
}

// Tick advances playback to the wall-clock time now. Ticks whose token is
// not the outstanding request are ignored.
func (c *Controller) Tick(tok Token, now time.Time) {
	if c.phase != Running || c.pending == nil || *c.pending != tok {
		return
	}
	c.pending = nil

	elapsed := now.Sub(c.startRef).Seconds()
	fraction := math.Min(elapsed/c.run.metrics.TimeOfFlight, 1)
	if fraction < c.fraction || math.IsNaN(fraction) {
		fraction = c.fraction
	}

	if fraction >= 1 {
		c.complete()
		return
	}

	c.fraction = fraction
	idx := int(math.Floor(fraction * float64(len(c.run.traj)-1)))
	if idx > c.index {
		c.index = idx
		c.emitFrame()
	}

	c.requestTick()
}

// Pause freezes a running playback. It does nothing in any other phase.
func (c *Controller) Pause() {
	if c.phase != Running {
		return
	}
	c.cancelPending()
	c.phase = Paused
	c.log.Debug("run paused", "run", c.run.id, "fraction", c.fraction)
}

// Resume continues a paused playback from the frozen fraction, so the time
// spent paused is not skipped.
func (c *Controller) Resume() {
	if c.phase != Paused {
		return
	}
	offset := time.Duration(c.fraction * c.run.metrics.TimeOfFlight * float64(time.Second))
	c.startRef = c.clock.Now().Add(-offset)
	c.phase = Running
	c.log.Debug("run resumed", "run", c.run.id, "fraction", c.fraction)
	c.requestTick()
}

func (c *Controller) TogglePause() {
	switch c.phase {
	case Running:
		c.Pause()
	case Paused:
		c.Resume()
	}
}

// Reset returns to Idle from any phase and tells observers to clear their
// accumulated state before returning.
func (c *Controller) Reset() {
	c.cancelPending()
	c.gen++

	if c.run != nil {
		c.log.Debug("run reset", "run", c.run.id, "phase", c.phase.String())
	}

	c.phase = Idle
	c.run = nil
	c.index = 0
	c.fraction = 0
	c.startRef = time.Time{}
	c.justReset = true

	for _, o := range c.observers {
		o.OnReset()
	}
}

// Snapshot returns the state renderers draw from. The reset flag is
// reported once and cleared.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:     c.phase,
		Params:    c.params,
		Index:     c.index,
		Fraction:  c.fraction,
		JustReset: c.justReset,
	}
	c.justReset = false

	if c.run == nil {
		return snap
	}

	snap.RunID = c.run.id
	snap.Params = c.run.params
	snap.Trajectory = c.run.traj
	snap.Metrics = c.run.metrics
	snap.Current = c.run.traj[c.index]
	snap.HasCurrent = true
	snap.LiveMaxHeight, snap.LiveRange = c.run.progress.At(c.index)
	return snap
}

func (c *Controller) complete() {
	c.pending = nil
	c.phase = Completed
	c.fraction = 1

	last := len(c.run.traj) - 1
	if c.index != last {
		c.index = last
		c.emitFrame()
	}

	c.log.Debug("run completed",
		"run", c.run.id,
		"max_height", c.run.metrics.MaxHeight,
		"range", c.run.metrics.Range,
	)
}

func (c *Controller) emitFrame() {
	s := c.run.traj[c.index]
	for _, o := range c.observers {
		o.OnFrame(s)
	}
}

func (c *Controller) requestTick() {
	c.seq++
	tok := Token{Run: c.gen, Seq: c.seq}
	c.pending = &tok
	if c.sched != nil {
		c.sched.RequestTick(tok)
	}
}

func (c *Controller) cancelPending() {
	if c.pending == nil {
		return
	}
	if c.sched != nil {
		c.sched.CancelTick(*c.pending)
	}
	c.pending = nil
}
