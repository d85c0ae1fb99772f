package playback

import (
	"time"

	"github.com/san-kum/projsim/internal/dynamo"
)

type Phase int

const (
	Idle Phase = iota
	Running
	Paused
	Completed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Token identifies one tick request. Run changes on every Start and Reset;
// Seq changes on every request within a run.
type Token struct {
	Run uint64
	Seq uint64
}

// Scheduler is the host's per-frame callback facility. RequestTick asks for
// one future call to Controller.Tick with the same token. CancelTick
// withdraws a request; hosts that cannot withdraw may ignore it.
type Scheduler interface {
	RequestTick(tok Token)
	CancelTick(tok Token)
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Observer receives every displayed sample and a synchronous notice when
// the run is reset, so it can clear whatever it accumulated.
type Observer interface {
	OnFrame(s dynamo.Sample)
	OnReset()
}

// Snapshot is a read-only view of the controller for renderers. Trajectory
// shares the run's backing array and must not be modified.
type Snapshot struct {
	Phase      Phase
	RunID      string
	Params     dynamo.Params
	Trajectory dynamo.Trajectory
	Current    dynamo.Sample
	HasCurrent bool
	Index      int
	Metrics    dynamo.Metrics
	Fraction   float64

	// LiveMaxHeight and LiveRange cover the flight up to Current.
	LiveMaxHeight float64
	LiveRange     float64

	// JustReset is set in the first snapshot taken after Reset.
	JustReset bool
}

func (s Snapshot) Running() bool   { return s.Phase == Running }
func (s Snapshot) Paused() bool    { return s.Phase == Paused }
func (s Snapshot) Completed() bool { return s.Phase == Completed }
