package playback_test

import (
	"fmt"
	"time"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/playback"
)

type fakeScheduler struct {
	requested []playback.Token
	cancelled []playback.Token
}

func (f *fakeScheduler) RequestTick(tok playback.Token) { f.requested = append(f.requested, tok) }
func (f *fakeScheduler) CancelTick(tok playback.Token)  { f.cancelled = append(f.cancelled, tok) }

func (f *fakeScheduler) last() playback.Token {
	return f.requested[len(f.requested)-1]
}

type manualClock struct {
	now time.Time
}

func (m *manualClock) Now() time.Time { return m.now }

func (m *manualClock) Advance(d time.Duration) time.Time {
	m.now = m.now.Add(d)
	return m.now
}

type recorder struct {
	frames []dynamo.Sample
	resets int
}

func (r *recorder) OnFrame(s dynamo.Sample) { r.frames = append(r.frames, s) }
func (r *recorder) OnReset()                { r.resets++ }

// linearFlight has n+1 samples spaced 1/60 s apart, so it lasts n/60 s.
func linearFlight(n int) playback.TrajectoryFunc {
	return func(p dynamo.Params) (dynamo.Trajectory, error) {
		traj := make(dynamo.Trajectory, n+1)
		for i := range traj {
			t := float64(i) / 60
			traj[i] = dynamo.Sample{X: 10 * t, Y: p.LaunchHeight + t*(2-t), VX: 10, VY: 2 - 2*t, T: t}
		}
		return traj, nil
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("run-%d", n)
	}
}
