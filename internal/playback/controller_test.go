package playback_test

import (
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/metrics"
	"github.com/san-kum/projsim/internal/playback"
)

var _ = Describe("Controller", func() {
	var (
		sched  *fakeScheduler
		clock  *manualClock
		rec    *recorder
		ctrl   *playback.Controller
		params dynamo.Params
	)

	// tickAfter advances the clock and delivers the outstanding request.
	tickAfter := func(d time.Duration) {
		now := clock.Advance(d)
		ctrl.Tick(sched.last(), now)
	}

	BeforeEach(func() {
		sched = &fakeScheduler{}
		clock = &manualClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
		rec = &recorder{}
		params = dynamo.DefaultParams()

		var err error
		ctrl, err = playback.New(params, sched, clock,
			playback.WithTrajectoryFunc(linearFlight(120)),
			playback.WithIDGenerator(sequentialIDs()),
		)
		Expect(err).NotTo(HaveOccurred())
		ctrl.Subscribe(rec)
	})

	Describe("construction", func() {
		It("rejects out-of-range parameters", func() {
			params.Mass = 0
			_, err := playback.New(params, sched, clock)
			Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
		})

		It("starts idle with no current sample", func() {
			snap := ctrl.Snapshot()
			Expect(snap.Phase).To(Equal(playback.Idle))
			Expect(snap.HasCurrent).To(BeFalse())
			Expect(snap.Trajectory).To(BeEmpty())
			Expect(snap.Metrics).To(Equal(dynamo.Metrics{}))
			Expect(sched.requested).To(BeEmpty())
		})
	})

	Describe("Start", func() {
		BeforeEach(func() {
			ctrl.Start()
		})

		It("enters Running at the first sample and requests a tick", func() {
			snap := ctrl.Snapshot()
			Expect(snap.Phase).To(Equal(playback.Running))
			Expect(snap.RunID).To(Equal("run-1"))
			Expect(snap.Index).To(Equal(0))
			Expect(snap.Fraction).To(BeZero())
			Expect(snap.HasCurrent).To(BeTrue())
			Expect(snap.Current.T).To(BeZero())
			Expect(snap.Trajectory).To(HaveLen(121))
			Expect(snap.Metrics.TimeOfFlight).To(BeNumerically("~", 2.0, 1e-12))
			Expect(sched.requested).To(HaveLen(1))
			Expect(rec.frames).To(HaveLen(1))
		})

		It("maps elapsed time to a fraction of the flight", func() {
			tickAfter(time.Second)

			snap := ctrl.Snapshot()
			Expect(snap.Phase).To(Equal(playback.Running))
			Expect(snap.Fraction).To(BeNumerically("~", 0.5, 1e-9))
			Expect(snap.Index).To(Equal(60))
			Expect(snap.Current).To(Equal(snap.Trajectory[60]))
			Expect(sched.requested).To(HaveLen(2))
		})

		It("completes exactly on the last sample", func() {
			tickAfter(time.Second)
			tickAfter(1500 * time.Millisecond)

			snap := ctrl.Snapshot()
			Expect(snap.Phase).To(Equal(playback.Completed))
			Expect(snap.Fraction).To(Equal(1.0))
			Expect(snap.Index).To(Equal(120))
			Expect(snap.Current.X).To(Equal(snap.Metrics.Range))
			Expect(snap.Current.T).To(Equal(snap.Metrics.TimeOfFlight))
			Expect(snap.LiveMaxHeight).To(Equal(snap.Metrics.MaxHeight))
			Expect(sched.requested).To(HaveLen(2))

			last := rec.frames[len(rec.frames)-1]
			Expect(last).To(Equal(snap.Trajectory[120]))
		})

		It("ignores ticks after completion", func() {
			tok := sched.last()
			ctrl.Tick(tok, clock.Advance(3*time.Second))
			frames := len(rec.frames)

			ctrl.Tick(tok, clock.Advance(time.Second))

			Expect(ctrl.Phase()).To(Equal(playback.Completed))
			Expect(rec.frames).To(HaveLen(frames))
		})

		It("never moves backwards under irregular ticks", func() {
			prev := 0
			steps := []time.Duration{
				7 * time.Millisecond, 40 * time.Millisecond, time.Millisecond,
				-30 * time.Millisecond, 300 * time.Millisecond, 16 * time.Millisecond,
			}
			for _, d := range steps {
				tickAfter(d)
				idx := ctrl.Snapshot().Index
				Expect(idx).To(BeNumerically(">=", prev))
				Expect(idx).To(BeNumerically("<=", 120))
				prev = idx
			}
		})

		It("only emits frames when the sample changes", func() {
			tickAfter(time.Millisecond)
			tickAfter(time.Millisecond)
			Expect(rec.frames).To(HaveLen(1))

			tickAfter(100 * time.Millisecond)
			Expect(rec.frames).To(HaveLen(2))
		})

		It("reports live height and distance up to the current sample", func() {
			tickAfter(500 * time.Millisecond)

			snap := ctrl.Snapshot()
			Expect(snap.LiveRange).To(Equal(snap.Current.X))
			Expect(snap.LiveMaxHeight).To(Equal(snap.Current.Y))
			Expect(snap.LiveMaxHeight).To(BeNumerically("<", snap.Metrics.MaxHeight))
		})

		It("replaces the run when started again", func() {
			tickAfter(time.Second)
			stale := sched.last()

			ctrl.Start()
			Expect(sched.cancelled).To(ContainElement(stale))

			ctrl.Tick(stale, clock.Advance(500*time.Millisecond))

			snap := ctrl.Snapshot()
			Expect(snap.RunID).To(Equal("run-2"))
			Expect(snap.Index).To(Equal(0))
			Expect(snap.Fraction).To(BeZero())
		})
	})

	Describe("pause and resume", func() {
		BeforeEach(func() {
			ctrl.Start()
			tickAfter(500 * time.Millisecond)
		})

		It("freezes progress and withdraws the tick request", func() {
			tok := sched.last()
			ctrl.Pause()

			Expect(ctrl.Phase()).To(Equal(playback.Paused))
			Expect(sched.cancelled).To(ContainElement(tok))

			ctrl.Tick(tok, clock.Advance(time.Second))
			snap := ctrl.Snapshot()
			Expect(snap.Fraction).To(BeNumerically("~", 0.25, 1e-9))
			Expect(snap.Index).To(Equal(30))
		})

		It("continues from the frozen fraction without skipping the pause", func() {
			ctrl.Pause()
			clock.Advance(10 * time.Second)
			ctrl.Resume()

			Expect(ctrl.Phase()).To(Equal(playback.Running))
			tickAfter(250 * time.Millisecond)

			snap := ctrl.Snapshot()
			Expect(snap.Phase).To(Equal(playback.Running))
			Expect(snap.Fraction).To(BeNumerically("~", 0.375, 1e-6))
			Expect(snap.Index).To(Equal(45))
		})

		It("toggles between the two phases", func() {
			ctrl.TogglePause()
			Expect(ctrl.Phase()).To(Equal(playback.Paused))
			ctrl.TogglePause()
			Expect(ctrl.Phase()).To(Equal(playback.Running))
		})

		It("does nothing outside Running or Paused", func() {
			ctrl.Reset()
			ctrl.Pause()
			Expect(ctrl.Phase()).To(Equal(playback.Idle))
			ctrl.Resume()
			Expect(ctrl.Phase()).To(Equal(playback.Idle))
			ctrl.TogglePause()
			Expect(ctrl.Phase()).To(Equal(playback.Idle))
		})

		It("does not resume a running playback", func() {
			requests := len(sched.requested)
			ctrl.Resume()
			Expect(sched.requested).To(HaveLen(requests))
		})
	})

	Describe("Reset", func() {
		DescribeTable("returns to Idle from any phase",
			func(prepare func()) {
				prepare()
				ctrl.Reset()

				snap := ctrl.Snapshot()
				Expect(snap.Phase).To(Equal(playback.Idle))
				Expect(snap.Trajectory).To(BeEmpty())
				Expect(snap.HasCurrent).To(BeFalse())
				Expect(snap.Metrics).To(Equal(dynamo.Metrics{}))
				Expect(snap.Index).To(BeZero())
				Expect(snap.Fraction).To(BeZero())
				Expect(snap.JustReset).To(BeTrue())
				Expect(rec.resets).To(Equal(1))
			},
			Entry("idle", func() {}),
			Entry("running", func() { ctrl.Start(); tickAfter(time.Second) }),
			Entry("paused", func() { ctrl.Start(); tickAfter(time.Second); ctrl.Pause() }),
			Entry("completed", func() { ctrl.Start(); tickAfter(5 * time.Second) }),
		)

		It("raises the reset flag once per call", func() {
			ctrl.Start()
			ctrl.Reset()

			Expect(ctrl.Snapshot().JustReset).To(BeTrue())
			Expect(ctrl.Snapshot().JustReset).To(BeFalse())

			ctrl.Reset()
			Expect(rec.resets).To(Equal(2))
			Expect(ctrl.Snapshot().JustReset).To(BeTrue())
		})

		It("makes the in-flight tick inert", func() {
			ctrl.Start()
			tok := sched.last()
			ctrl.Reset()

			Expect(sched.cancelled).To(ContainElement(tok))
			ctrl.Tick(tok, clock.Advance(time.Second))
			Expect(ctrl.Phase()).To(Equal(playback.Idle))
			Expect(ctrl.Snapshot().HasCurrent).To(BeFalse())
		})

		It("clears subscribed graph history", func() {
			history := metrics.NewGraphHistory(0)
			ctrl.Subscribe(history)
			ctrl.Start()
			tickAfter(time.Second)
			Expect(history.Len()).To(Equal(2))

			ctrl.Reset()
			Expect(history.Len()).To(BeZero())
		})
	})

	Describe("parameters", func() {
		It("applies new parameters on the next start only", func() {
			ctrl.Start()
			next := params
			next.LaunchHeight = 10
			Expect(ctrl.SetParams(next)).To(Succeed())

			Expect(ctrl.Snapshot().Params.LaunchHeight).To(Equal(params.LaunchHeight))

			ctrl.Start()
			snap := ctrl.Snapshot()
			Expect(snap.Params.LaunchHeight).To(Equal(10.0))
			Expect(snap.Current.Y).To(Equal(10.0))
		})

		It("rejects invalid parameters and keeps the old ones", func() {
			bad := params
			bad.Angle = 120
			err := ctrl.SetParams(bad)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
			Expect(ctrl.Params()).To(Equal(params))
		})
	})

	Describe("a run with no flight time", func() {
		BeforeEach(func() {
			var err error
			ctrl, err = playback.New(params, sched, clock, playback.WithTrajectoryFunc(linearFlight(0)))
			Expect(err).NotTo(HaveOccurred())
			ctrl.Subscribe(rec)
			ctrl.Start()
		})

		It("completes immediately without requesting ticks", func() {
			snap := ctrl.Snapshot()
			Expect(snap.Phase).To(Equal(playback.Completed))
			Expect(snap.Index).To(BeZero())
			Expect(snap.Fraction).To(Equal(1.0))
			Expect(sched.requested).To(BeEmpty())
			Expect(rec.frames).To(HaveLen(1))
		})
	})

	Describe("with the default simulator", func() {
		BeforeEach(func() {
			params = dynamo.Params{Velocity: 25, Angle: 45, Mass: 5, Gravity: 9.81}
			var err error
			ctrl, err = playback.New(params, sched, clock)
			Expect(err).NotTo(HaveOccurred())
			ctrl.Start()
		})

		It("plays the computed flight to its landing point", func() {
			snap := ctrl.Snapshot()
			Expect(snap.RunID).NotTo(BeEmpty())
			Expect(snap.Metrics.TimeOfFlight).To(BeNumerically("~", 2*25*math.Sin(math.Pi/4)/9.81, 0.05))

			for ctrl.Phase() == playback.Running {
				tickAfter(16 * time.Millisecond)
			}

			snap = ctrl.Snapshot()
			Expect(snap.Phase).To(Equal(playback.Completed))
			Expect(snap.Index).To(Equal(len(snap.Trajectory) - 1))
			Expect(snap.Current.X).To(Equal(snap.Metrics.Range))
			Expect(snap.Metrics.Range).To(BeNumerically("~", 63.7, 1.0))
		})
	})
})

var _ = Describe("Phase", func() {
	It("names every phase", func() {
		Expect(playback.Idle.String()).To(Equal("idle"))
		Expect(playback.Running.String()).To(Equal("running"))
		Expect(playback.Paused.String()).To(Equal("paused"))
		Expect(playback.Completed.String()).To(Equal("completed"))
		Expect(playback.Phase(9).String()).To(Equal("unknown"))
	})
})
