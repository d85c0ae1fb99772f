// Package playback maps wall-clock time onto a precomputed trajectory.
//
// A [Controller] owns one run at a time and moves it through the phases
// Idle, Running, Paused and Completed. It never blocks and holds no
// goroutines: the host frame loop delivers ticks through [Controller.Tick]
// after the controller asks for them with [Scheduler.RequestTick].
//
//	ctrl, _ := playback.New(params, sched, playback.SystemClock{})
//	ctrl.Start()
//	// host loop, once per frame:
//	ctrl.Tick(tok, now)
//	snap := ctrl.Snapshot()
//
// # Stale ticks
//
// Every request carries a [Token] naming the run generation and request
// sequence. Pause, Reset and Start invalidate the outstanding token, so a
// tick that was already in flight when the state changed is ignored.
//
// # Thread Safety
//
// Controller is NOT thread-safe. Commands and ticks must come from the
// same goroutine, normally the host's update loop.
package playback
