// Package dynamo provides the core data contracts for projectile simulation.
//
// The package defines the types shared by the integrator, the metrics
// calculator and the playback controller:
//
//   - [Params]: launch configuration for one run
//   - [Sample]: kinematic state of the projectile at one time step
//   - [Trajectory]: ordered, immutable sequence of samples
//   - [Metrics]: scalar results derived from a completed trajectory
//   - [System] and [Integrator]: ODE abstraction (dX/dt = f(X, t))
//
// # Example
//
//	p := dynamo.DefaultParams()
//	traj := sim.ComputeTrajectory(p)
//	m := metrics.Compute(traj)
//
// # Immutability
//
// A Trajectory is never modified after the integrator returns it. Readers
// share the backing slice and must treat it as read-only.
package dynamo
