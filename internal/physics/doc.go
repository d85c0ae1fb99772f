// Package physics provides the dynamical model of a launched projectile.
//
// [Projectile] implements [dynamo.System] on the state [x, y, vx, vy]
// under uniform gravity with optional quadratic air resistance, and
// [dynamo.Hamiltonian] for mechanical energy:
//
//	dyn := physics.NewProjectile(params)
//	dx := dyn.Derive(params.InitialState(), 0)
//
// Parameters can be tuned at runtime through GetParams/SetParam.
package physics
