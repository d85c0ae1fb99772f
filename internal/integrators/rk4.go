package integrators

import "github.com/san-kum/projsim/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta method. Stage buffers are
// reused between steps of equal dimension.
type RK4 struct {
	stage dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	if len(r.stage) != n {
		r.stage = make(dynamo.State, n)
	}

	offset := func(k dynamo.State, h float64) dynamo.State {
		for i := 0; i < n; i++ {
			r.stage[i] = x[i] + h*k[i]
		}
		return r.stage
	}

	k1 := dyn.Derive(x, t)
	k2 := dyn.Derive(offset(k1, dt/2), t+dt/2)
	k3 := dyn.Derive(offset(k2, dt/2), t+dt/2)
	k4 := dyn.Derive(offset(k3, dt), t+dt)

	result := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return result
}
