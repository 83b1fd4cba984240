package integrators

import "github.com/san-kum/physdemo/internal/dynamo"

// Verlet is velocity Verlet for states laid out as [positions..., velocities...].
// The acceleration must not depend on velocity for second-order accuracy.
type Verlet struct {
	mid dynamo.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	if len(v.mid) != n {
		v.mid = make(dynamo.State, n)
	}

	next := make(dynamo.State, n)
	acc := sys.Derive(x, t)
	for i := 0; i < half; i++ {
		next[i] = x[i] + x[half+i]*dt + 0.5*acc[half+i]*dt*dt
		v.mid[i] = next[i]
		v.mid[half+i] = x[half+i]
	}

	accNext := sys.Derive(v.mid, t+dt)
	for i := 0; i < half; i++ {
		next[half+i] = x[half+i] + 0.5*(acc[half+i]+accNext[half+i])*dt
	}
	return next
}

// Leapfrog is the kick-drift-kick form of the same scheme.
type Leapfrog struct {
	mid dynamo.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	if len(l.mid) != n {
		l.mid = make(dynamo.State, n)
	}

	acc := sys.Derive(x, t)
	next := make(dynamo.State, n)
	for i := 0; i < half; i++ {
		vHalf := x[half+i] + 0.5*dt*acc[half+i]
		next[i] = x[i] + dt*vHalf
		next[half+i] = vHalf
		l.mid[i] = next[i]
		l.mid[half+i] = vHalf
	}

	accNext := sys.Derive(l.mid, t+dt)
	for i := 0; i < half; i++ {
		next[half+i] += 0.5 * dt * accNext[half+i]
	}
	return next
}
