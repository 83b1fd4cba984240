package integrators

import "github.com/san-kum/physdemo/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta method. Stage buffers are
// reused between steps, so an RK4 value must not be shared by goroutines.
type RK4 struct {
	k     [4]dynamo.State
	stage dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensure(n int) {
	if len(r.stage) == n {
		return
	}
	for i := range r.k {
		r.k[i] = make(dynamo.State, n)
	}
	r.stage = make(dynamo.State, n)
}

func (r *RK4) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	r.ensure(n)

	offsets := [4]float64{0, 0.5, 0.5, 1}
	copy(r.k[0], sys.Derive(x, t))
	for s := 1; s < 4; s++ {
		h := offsets[s] * dt
		for i := 0; i < n; i++ {
			r.stage[i] = x[i] + h*r.k[s-1][i]
		}
		copy(r.k[s], sys.Derive(r.stage, t+h))
	}

	next := make(dynamo.State, n)
	dt6 := dt / 6
	for i := 0; i < n; i++ {
		next[i] = x[i] + dt6*(r.k[0][i]+2*r.k[1][i]+2*r.k[2][i]+r.k[3][i])
	}
	return next
}
