package analysis

import (
	"math"

	"github.com/san-kum/physdemo/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent with Benettin's
// method: a companion trajectory starts perturbation away from x0 and is
// pulled back to that distance after every step. A positive value indicates
// chaos.
func LyapunovExponent(sys dynamo.System, integ dynamo.Integrator, x0 dynamo.State, dt, duration, perturbation float64) float64 {
	if len(x0) == 0 || dt <= 0 || perturbation <= 0 {
		return 0
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += perturbation

	sumLog := 0.0
	t := 0.0
	steps := int(duration / dt)
	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, t, dt)
		xp = integ.Step(sys, xp, t, dt)
		t += dt

		sep := xp.Sub(x).Norm()
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			continue
		}
		sumLog += math.Log(sep / perturbation)

		scale := perturbation / sep
		for j := range xp {
			xp[j] = x[j] + (xp[j]-x[j])*scale
		}
	}

	if t == 0 {
		return 0
	}
	return sumLog / t
}
