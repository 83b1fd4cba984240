package analysis

import (
	"math"

	"github.com/san-kum/physdemo/internal/dynamo"
)

// PhasePortrait extracts two state components of a run as an (x, y) path.
func PhasePortrait(res *dynamo.Result, xIdx, yIdx int) (xs, ys []float64) {
	if res == nil || len(res.States) == 0 {
		return nil, nil
	}
	if xIdx >= len(res.States[0]) || yIdx >= len(res.States[0]) {
		return nil, nil
	}
	return res.Component(xIdx), res.Component(yIdx)
}

// StroboscopicSection samples a run once per period, interpolating linearly
// between recorded steps. This is the Poincaré section of a periodically
// driven system. Samples before skip are discarded as transient.
func StroboscopicSection(res *dynamo.Result, xIdx, yIdx int, period, skip float64) (xs, ys []float64) {
	if res == nil || period <= 0 || len(res.Times) < 2 {
		return nil, nil
	}
	next := math.Ceil(skip/period) * period
	for i := 1; i < len(res.Times); i++ {
		t0, t1 := res.Times[i-1], res.Times[i]
		for next <= t1 {
			if next >= t0 {
				frac := 0.0
				if t1 > t0 {
					frac = (next - t0) / (t1 - t0)
				}
				a, b := res.States[i-1], res.States[i]
				xs = append(xs, a[xIdx]+frac*(b[xIdx]-a[xIdx]))
				ys = append(ys, a[yIdx]+frac*(b[yIdx]-a[yIdx]))
			}
			next += period
		}
	}
	return xs, ys
}

// WrapAngle maps an angle into (-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
