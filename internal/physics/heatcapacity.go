package physics

import (
	"context"
	"math"

	"github.com/san-kum/physdemo/internal/dynamo"
	"github.com/san-kum/physdemo/internal/numeric"
)

// Molar heat capacities of a solid divided by 3R, as functions of the
// reduced temperature x = T/Theta.

func DulongPetit(x float64) float64 { return 1 }

// Einstein is ((u/sinh u))^2 with u = Theta_E/(2T).
func Einstein(x float64) float64 {
	if x <= 0 {
		return 0
	}
	u := 1 / (2 * x)
	if u > 350 {
		return 4 * u * u * math.Exp(-2*u)
	}
	r := u / math.Sinh(u)
	return r * r
}

const (
	debyeLower = 1e-9
	// beyond this the integrand t^4 e^-t is below 1e-15
	debyeCutoff = 50.0
)

// debyeIntegrand is t^4 e^t/(e^t - 1)^2 written without overflow.
func debyeIntegrand(t float64) float64 {
	em := -math.Expm1(-t)
	return t * t * t * t * math.Exp(-t) / (em * em)
}

// Debye is 3 x^3 times the integral of t^4 e^t/(e^t-1)^2 over [0, 1/x],
// evaluated with n trapezoids.
func Debye(x float64, n int) float64 {
	if x <= 0 {
		return 0
	}
	upper := math.Min(1/x, debyeCutoff)
	if upper <= debyeLower {
		return 1
	}
	return 3 * x * x * x * numeric.TrapzFunc(debyeIntegrand, debyeLower, upper, n)
}

type HeatCapacityCurves struct {
	DulongPetit, Einstein, Debye []float64
}

// HeatCapacity evaluates the three models over xs. Debye points are
// computed in parallel.
func HeatCapacity(ctx context.Context, xs []float64, n int) (*HeatCapacityCurves, error) {
	if n < 1 {
		return nil, dynamo.OutOfBounds("n", float64(n), "need at least one trapezoid")
	}
	out := &HeatCapacityCurves{
		DulongPetit: numeric.Eval(xs, DulongPetit),
		Einstein:    numeric.Eval(xs, Einstein),
		Debye:       make([]float64, len(xs)),
	}
	err := dynamo.ParallelFor(ctx, len(xs), 64, func(ctx context.Context, start, end int) error {
		for i := start; i < end; i++ {
			out.Debye[i] = Debye(xs[i], n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
