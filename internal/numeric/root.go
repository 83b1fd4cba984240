package numeric

import (
	"fmt"
	"math"

	"github.com/san-kum/physdemo/internal/dynamo"
)

// Bisect finds a root of f in [a, b]. f(a) and f(b) must have opposite signs
// (or one of them be zero). It stops once the bracket is narrower than
// tol*max(1, |mid|) or after 200 halvings.
func Bisect(f func(float64) float64, a, b, tol float64) (float64, error) {
	if a > b {
		a, b = b, a
	}
	fa, fb := f(a), f(b)
	switch {
	case fa == 0:
		return a, nil
	case fb == 0:
		return b, nil
	case math.IsNaN(fa) || math.IsNaN(fb):
		return 0, fmt.Errorf("bisect on [%g, %g]: NaN endpoint: %w", a, b, dynamo.ErrInvalidState)
	case math.Signbit(fa) == math.Signbit(fb):
		return 0, fmt.Errorf("bisect on [%g, %g]: f=%g, %g: %w", a, b, fa, fb, dynamo.ErrNoBracket)
	}

	for i := 0; i < 200; i++ {
		mid := 0.5 * (a + b)
		fm := f(mid)
		if fm == 0 || (b-a) <= tol*math.Max(1, math.Abs(mid)) {
			return mid, nil
		}
		if math.Signbit(fm) == math.Signbit(fa) {
			a, fa = mid, fm
		} else {
			b = mid
		}
	}
	return 0.5 * (a + b), nil
}
