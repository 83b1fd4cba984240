package numeric

import (
	"fmt"

	"gonum.org/v1/gonum/integrate"

	"github.com/san-kum/physdemo/internal/dynamo"
)

// Trapz integrates sampled data with the trapezoidal rule. x must be sorted.
func Trapz(x, f []float64) (float64, error) {
	if len(x) != len(f) {
		return 0, fmt.Errorf("trapz: %d abscissae for %d values: %w", len(x), len(f), dynamo.ErrDimensionMismatch)
	}
	if len(x) < 2 {
		return 0, nil
	}
	return integrate.Trapezoidal(x, f), nil
}

// TrapzFunc integrates f over [a, b] with n trapezoids.
func TrapzFunc(f func(float64) float64, a, b float64, n int) float64 {
	if n < 1 || a == b {
		return 0
	}
	if b < a {
		return -TrapzFunc(f, b, a, n)
	}
	x := Linspace(a, b, n+1)
	return integrate.Trapezoidal(x, Eval(x, f))
}

// TrapzComplex integrates a complex-valued sampled function; real and
// imaginary parts are integrated separately.
func TrapzComplex(x []float64, f []complex128) complex128 {
	if len(x) < 2 || len(x) != len(f) {
		return 0
	}
	re := make([]float64, len(f))
	im := make([]float64, len(f))
	for i, v := range f {
		re[i], im[i] = real(v), imag(v)
	}
	return complex(integrate.Trapezoidal(x, re), integrate.Trapezoidal(x, im))
}
