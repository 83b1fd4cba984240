// Package numeric holds the sampling grids, quadrature and root finding used
// by the physical models.
package numeric

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Linspace returns n evenly spaced samples over [a, b], endpoints included.
func Linspace(a, b float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{a}
	}
	return floats.Span(make([]float64, n), a, b)
}

// Logspace returns n samples over [a, b] evenly spaced in log scale.
// a and b are the actual bounds, not exponents.
func Logspace(a, b float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{a}
	}
	return floats.LogSpan(make([]float64, n), a, b)
}

// Arange returns start, start+step, ... strictly below stop.
func Arange(start, stop, step float64) []float64 {
	if step <= 0 || stop <= start {
		return nil
	}
	n := int(math.Ceil((stop-start)/step - 1e-9))
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// Sinc is sin(x)/x with its limit 1 at the origin.
func Sinc(x float64) float64 {
	if math.Abs(x) < 1e-8 {
		return 1 - x*x/6
	}
	return math.Sin(x) / x
}

// Eval applies f to every sample.
func Eval(xs []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = f(x)
	}
	return out
}

// Normalize divides ys in place by its maximum absolute value.
func Normalize(ys []float64) []float64 {
	if len(ys) == 0 {
		return ys
	}
	m := math.Max(math.Abs(floats.Max(ys)), math.Abs(floats.Min(ys)))
	if m == 0 {
		return ys
	}
	for i := range ys {
		ys[i] /= m
	}
	return ys
}
