package physics

import (
	"fmt"
	"math"
	"math/rand"
)

// SquareSeries is the n-term Fourier sum of a square wave of amplitude a0
// and period t0: (4 a0/pi) sum sin((2k+1) 2 pi t/t0)/(2k+1).
func SquareSeries(t, t0, a0 float64, n int) float64 {
	sum := 0.0
	for k := 0; k < n; k++ {
		m := float64(2*k + 1)
		sum += math.Sin(m*2*math.Pi*t/t0) / m
	}
	return 4 * a0 / math.Pi * sum
}

// SquareWave is the limit of SquareSeries.
func SquareWave(t, t0, a0 float64) float64 {
	s := math.Sin(2 * math.Pi * t / t0)
	switch {
	case s > 0:
		return a0
	case s < 0:
		return -a0
	}
	return 0
}

// TriangleSeries is 1/2 - (4/pi^2) sum cos((2k+1) 2 pi t/t0)/(2k+1)^2, a
// triangle wave between 0 and 1.
func TriangleSeries(t, t0 float64, n int) float64 {
	sum := 0.0
	for k := 0; k < n; k++ {
		m := float64(2*k + 1)
		sum += math.Cos(m*2*math.Pi*t/t0) / (m * m)
	}
	return 0.5 - 4/(math.Pi*math.Pi)*sum
}

// TriangleWave is the limit of TriangleSeries: 0 at t = 0, 1 at t0/2.
func TriangleWave(t, t0 float64) float64 {
	p := t/t0 - math.Floor(t/t0)
	return 1 - math.Abs(1-2*p)
}

// Signal names accepted by PeriodicSignal.
const (
	SignalTriangle = "triangle"
	SignalSawtooth = "sawtooth"
	SignalSquare   = "square"
	SignalNoise    = "noise"
)

func SignalNames() []string {
	return []string{SignalTriangle, SignalSawtooth, SignalSquare, SignalNoise}
}

// PeriodicSignal samples one period of a unit-period signal at n points
// t = k/n. Noise is uniform in [-1, 1) from the given seed.
func PeriodicSignal(name string, n int, seed int64) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("signal needs at least 2 samples, got %d", n)
	}
	out := make([]float64, n)
	var rng *rand.Rand
	if name == SignalNoise {
		rng = rand.New(rand.NewSource(seed))
	}
	for k := range out {
		t := float64(k) / float64(n)
		switch name {
		case SignalTriangle:
			out[k] = 2*TriangleWave(t, 1) - 1
		case SignalSawtooth:
			out[k] = 2*t - 1
		case SignalSquare:
			if t < 0.5 {
				out[k] = 1
			} else {
				out[k] = -1
			}
		case SignalNoise:
			out[k] = 2*rng.Float64() - 1
		default:
			return nil, fmt.Errorf("unknown signal: %s (available: %v)", name, SignalNames())
		}
	}
	return out, nil
}
