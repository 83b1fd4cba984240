package physics

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/dsp/window"

	"github.com/san-kum/physdemo/internal/dynamo"
)

// Dispersion relates wave number to angular frequency in reduced units
// (c = m = hbar = 1).
type Dispersion interface {
	K(w float64) (float64, error)
	GroupVelocity(w float64) float64
}

type Vacuum struct{}

func (Vacuum) K(w float64) (float64, error)    { return w, nil }
func (Vacuum) GroupVelocity(w float64) float64 { return 1 }

// Cutoff is a plasma-like medium, k = sqrt(w^2 - wc^2).
type Cutoff struct {
	Wc float64
}

func (c Cutoff) K(w float64) (float64, error) {
	if w <= c.Wc {
		return 0, fmt.Errorf("evanescent below cutoff: %w", dynamo.OutOfBounds("w", w, fmt.Sprintf("must exceed wc=%g", c.Wc)))
	}
	return math.Sqrt(w*w - c.Wc*c.Wc), nil
}

func (c Cutoff) GroupVelocity(w float64) float64 {
	return math.Sqrt(1 - c.Wc*c.Wc/(w*w))
}

// Optical is a transparent medium with normal dispersion, k = w(1 + B w^2).
type Optical struct {
	B float64
}

func (o Optical) K(w float64) (float64, error) { return w * (1 + o.B*w*w), nil }
func (o Optical) GroupVelocity(w float64) float64 {
	return 1 / (1 + 3*o.B*w*w)
}

// DeBroglie is a free non-relativistic particle, k = sqrt(w).
type DeBroglie struct{}

func (DeBroglie) K(w float64) (float64, error) {
	if w < 0 {
		return 0, dynamo.OutOfBounds("w", w, "must be non-negative")
	}
	return math.Sqrt(w), nil
}
func (DeBroglie) GroupVelocity(w float64) float64 { return 2 * math.Sqrt(w) }

var dispersionNames = []string{"vacuum", "cutoff", "optical", "debroglie"}

func DispersionNames() []string { return dispersionNames }

// NewDispersion builds a relation by name. cutoffHz is the cutoff
// frequency (Hz) for "cutoff", coeff the B coefficient for "optical".
func NewDispersion(name string, cutoffHz, coeff float64) (Dispersion, error) {
	switch name {
	case "vacuum":
		return Vacuum{}, nil
	case "cutoff":
		return Cutoff{Wc: 2 * math.Pi * cutoffHz}, nil
	case "optical":
		return Optical{B: coeff}, nil
	case "debroglie":
		return DeBroglie{}, nil
	}
	names := append([]string(nil), dispersionNames...)
	sort.Strings(names)
	return nil, fmt.Errorf("unknown dispersion: %s (available: %v)", name, names)
}

// WavePacket is a superposition of 2P+1 harmonics f-P..f+P weighted by a
// Hamming window. Wave numbers are scaled so that the central component
// has unit phase velocity.
type WavePacket struct {
	Freqs      []float64
	Amps       []float64
	Scale      float64 // a = w0/k(w0)
	GroupSpeed float64 // in scaled units
	waveNums   []float64
}

func NewWavePacket(d Dispersion, f float64, P int) (*WavePacket, error) {
	if P < 0 {
		return nil, dynamo.OutOfBounds("P", float64(P), "must be non-negative")
	}
	if f-float64(P) <= 0 {
		return nil, dynamo.OutOfBounds("f", f, fmt.Sprintf("lowest component f-P must be positive (P=%d)", P))
	}
	w0 := 2 * math.Pi * f
	k0, err := d.K(w0)
	if err != nil {
		return nil, err
	}
	if k0 == 0 {
		return nil, dynamo.OutOfBounds("f", f, "zero central wave number")
	}

	m := 2*P + 1
	wp := &WavePacket{
		Freqs:    make([]float64, m),
		Amps:     make([]float64, m),
		Scale:    w0 / k0,
		waveNums: make([]float64, m),
	}
	wp.GroupSpeed = d.GroupVelocity(w0) / wp.Scale

	for i := range wp.Amps {
		wp.Amps[i] = 1
	}
	if m > 1 {
		window.Hamming(wp.Amps)
	}
	for i := 0; i < m; i++ {
		wp.Freqs[i] = f - float64(P) + float64(i)
		k, err := d.K(2 * math.Pi * wp.Freqs[i])
		if err != nil {
			return nil, fmt.Errorf("component %d (%g Hz): %w", i, wp.Freqs[i], err)
		}
		wp.waveNums[i] = k * wp.Scale
	}
	return wp, nil
}

func (wp *WavePacket) phase(i int, x, t float64, tracking bool) float64 {
	w := 2 * math.Pi * wp.Freqs[i]
	k := wp.waveNums[i]
	drift := 0.0
	if tracking {
		drift = k * wp.GroupSpeed
	}
	return k*x + (drift-w)*t
}

// Field is the real wave sum(amp cos(phase)) at the sample points xs.
// With tracking the frame moves at the group velocity.
func (wp *WavePacket) Field(xs []float64, t float64, tracking bool) []float64 {
	out := make([]float64, len(xs))
	for j, x := range xs {
		sum := 0.0
		for i, a := range wp.Amps {
			sum += a * math.Cos(wp.phase(i, x, t, tracking))
		}
		out[j] = sum
	}
	return out
}

// Envelope is |sum(amp exp(i phase))|, the modulus of the complex wave.
func (wp *WavePacket) Envelope(xs []float64, t float64, tracking bool) []float64 {
	out := make([]float64, len(xs))
	for j, x := range xs {
		var sum complex128
		for i, a := range wp.Amps {
			sum += complex(a, 0) * cmplx.Exp(complex(0, wp.phase(i, x, t, tracking)))
		}
		out[j] = cmplx.Abs(sum)
	}
	return out
}
