package physics

import (
	"math"

	"github.com/san-kum/physdemo/internal/dynamo"
)

// FluidOscillator is a linear oscillator with viscous damping of quality
// factor Q. State is [x, v].
type FluidOscillator struct {
	W0 float64
	Q  float64
}

func (f FluidOscillator) StateDim() int { return 2 }

func (f FluidOscillator) Derive(s dynamo.State, _ float64) dynamo.State {
	return dynamo.State{s[1], -f.W0/f.Q*s[1] - f.W0*f.W0*s[0]}
}

// Envelope is the exponential decay x0 exp(-w0 t / 2Q).
func (f FluidOscillator) Envelope(x0, t float64) float64 {
	return x0 * math.Exp(-f.W0*t/(2*f.Q))
}

// SolidFrictionOscillator is a linear oscillator with Coulomb friction of
// coefficient Mu. Once the mass stops inside the dead zone |x| <= Threshold
// it stays there.
type SolidFrictionOscillator struct {
	W0      float64
	Mu      float64
	Gravity float64
}

func NewSolidFrictionOscillator(w0, mu float64) (*SolidFrictionOscillator, error) {
	if w0 <= 0 {
		return nil, dynamo.OutOfBounds("w0", w0, "must be positive")
	}
	if mu < 0 {
		return nil, dynamo.OutOfBounds("mu", mu, "must be non-negative")
	}
	return &SolidFrictionOscillator{W0: w0, Mu: mu, Gravity: StandardGrav}, nil
}

// Threshold is the half width of the dead zone, mu g / w0^2.
func (s *SolidFrictionOscillator) Threshold() float64 {
	return s.Gravity * s.Mu / (s.W0 * s.W0)
}

func (s *SolidFrictionOscillator) StateDim() int { return 2 }

func (s *SolidFrictionOscillator) Derive(x dynamo.State, _ float64) dynamo.State {
	pos, vel := x[0], x[1]
	if vel == 0 && math.Abs(pos) <= s.Threshold() {
		return dynamo.State{0, 0}
	}
	return dynamo.State{vel, -s.W0*s.W0*pos - sign(vel)*s.Mu*s.Gravity}
}

// Constrain sticks the mass when the velocity reverses inside the dead zone.
func (s *SolidFrictionOscillator) Constrain(x, prev dynamo.State, _ float64) dynamo.State {
	if math.Abs(x[0]) <= s.Threshold() && x[1]*prev[1] <= 0 {
		x[1] = 0
	}
	return x
}

// Envelope is the linear decay of the amplitude, 4 Threshold per period,
// floored at zero.
func (s *SolidFrictionOscillator) Envelope(x0, t float64) float64 {
	return math.Max(0, x0-4*s.Threshold()*s.W0*t/(2*math.Pi))
}

// StopTime is when Envelope reaches zero.
func (s *SolidFrictionOscillator) StopTime(x0 float64) float64 {
	a := s.Threshold()
	if a == 0 {
		return math.Inf(1)
	}
	return x0 * 2 * math.Pi / (4 * a * s.W0)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
