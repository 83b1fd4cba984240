package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/physdemo/internal/dynamo"
)

// OscillatorKind selects the equation of motion of an Oscillator.
type OscillatorKind string

const (
	Harmonic       OscillatorKind = "harmonic"
	DampedHarmonic OscillatorKind = "damped"
	SimplePendulum OscillatorKind = "pendulum"
	DampedPendulum OscillatorKind = "damped-pendulum"
	VanDerPol      OscillatorKind = "vanderpol"
	DrivenPendulum OscillatorKind = "driven"
)

var oscillatorKinds = []OscillatorKind{Harmonic, DampedHarmonic, SimplePendulum, DampedPendulum, VanDerPol, DrivenPendulum}

// OscillatorKinds returns the kinds in display order.
func OscillatorKinds() []OscillatorKind { return oscillatorKinds }

// Oscillator is a one degree of freedom system in reduced units
// (natural angular frequency 1). State is [x, v].
type Oscillator struct {
	Kind      OscillatorKind
	Damping   float64
	Mu        float64 // Van der Pol gain
	Drive     float64
	DriveFreq float64
}

// NewOscillator returns an oscillator of the given kind with its usual
// coefficients.
func NewOscillator(kind OscillatorKind) (*Oscillator, error) {
	o := &Oscillator{Kind: kind}
	switch kind {
	case Harmonic, SimplePendulum:
	case DampedHarmonic, DampedPendulum:
		o.Damping = 0.1
	case VanDerPol:
		o.Mu = 0.2
	case DrivenPendulum:
		o.Damping = 0.5
		o.Drive = 1.5
		o.DriveFreq = 2.0 / 3.0
	default:
		names := make([]string, len(oscillatorKinds))
		for i, k := range oscillatorKinds {
			names[i] = string(k)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown oscillator: %s (available: %v)", kind, names)
	}
	return o, nil
}

func (o *Oscillator) StateDim() int { return 2 }

func (o *Oscillator) restoring(x float64) float64 {
	switch o.Kind {
	case SimplePendulum, DampedPendulum, DrivenPendulum:
		return -math.Sin(x)
	}
	return -x
}

func (o *Oscillator) Derive(s dynamo.State, t float64) dynamo.State {
	x, v := s[0], s[1]
	a := o.restoring(x) - o.Damping*v
	if o.Kind == VanDerPol {
		a += (o.Mu - x*x) * v
	}
	if o.Drive != 0 {
		a += o.Drive * math.Cos(o.DriveFreq*t)
	}
	return dynamo.State{v, a}
}

// Energy is the mechanical energy per unit inertia.
func (o *Oscillator) Energy(s dynamo.State) float64 {
	ke := 0.5 * s[1] * s[1]
	switch o.Kind {
	case SimplePendulum, DampedPendulum, DrivenPendulum:
		return ke + 1 - math.Cos(s[0])
	}
	return ke + 0.5*s[0]*s[0]
}

// Conservative reports whether Energy is a constant of motion.
func (o *Oscillator) Conservative() bool {
	return o.Damping == 0 && o.Drive == 0 && o.Kind != VanDerPol
}

// DrivePeriod is 2 pi / DriveFreq, or 0 for an undriven oscillator.
func (o *Oscillator) DrivePeriod() float64 {
	if o.Drive == 0 || o.DriveFreq == 0 {
		return 0
	}
	return 2 * math.Pi / o.DriveFreq
}
