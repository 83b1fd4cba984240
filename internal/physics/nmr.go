package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/physdemo/internal/dynamo"
)

// NMR is the classical picture of a spin in a static field B0 along z and a
// field B1 rotating in the xy plane at angular frequency Omega.
type NMR struct {
	Gamma float64 // rad/(s T)
	B0    float64 // T
	B1    float64 // T
}

func DefaultNMR() NMR {
	return NMR{Gamma: ProtonGyromagnetic, B0: 1, B1: 0.1}
}

// LarmorFrequency is gamma B0/(2 pi) in Hz.
func (n NMR) LarmorFrequency() float64 {
	return n.Gamma * n.B0 / (2 * math.Pi)
}

// EffectiveField is the field seen in the frame rotating with B1.
func (n NMR) EffectiveField(omega float64) r3.Vec {
	return r3.Vec{X: n.B1, Y: 0, Z: n.B0 - omega/n.Gamma}
}

// TiltAngle is the angle of the effective field above the xy plane.
func (n NMR) TiltAngle(omega float64) float64 {
	return math.Atan2(n.B0-omega/n.Gamma, n.B1)
}

// MinMz is the lowest vertical magnetization reached when driving at
// omega, -cos(2 tilt). It is -1 at resonance.
func (n NMR) MinMz(omega float64) float64 {
	return -math.Cos(2 * n.TiltAngle(omega))
}

// Magnetization returns the unit magnetization at time t in the lab frame
// for a spin starting along z: precession about Beff by gamma |Beff| t in
// the rotating frame, then the frame rotation omega t about z. It is the
// exact solution of [Bloch].
func (n NMR) Magnetization(omega, t float64) r3.Vec {
	beff := n.EffectiveField(omega)
	ez := r3.Vec{Z: 1}
	m := ez
	if norm := r3.Norm(beff); norm > 0 {
		m = r3.NewRotation(-n.Gamma*norm*t, beff).Rotate(ez)
	}
	return r3.NewRotation(-omega*t, ez).Rotate(m)
}

// Trajectory samples Magnetization over ts.
func (n NMR) Trajectory(omega float64, ts []float64) ([]r3.Vec, error) {
	if n.Gamma <= 0 || n.B1 <= 0 {
		return nil, dynamo.OutOfBounds("B1", n.B1, "gamma and B1 must be positive")
	}
	out := make([]r3.Vec, len(ts))
	for i, t := range ts {
		out[i] = n.Magnetization(omega, t)
	}
	return out, nil
}

// LabField is the applied field at time t: B1 rotating clockwise in the xy
// plane plus B0 along z.
func (n NMR) LabField(omega, t float64) r3.Vec {
	sin, cos := math.Sincos(omega * t)
	return r3.Vec{X: n.B1 * cos, Y: -n.B1 * sin, Z: n.B0}
}

// Bloch integrates dM/dt = gamma M x B(t) directly. State is [Mx, My, Mz].
type Bloch struct {
	NMR
	Omega float64
}

func (b Bloch) StateDim() int { return 3 }

func (b Bloch) Derive(s dynamo.State, t float64) dynamo.State {
	m := r3.Vec{X: s[0], Y: s[1], Z: s[2]}
	d := r3.Scale(b.Gamma, r3.Cross(m, b.LabField(b.Omega, t)))
	return dynamo.State{d.X, d.Y, d.Z}
}

// Energy is |M|^2, conserved by the precession.
func (b Bloch) Energy(s dynamo.State) float64 {
	return s[0]*s[0] + s[1]*s[1] + s[2]*s[2]
}
