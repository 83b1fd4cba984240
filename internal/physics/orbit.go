package physics

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/physdemo/internal/dynamo"
	"github.com/san-kum/physdemo/internal/integrators"
	"github.com/san-kum/physdemo/internal/numeric"
)

// Binet is d²u/dθ² + u = GM/C^2 with u = 1/r, integrated in the polar angle.
// State is [u, du/dtheta].
type Binet struct {
	GM   float64
	C    float64
	RMax float64
}

func (b Binet) StateDim() int { return 2 }

func (b Binet) Derive(s dynamo.State, _ float64) dynamo.State {
	return dynamo.State{s[1], b.GM/(b.C*b.C) - s[0]}
}

// Done ends an unbound orbit once it escapes past RMax.
func (b Binet) Done(s dynamo.State, _ float64) bool {
	return s[0] <= 0 || 1/s[0] > b.RMax
}

// Kepler describes test-body orbits around the Sun with a fixed areal
// constant C = r^2 dtheta/dt, per unit mass.
type Kepler struct {
	GM    float64
	C     float64
	RFond float64 // radius of the circular orbit shown for reference
	RMin  float64
	RMax  float64
}

// DefaultKepler uses the Earth's orbit as the circular reference.
func DefaultKepler() Kepler {
	const au = 1.5e11
	return Kepler{
		GM:    Gravitational * SolarMass,
		C:     au * 6.28 * au / (365.25 * 86400),
		RFond: au,
		RMin:  0.65e11,
		RMax:  1.5e12,
	}
}

// DefaultOrbitEnergies spans bound ellipses, a parabola and a hyperbola.
var DefaultOrbitEnergies = []float64{-4.39e8, -3.3e8, -2.2e8, -1.1e8, 0, 1.1e8}

// EffectivePotential is C^2/2r^2 - GM/r.
func (k Kepler) EffectivePotential(r float64) float64 {
	return k.C*k.C/(2*r*r) - k.GM/r
}

// MinEnergy is the bottom of the effective potential, the circular orbit.
func (k Kepler) MinEnergy() float64 {
	return -k.GM * k.GM / (2 * k.C * k.C)
}

// CircularRadius is C^2/GM, where the effective potential is lowest.
func (k Kepler) CircularRadius() float64 {
	return k.C * k.C / k.GM
}

// Perihelion solves EffectivePotential(r) = e on [rc/100, rc], rc being the
// circular radius.
func (k Kepler) Perihelion(e float64) (float64, error) {
	emin := k.MinEnergy()
	if e < emin {
		return 0, dynamo.OutOfBounds("E", e, fmt.Sprintf("below the circular orbit energy %.4g", emin))
	}
	rc := k.CircularRadius()
	if e-emin <= 1e-12*math.Abs(emin) {
		return rc, nil
	}
	return numeric.Bisect(func(r float64) float64 {
		return k.EffectivePotential(r) - e
	}, rc/100, rc, 1e-12)
}

type OrbitTrack struct {
	Energy     float64
	Perihelion float64
	Bound      bool
	X, Y       []float64
}

// Trajectory integrates the orbit of energy e from perihelion. Unbound
// orbits are mirrored about the perihelion axis.
func (k Kepler) Trajectory(ctx context.Context, e float64, steps int) (*OrbitTrack, error) {
	rp, err := k.Perihelion(e)
	if err != nil {
		return nil, fmt.Errorf("perihelion for E=%g: %w", e, err)
	}
	sys := Binet{GM: k.GM, C: k.C, RMax: 2 * k.RMax}
	cfg := dynamo.DefaultConfig()
	cfg.Duration = 2 * math.Pi
	cfg.Dt = cfg.Duration / float64(steps)

	res, err := dynamo.New(sys, integrators.NewRK4()).Run(ctx, dynamo.State{1 / rp, 0}, cfg)
	if err != nil {
		return nil, fmt.Errorf("orbit E=%g: %w", e, err)
	}

	track := &OrbitTrack{Energy: e, Perihelion: rp, Bound: !res.Stopped}
	n := len(res.States)
	if res.Stopped {
		n-- // last sample is past the escape radius or u <= 0
	}
	for i := 0; i < n; i++ {
		r := 1 / res.States[i][0]
		theta := res.Times[i]
		track.X = append(track.X, r*math.Cos(theta))
		track.Y = append(track.Y, r*math.Sin(theta))
	}
	if !track.Bound {
		mx := make([]float64, 0, 2*n)
		my := make([]float64, 0, 2*n)
		for i := n - 1; i > 0; i-- {
			mx = append(mx, track.X[i])
			my = append(my, -track.Y[i])
		}
		track.X = append(mx, track.X...)
		track.Y = append(my, track.Y...)
	}
	return track, nil
}

// Trajectories runs one orbit per energy concurrently.
func (k Kepler) Trajectories(ctx context.Context, energies []float64, steps int) ([]*OrbitTrack, error) {
	out := make([]*OrbitTrack, len(energies))
	err := dynamo.ParallelFor(ctx, len(energies), 1, func(ctx context.Context, start, end int) error {
		for i := start; i < end; i++ {
			tr, err := k.Trajectory(ctx, energies[i], steps)
			if err != nil {
				return err
			}
			out[i] = tr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
