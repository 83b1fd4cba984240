package demo

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/physdemo/internal/figure"
	"github.com/san-kum/physdemo/internal/numeric"
	"github.com/san-kum/physdemo/internal/physics"
)

// Orbits shows Kepler trajectories for a ladder of energies next to the
// effective potential.
type Orbits struct{}

func (*Orbits) Name() string    { return "orbits" }
func (*Orbits) Summary() string { return "Effective potential and Kepler trajectories" }

func (*Orbits) Params() []Param {
	return []Param{
		{Name: "E", Label: "extra orbit energy", Unit: "1e8 J", Min: -4.39, Max: 2, Default: 0.5, Step: 0.05},
		{Name: "steps", Label: "integration steps per turn", Min: 200, Max: 5000, Default: 1000, Step: 100, Integer: true},
	}
}

func (d *Orbits) Compute(ctx context.Context, v Values) (*figure.Figure, error) {
	k := physics.DefaultKepler()
	energies := append(append([]float64(nil), physics.DefaultOrbitEnergies...), v["E"]*1e8)
	tracks, err := k.Trajectories(ctx, energies, v.Int("steps"))
	if err != nil {
		return nil, err
	}

	fig := figure.New("Effective potential and trajectories")
	pot := fig.AddPanel("effective potential", "r (m)", "energy (J)")
	rs := numeric.Linspace(k.RMin, k.RMax, 200)
	u := pot.Line("Ueff", rs, numeric.Eval(rs, k.EffectivePotential))
	u.Color = figure.Black
	pot.SetXRange(0, k.RMax)

	orb := fig.AddPanel("trajectories", "x (m)", "y (m)")
	orb.Equal = true
	orb.SetXRange(-1.5e12, 0.5e12)
	orb.SetYRange(-1e12, 1e12)
	orb.Line("sun", []float64{0}, []float64{0}).Color = figure.Orange

	for i, tr := range tracks {
		name := fmt.Sprintf("E = %.3g J", tr.Energy)
		if i == len(tracks)-1 {
			name = "extra: " + name
		}
		c := figure.Palette(i)

		far := k.RMax
		if tr.Bound {
			far = 0
			for j := range tr.X {
				far = math.Max(far, math.Hypot(tr.X[j], tr.Y[j]))
			}
		}
		level := pot.Line(name, []float64{tr.Perihelion, far}, []float64{tr.Energy, tr.Energy})
		level.Color = c

		path := orb.Line(name, tr.X, tr.Y)
		path.Color = c
	}

	fig.Notef("circular orbit energy %.4g J at r = %.4g m", k.MinEnergy(), k.C*k.C/k.GM)
	return fig, nil
}
