package demo

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/physdemo/internal/figure"
	"github.com/san-kum/physdemo/internal/numeric"
	"github.com/san-kum/physdemo/internal/physics"
)

// FabryPerot compares the Airy function of several mirror reflectivities.
type FabryPerot struct{}

func (*FabryPerot) Name() string    { return "fabry-perot" }
func (*FabryPerot) Summary() string { return "Transmission of a Fabry-Perot cavity (Airy function)" }

func (*FabryPerot) Params() []Param {
	return []Param{
		{Name: "R", Label: "reflectivity", Min: 0, Max: 0.999, Default: 0.5, Step: 0.01},
	}
}

var fabryPerotReference = []float64{0.8, 0.99}

func (d *FabryPerot) Compute(ctx context.Context, v Values) (*figure.Figure, error) {
	phis := numeric.Linspace(0, 10*math.Pi, 10000)

	fig := figure.New("Fabry-Perot interferometer")
	p := fig.AddPanel("", "phase difference (rad)", "I/I0")
	for _, R := range append([]float64{v["R"]}, fabryPerotReference...) {
		ys, err := physics.FabryPerot(phis, R)
		if err != nil {
			return nil, err
		}
		p.Line(fmt.Sprintf("R = %.3g", R), phis, ys)
		finesse, _ := physics.Finesse(R)
		fig.Notef("R = %.3g: finesse %.3g", R, finesse)
	}
	p.SetYRange(0, 1.05)
	return fig, ctx.Err()
}

// Grating is the Fraunhofer pattern of N identical slits.
type Grating struct{}

func (*Grating) Name() string    { return "grating" }
func (*Grating) Summary() string { return "N-slit Fraunhofer diffraction pattern" }

func (*Grating) Params() []Param {
	def := physics.DefaultGrating()
	return []Param{
		{Name: "N", Label: "slits", Min: 1, Max: 20, Default: float64(def.Slits), Step: 1, Integer: true},
		{Name: "a", Label: "pitch", Unit: "µm", Min: 1, Max: 100, Default: def.Pitch * 1e6, Step: 1},
		{Name: "d", Label: "slit width", Unit: "µm", Min: 0.1, Max: 10, Default: def.Width * 1e6, Step: 0.1},
	}
}

func (d *Grating) Compute(ctx context.Context, v Values) (*figure.Figure, error) {
	g := physics.DefaultGrating()
	g.Slits = v.Int("N")
	g.Pitch = v["a"] * 1e-6
	g.Width = v["d"] * 1e-6
	if err := g.Validate(); err != nil {
		return nil, err
	}

	xs := numeric.Arange(-0.4, 0.4, 1e-4)
	fig := figure.New("Diffraction by a grating")
	p := fig.AddPanel(fmt.Sprintf("N = %d, a = %.3g µm, d = %.3g µm", g.Slits, v["a"], v["d"]), "X (m)", "I/I0")
	p.Line("intensity", xs, numeric.Eval(xs, g.Intensity))
	env := p.Line("envelope", xs, numeric.Eval(xs, g.Envelope))
	env.Color, env.Dashed = figure.Gray, true
	p.SetYRange(0, 1.05)
	fig.Notef("fringe spacing lambda f/a = %.3g mm", g.Wavelength*g.Focal/g.Pitch*1e3)
	return fig, ctx.Err()
}
