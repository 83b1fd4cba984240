package demo

import (
	"context"
	"math"

	"github.com/san-kum/physdemo/internal/figure"
	"github.com/san-kum/physdemo/internal/physics"
)

// Fresnel moves the screen from the near field to the Fraunhofer regime.
type Fresnel struct{}

func (*Fresnel) Name() string { return "fresnel" }
func (*Fresnel) Summary() string {
	return "Slit diffraction from Fresnel to Fraunhofer by Huygens-Fresnel integration"
}

func (*Fresnel) Params() []Param {
	return []Param{
		{Name: "p", Label: "log10(D/5 m)", Min: -2, Max: 1, Default: -1, Step: 0.05},
		{Name: "a", Label: "slit width", Unit: "mm", Min: 0.1, Max: 5, Default: 1, Step: 0.1},
	}
}

func (d *Fresnel) Compute(ctx context.Context, v Values) (*figure.Figure, error) {
	s := physics.DefaultFresnelSlit()
	s.Distance = 5 * math.Pow(10, v["p"])
	s.Width = v["a"] * 1e-3

	pattern, err := s.Pattern(ctx)
	if err != nil {
		return nil, err
	}

	fig := figure.New("From Fresnel to Fraunhofer")
	p := fig.AddPanel("illumination", "X (m)", "I/Imax")
	p.Line("intensity", pattern.X, pattern.Intensity)
	p.SetYRange(0, 1.05)

	screen := fig.AddPanel("screen", "X (m)", "")
	screen.Image = &figure.Image{X: pattern.X, Shade: pattern.Shade}

	fig.Notef("D = %.3g m", s.Distance)
	fig.Notef("Fresnel number F = %.3g", s.FresnelNumber())
	return fig, nil
}
