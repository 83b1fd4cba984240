package demo

import (
	"context"

	"github.com/san-kum/physdemo/internal/figure"
	"github.com/san-kum/physdemo/internal/numeric"
	"github.com/san-kum/physdemo/internal/physics"
)

type Lorentz struct{}

func (*Lorentz) Name() string    { return "lorentz" }
func (*Lorentz) Summary() string { return "Lorentz factor against v/c" }

func (*Lorentz) Params() []Param {
	return []Param{
		{Name: "beta", Label: "marked speed", Unit: "c", Min: 0, Max: 0.99, Default: 0.42, Step: 0.01},
	}
}

func (d *Lorentz) Compute(ctx context.Context, v Values) (*figure.Figure, error) {
	betas := numeric.Linspace(0, 0.99, 100)
	gammas := make([]float64, len(betas))
	for i, b := range betas {
		g, err := physics.LorentzFactor(b)
		if err != nil {
			return nil, err
		}
		gammas[i] = g
	}
	marked, err := physics.LorentzFactor(v["beta"])
	if err != nil {
		return nil, err
	}

	fig := figure.New("Lorentz factor")
	p := fig.AddPanel("gamma = 1/sqrt(1 - v^2/c^2)", "v/c", "gamma")
	p.Line("gamma", betas, gammas)
	ref := p.Line("gamma = 1.10", []float64{0, 0.99}, []float64{1.10, 1.10})
	ref.Color, ref.Dashed = figure.Gray, true
	p.Mark(v["beta"], "v", true, figure.Red)
	fig.Notef("gamma(%.2f) = %.4f", v["beta"], marked)
	return fig, ctx.Err()
}
