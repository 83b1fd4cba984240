package demo

import (
	"context"

	"github.com/san-kum/physdemo/internal/figure"
	"github.com/san-kum/physdemo/internal/numeric"
	"github.com/san-kum/physdemo/internal/physics"
)

type HeatCapacity struct{}

func (*HeatCapacity) Name() string { return "heat-capacity" }
func (*HeatCapacity) Summary() string {
	return "Dulong-Petit, Einstein and Debye molar heat capacities of a solid"
}

func (*HeatCapacity) Params() []Param {
	return []Param{
		{Name: "n", Label: "Debye trapezoids", Min: 10, Max: 5000, Default: 1000, Step: 10, Integer: true},
		{Name: "xmax", Label: "max T/Theta", Min: 0.5, Max: 10, Default: 4, Step: 0.1},
	}
}

func (d *HeatCapacity) Compute(ctx context.Context, v Values) (*figure.Figure, error) {
	xs := numeric.Linspace(1e-5, v["xmax"], 1000)
	curves, err := physics.HeatCapacity(ctx, xs, v.Int("n"))
	if err != nil {
		return nil, err
	}

	fig := figure.New("Heat capacity of solids")
	p := fig.AddPanel("", "T/Theta", "C/3R")
	p.Line("Dulong-Petit", xs, curves.DulongPetit)
	p.Line("Einstein", xs, curves.Einstein)
	p.Line("Debye", xs, curves.Debye)
	p.SetYRange(0, 1.1)
	return fig, nil
}
