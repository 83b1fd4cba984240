package demo

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/physdemo/internal/analysis"
	"github.com/san-kum/physdemo/internal/dynamo"
	"github.com/san-kum/physdemo/internal/figure"
	"github.com/san-kum/physdemo/internal/integrators"
	"github.com/san-kum/physdemo/internal/numeric"
	"github.com/san-kum/physdemo/internal/physics"
)

const (
	oscillatorW0       = math.Pi
	oscillatorDuration = 10.0
	oscillatorDt       = 0.01
)

// DampedOscillator compares viscous and Coulomb friction.
type DampedOscillator struct{}

func (*DampedOscillator) Name() string { return "damped-oscillator" }
func (*DampedOscillator) Summary() string {
	return "Oscillator with fluid (viscous) and solid (Coulomb) friction"
}

func (*DampedOscillator) Params() []Param {
	return []Param{
		{Name: "Q", Label: "quality factor", Min: 0.1, Max: 20, Default: 5, Step: 0.1},
		{Name: "mu", Label: "solid friction coefficient", Min: 0, Max: 2, Default: 0.65, Step: 0.05},
		{Name: "x0", Label: "initial position", Min: 1, Max: 10, Default: 8, Step: 0.5},
	}
}

func runOscillator(ctx context.Context, sys dynamo.System, x0 float64) (*dynamo.Result, error) {
	cfg := dynamo.Config{Dt: oscillatorDt, Duration: oscillatorDuration, ValidateState: true}
	return dynamo.New(sys, integrators.NewRK4()).Run(ctx, dynamo.State{x0, 0}, cfg)
}

func (d *DampedOscillator) Compute(ctx context.Context, v Values) (*figure.Figure, error) {
	x0 := v["x0"]
	fig := figure.New("Damped oscillators")
	fluid := fig.AddPanel("fluid friction", "t (s)", "x")
	solid := fig.AddPanel("solid friction", "t (s)", "x")
	phase := fig.AddPanel("phase portrait", "x", "v")

	for i, Q := range []float64{v["Q"], 0.3} {
		f := physics.FluidOscillator{W0: oscillatorW0, Q: Q}
		res, err := runOscillator(ctx, f, x0)
		if err != nil {
			return nil, fmt.Errorf("fluid Q=%g: %w", Q, err)
		}
		name := fmt.Sprintf("Q = %.3g", Q)
		fluid.Line(name, res.Times, res.Component(0)).Color = figure.Palette(i)
		if i == 0 {
			up := numeric.Eval(res.Times, func(t float64) float64 { return f.Envelope(x0, t) })
			down := numeric.Eval(up, func(y float64) float64 { return -y })
			for _, env := range []*figure.Series{fluid.Line("envelope", res.Times, up), fluid.Line("envelope", res.Times, down)} {
				env.Color, env.Dashed = figure.Gray, true
			}
			px, py := analysis.PhasePortrait(res, 0, 1)
			phase.Line("fluid "+name, px, py)
		}
	}

	sf, err := physics.NewSolidFrictionOscillator(oscillatorW0, v["mu"])
	if err != nil {
		return nil, err
	}
	for i, start := range []float64{x0, 3} {
		res, err := runOscillator(ctx, sf, start)
		if err != nil {
			return nil, fmt.Errorf("solid x0=%g: %w", start, err)
		}
		name := fmt.Sprintf("x0 = %.3g", start)
		solid.Line(name, res.Times, res.Component(0)).Color = figure.Palette(i + 2)
		if i == 0 {
			stop := math.Min(sf.StopTime(start), oscillatorDuration)
			env := solid.Line("linear envelope", []float64{0, stop}, []float64{start, sf.Envelope(start, stop)})
			env.Color, env.Dashed = figure.Gray, true
			px, py := analysis.PhasePortrait(res, 0, 1)
			phase.Line("solid "+name, px, py)
		}
	}
	a := sf.Threshold()
	solid.Mark(a, "dead zone", false, figure.Red)
	solid.Mark(-a, "", false, figure.Red)

	fig.Notef("dead zone half width a = g mu / w0^2 = %.3g", a)
	fig.Notef("solid friction stops after %.3g s", sf.StopTime(x0))
	return fig, nil
}
