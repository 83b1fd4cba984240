package demo

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/physdemo/internal/dynamo"
	"github.com/san-kum/physdemo/internal/figure"
	"github.com/san-kum/physdemo/internal/integrators"
	"github.com/san-kum/physdemo/internal/numeric"
	"github.com/san-kum/physdemo/internal/physics"
)

const nmrSamples = 400

// NMR drives a proton spin with a rotating field and shows the magnetization
// and the resonance curve.
type NMR struct{}

func (*NMR) Name() string    { return "nmr" }
func (*NMR) Summary() string { return "Classical NMR: spin precession and resonance curve" }

func (*NMR) Params() []Param {
	def := physics.DefaultNMR()
	return []Param{
		{Name: "f", Label: "B1 frequency", Unit: "MHz", Min: 20, Max: 70, Default: math.Round(0.9*def.LarmorFrequency()/1e4) / 100, Step: 0.1},
		{Name: "B1", Label: "rotating field", Unit: "T", Min: 0.01, Max: 0.5, Default: def.B1, Step: 0.01},
		{Name: "window", Label: "observation", Unit: "ns", Min: 50, Max: 2000, Default: 500, Step: 10},
	}
}

func (d *NMR) Compute(ctx context.Context, v Values) (*figure.Figure, error) {
	n := physics.DefaultNMR()
	n.B1 = v["B1"]
	omega := 2 * math.Pi * v["f"] * 1e6
	window := v["window"] * 1e-9

	ts := numeric.Linspace(0, window, nmrSamples)
	traj, err := n.Trajectory(omega, ts)
	if err != nil {
		return nil, err
	}
	tns := numeric.Eval(ts, func(t float64) float64 { return t * 1e9 })
	mx := make([]float64, len(traj))
	my := make([]float64, len(traj))
	mz := make([]float64, len(traj))
	for i, m := range traj {
		mx[i], my[i], mz[i] = m.X, m.Y, m.Z
	}

	bloch, err := integrateBloch(ctx, n, omega, window)
	if err != nil {
		return nil, fmt.Errorf("bloch equation: %w", err)
	}

	fig := figure.New("Classical NMR")
	top := fig.AddPanel("vertical magnetization", "t (ns)", "Mz")
	top.Line("Mz", tns, mz)
	num := top.Line("Mz (Bloch)", numeric.Eval(bloch.Times, func(t float64) float64 { return t * 1e9 }), bloch.Component(2))
	num.Dashed = true
	top.SetYRange(-1.05, 1.05)

	space := fig.AddPanel("magnetization", "", "")
	for _, axis := range figure.Axes(1) {
		space.Series = append(space.Series, axis)
	}
	space.Line3("M", mx, my, mz).Color = figure.Red
	space.Equal = true

	fs := numeric.Linspace(20, 70, 500)
	curve := numeric.Eval(fs, func(f float64) float64 { return n.MinMz(2 * math.Pi * f * 1e6) })
	res := fig.AddPanel("resonance", "f (MHz)", "min Mz")
	res.Line("resonance", fs, curve)
	minMz := n.MinMz(omega)
	res.Mark(v["f"], "f", true, figure.Red)
	res.Mark(minMz, "", false, figure.Gray)
	res.SetYRange(-1.05, 1.05)

	fig.Notef("Larmor frequency %.4g MHz", n.LarmorFrequency()/1e6)
	fig.Notef("min Mz = %.3f", minMz)
	fig.Notef("|M| drift of the Bloch integration %.2g", bloch.EnergyDrift)
	return fig, nil
}

func integrateBloch(ctx context.Context, n physics.NMR, omega, window float64) (*dynamo.Result, error) {
	cfg := dynamo.Config{
		Dt:            window / (100 * nmrSamples),
		Duration:      window,
		Tolerance:     1e-8,
		MaxDt:         window / nmrSamples,
		MinDt:         window * 1e-12,
		Adaptive:      true,
		ValidateState: true,
	}
	sim := dynamo.New(physics.Bloch{NMR: n, Omega: omega}, integrators.NewRK45())
	return sim.Run(ctx, dynamo.State{0, 0, 1}, cfg)
}
