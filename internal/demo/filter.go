package demo

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/san-kum/physdemo/internal/analysis"
	"github.com/san-kum/physdemo/internal/figure"
	"github.com/san-kum/physdemo/internal/numeric"
)

const (
	filterDuration = 10.0
	filterF1       = 10.0
	filterF2       = 150.0
)

// Filter passes a two tone signal through a first order low-pass filter in
// the frequency domain.
type Filter struct{}

func (*Filter) Name() string    { return "filter" }
func (*Filter) Summary() string { return "First order low-pass filter applied through the FFT" }

func (*Filter) Params() []Param {
	return []Param{
		{Name: "fc", Label: "cutoff frequency", Unit: "Hz", Min: 1, Max: 200, Default: 10, Step: 1},
		{Name: "N", Label: "samples", Min: 1024, Max: 262144, Default: 65536, Step: 0.30103, Integer: true, Log: true},
	}
}

func (d *Filter) Compute(ctx context.Context, v Values) (*figure.Figure, error) {
	n := v.Int("N")
	fc := v["fc"]
	dt := filterDuration / float64(n)
	ts := make([]float64, n)
	x := make([]float64, n)
	for i := range ts {
		t := float64(i) * dt
		ts[i] = t
		x[i] = math.Sin(2*math.Pi*filterF1*t) + math.Sin(2*math.Pi*filterF2*t)
	}
	h := analysis.FirstOrderLowPass(fc)
	y := analysis.ApplyTransfer(x, dt, h)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fig := figure.New(fmt.Sprintf("Low-pass filter, fc = %.3g Hz", fc))

	// one period of the slow tone is enough to see the fast one vanish
	shown := min(n, int(math.Ceil(2/(filterF1*dt))))
	sig := fig.AddPanel("signal", "t (s)", "amplitude")
	sig.Line("input", ts[:shown], x[:shown])
	sig.Line("output", ts[:shown], y[:shown])

	freqs := analysis.Frequencies(n, dt)
	keep := 0
	for keep < len(freqs) && freqs[keep] <= 2*filterF2 {
		keep++
	}
	spec := fig.AddPanel("spectrum", "f (Hz)", "amplitude")
	spec.LogX = true
	spec.Line("input", freqs[:keep], analysis.AmplitudeSpectrum(x)[:keep])
	spec.Line("output", freqs[:keep], analysis.AmplitudeSpectrum(y)[:keep])
	spec.Mark(fc, "fc", true, figure.Red)

	fr := numeric.Logspace(fc/100, fc*100, 400)
	bode := fig.AddPanel("transfer function", "f (Hz)", "|H(f)|")
	bode.LogX, bode.LogY = true, true
	bode.Line("|H(f)|", fr, numeric.Eval(fr, func(f float64) float64 {
		return cmplx.Abs(h(f))
	}))
	bode.Mark(fc, "fc", true, figure.Red)

	fig.Notef("gain at %g Hz: %.3f, at %g Hz: %.3f", filterF1, cmplx.Abs(h(filterF1)), filterF2, cmplx.Abs(h(filterF2)))
	return fig, nil
}
