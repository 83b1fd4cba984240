package demo

import (
	"context"
	"fmt"

	"github.com/san-kum/physdemo/internal/analysis"
	"github.com/san-kum/physdemo/internal/figure"
	"github.com/san-kum/physdemo/internal/numeric"
	"github.com/san-kum/physdemo/internal/physics"
)

const (
	fourierPeriod  = 2.0
	fourierStep    = 1e-3
	spectrumPoints = 8192
	maxHarmonic    = 40
	decibelFloor   = -120.0
)

type FourierSquare struct{}

func (*FourierSquare) Name() string { return "fourier-square" }
func (*FourierSquare) Summary() string {
	return "Partial Fourier sums of a square wave (Gibbs overshoot)"
}

func (*FourierSquare) Params() []Param {
	return []Param{
		{Name: "N", Label: "terms", Min: 0, Max: 100, Default: 0, Step: 1, Integer: true},
	}
}

func (d *FourierSquare) Compute(ctx context.Context, v Values) (*figure.Figure, error) {
	n := v.Int("N")
	ts := numeric.Arange(-fourierPeriod, 2*fourierPeriod, fourierStep)

	fig := figure.New("Square wave decomposition")
	p := fig.AddPanel(fmt.Sprintf("N = %d", n), "t (s)", "s(t)")
	sq := p.Line("square", ts, numeric.Eval(ts, func(t float64) float64 {
		return physics.SquareWave(t, fourierPeriod, 1)
	}))
	sq.Color, sq.Dashed = figure.Gray, true
	p.Line("partial sum", ts, numeric.Eval(ts, func(t float64) float64 {
		return physics.SquareSeries(t, fourierPeriod, 1, n+1)
	}))
	p.SetYRange(-1.5, 1.5)
	return fig, ctx.Err()
}

type FourierTriangle struct{}

func (*FourierTriangle) Name() string    { return "fourier-triangle" }
func (*FourierTriangle) Summary() string { return "Partial Fourier sums of a triangle wave" }

func (*FourierTriangle) Params() []Param {
	return []Param{
		{Name: "N", Label: "terms", Min: 0, Max: 6, Default: 0, Step: 1, Integer: true},
	}
}

func (d *FourierTriangle) Compute(ctx context.Context, v Values) (*figure.Figure, error) {
	n := v.Int("N")
	ts := numeric.Arange(-2*fourierPeriod, 2*fourierPeriod, fourierStep)

	fig := figure.New("Triangle wave decomposition")
	p := fig.AddPanel(fmt.Sprintf("N = %d", n), "t (s)", "s(t)")
	tri := p.Line("triangle", ts, numeric.Eval(ts, func(t float64) float64 {
		return physics.TriangleWave(t, fourierPeriod)
	}))
	tri.Color, tri.Dashed = figure.Gray, true
	p.Line("partial sum", ts, numeric.Eval(ts, func(t float64) float64 {
		return physics.TriangleSeries(t, fourierPeriod, n+1)
	}))
	p.SetYRange(-0.2, 1.2)
	return fig, ctx.Err()
}

// FourierSpectrum shows the harmonic content of a periodic signal and its
// reconstruction from the first harmonics.
type FourierSpectrum struct{}

func (*FourierSpectrum) Name() string { return "fourier-spectrum" }
func (*FourierSpectrum) Summary() string {
	return "FFT spectrum of a periodic signal and band-limited reconstruction"
}

func (*FourierSpectrum) Params() []Param {
	return []Param{
		{Name: "harmonics", Label: "harmonics kept", Min: 0, Max: maxHarmonic, Default: maxHarmonic, Step: 1, Integer: true},
		{Name: "signal", Label: "signal (0 triangle, 1 sawtooth, 2 square, 3 noise)", Min: 0, Max: 3, Default: 0, Step: 1, Integer: true},
		{Name: "seed", Label: "noise seed", Min: 0, Max: 1000, Default: 1, Step: 1, Integer: true},
	}
}

func (d *FourierSpectrum) Compute(ctx context.Context, v Values) (*figure.Figure, error) {
	name := physics.SignalNames()[v.Int("signal")]
	keep := v.Int("harmonics")

	sig, err := physics.PeriodicSignal(name, spectrumPoints, int64(v.Int("seed")))
	if err != nil {
		return nil, err
	}
	partial := analysis.BandLimit(sig, keep)
	amp := analysis.AmplitudeSpectrum(sig)
	db := analysis.Decibels(amp[:maxHarmonic+1], decibelFloor)

	ts := make([]float64, 2*spectrumPoints)
	for i := range ts {
		ts[i] = float64(i) / spectrumPoints
	}

	fig := figure.New("Spectral analysis: " + name)
	top := fig.AddPanel("signal", "t/T0", "amplitude")
	orig := top.Line(name, ts, append(append([]float64(nil), sig...), sig...))
	orig.Color, orig.Dashed = figure.Black, true
	top.Line(fmt.Sprintf("harmonics 0..%d", keep), ts, append(append([]float64(nil), partial...), partial...))
	top.SetXRange(0, 2)

	bars := &figure.Bars{
		Name:   "spectrum",
		X:      make([]float64, len(db)),
		Values: make([]float64, len(db)),
		Base:   decibelFloor,
		Color:  figure.Blue,
	}
	for k := range db {
		bars.X[k] = float64(k)
		bars.Values[k] = decibelFloor
		if k <= keep {
			bars.Values[k] = db[k]
		}
	}
	bottom := fig.AddPanel("spectrum", "f/f0", "amplitude (dB)")
	bottom.Bars = bars
	bottom.SetXRange(-0.5, maxHarmonic+0.5)
	return fig, ctx.Err()
}
