package demo

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/physdemo/internal/analysis"
	"github.com/san-kum/physdemo/internal/dynamo"
	"github.com/san-kum/physdemo/internal/figure"
	"github.com/san-kum/physdemo/internal/integrators"
	"github.com/san-kum/physdemo/internal/physics"
)

const (
	pendulumDuration = 300.0
	pendulumSteps    = 20000
	pendulumShown    = 2000
	pendulumMaxFreq  = 0.5
	// explicit Euler on the undamped kinds gains energy every step
	pendulumMaxNorm = 1e6
)

var pendulumStarts = []dynamo.State{
	{-math.Pi / 4, 0},
	{-math.Pi / 2, 0},
	{-math.Pi / 2, 1},
}

// Pendulum runs the oscillator family from three initial conditions and
// shows time series, phase portraits and spectra.
type Pendulum struct{}

func (*Pendulum) Name() string { return "pendulum" }
func (*Pendulum) Summary() string {
	return "Harmonic, pendulum, Van der Pol and driven oscillators: trajectories and spectra"
}

func (*Pendulum) Params() []Param {
	return []Param{
		{Name: "kind", Label: "0 harmonic, 1 damped, 2 pendulum, 3 damped pendulum, 4 Van der Pol, 5 driven", Min: 0, Max: 5, Default: 2, Step: 1, Integer: true},
		{Name: "integrator", Label: "0 rk4, 1 verlet, 2 euler", Min: 0, Max: 2, Default: 0, Step: 1, Integer: true},
	}
}

var pendulumIntegrators = []string{"rk4", "verlet", "euler"}

func (d *Pendulum) Compute(ctx context.Context, v Values) (*figure.Figure, error) {
	kind := physics.OscillatorKinds()[v.Int("kind")]
	osc, err := physics.NewOscillator(kind)
	if err != nil {
		return nil, err
	}
	integName := pendulumIntegrators[v.Int("integrator")]
	dt := pendulumDuration / pendulumSteps
	cfg := dynamo.Config{Dt: dt, Duration: pendulumDuration, ValidateState: true, MaxNorm: pendulumMaxNorm}

	results := make([]*dynamo.Result, len(pendulumStarts))
	err = dynamo.ParallelFor(ctx, len(pendulumStarts), 1, func(ctx context.Context, start, end int) error {
		// integrators keep stage buffers, so each worker gets its own
		integ, err := integrators.New(integName)
		if err != nil {
			return err
		}
		for i := start; i < end; i++ {
			res, err := dynamo.New(osc, integ).Run(ctx, pendulumStarts[i], cfg)
			if err != nil {
				return fmt.Errorf("start %v: %w", pendulumStarts[i], err)
			}
			results[i] = res
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fig := figure.New(fmt.Sprintf("Oscillator: %s (%s)", kind, integName))
	series := fig.AddPanel("time series", "t", "x")
	phase := fig.AddPanel("phase portrait", "x", "v")
	spectrum := fig.AddPanel("amplitude spectrum", "f", "|X(f)|")

	for i, res := range results {
		name := fmt.Sprintf("x0 = %.2f, v0 = %.2f", pendulumStarts[i][0], pendulumStarts[i][1])
		c := figure.Palette(i)
		n := min(pendulumShown, len(res.Times))
		x := res.Component(0)
		series.Line(name, res.Times[:n], x[:n]).Color = c

		px, py := analysis.PhasePortrait(res, 0, 1)
		phase.Line(name, px, py).Color = c

		amp := analysis.AmplitudeSpectrum(x)
		freqs := analysis.Frequencies(len(x), dt)
		keep := 0
		for keep < len(freqs) && freqs[keep] <= pendulumMaxFreq {
			keep++
		}
		spectrum.Line(name, freqs[:keep], amp[:keep]).Color = c

		if osc.Conservative() {
			fig.Notef("%s: energy drift %.2e", name, res.EnergyDrift)
		}
	}
	// natural frequency of the linearized oscillator
	spectrum.Mark(1/(2*math.Pi), "f0", true, figure.Gray)

	if period := osc.DrivePeriod(); period > 0 {
		section := fig.AddPanel("stroboscopic section", "x (wrapped)", "v")
		for i, res := range results {
			sx, sy := analysis.StroboscopicSection(res, 0, 1, period, pendulumDuration/3)
			for k := range sx {
				sx[k] = analysis.WrapAngle(sx[k])
			}
			s := section.Line(fmt.Sprintf("start %d", i+1), sx, sy)
			s.Color = figure.Palette(i)
		}
		lambda := analysis.LyapunovExponent(osc, integrators.NewRK4(), pendulumStarts[0], dt, pendulumDuration/3, 1e-8)
		fig.Notef("largest Lyapunov exponent %.3f (positive means chaos)", lambda)
	}
	return fig, nil
}
