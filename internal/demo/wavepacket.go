package demo

import (
	"context"
	"fmt"

	"github.com/san-kum/physdemo/internal/figure"
	"github.com/san-kum/physdemo/internal/numeric"
	"github.com/san-kum/physdemo/internal/physics"
)

const wavePacketFrame = 0.005

// WavePacket propagates a windowed sum of harmonics through a dispersive
// medium.
type WavePacket struct{}

func (*WavePacket) Name() string    { return "wavepacket" }
func (*WavePacket) Summary() string { return "Wave packet spreading under four dispersion relations" }

func (*WavePacket) Params() []Param {
	return []Param{
		{Name: "t", Label: "time", Min: 0, Max: 50, Default: 0, Step: wavePacketFrame},
		{Name: "f", Label: "central frequency", Unit: "Hz", Min: 50, Max: 200, Default: 100, Step: 1},
		{Name: "P", Label: "half width (2P+1 components)", Min: 0, Max: 40, Default: 20, Step: 1, Integer: true},
		{Name: "dispersion", Label: "dispersion (0 vacuum, 1 cutoff, 2 optical, 3 de Broglie)", Min: 0, Max: 3, Default: 1, Step: 1, Integer: true},
		{Name: "fc", Label: "cutoff frequency", Unit: "Hz", Min: 0, Max: 90, Default: 40, Step: 1},
		{Name: "B", Label: "optical coefficient", Unit: "1e-6", Min: 0, Max: 1, Default: 0.1, Step: 0.01},
		{Name: "probability", Label: "show |psi| instead of the field", Min: 0, Max: 1, Default: 0, Step: 1, Integer: true},
		{Name: "speed", Label: "animation speed", Min: 0.1, Max: 5, Default: 1, Step: 0.1},
		{Name: "samples", Label: "samples per view", Min: 500, Max: 10000, Default: 5000, Step: 500, Integer: true},
	}
}

func (d *WavePacket) Frame(v Values) Values {
	return advance(d.Params(), v, "t", wavePacketFrame*v["speed"])
}

func (d *WavePacket) Compute(ctx context.Context, v Values) (*figure.Figure, error) {
	name := physics.DispersionNames()[v.Int("dispersion")]
	rel, err := physics.NewDispersion(name, v["fc"], v["B"]*1e-6)
	if err != nil {
		return nil, err
	}
	wp, err := physics.NewWavePacket(rel, v["f"], v.Int("P"))
	if err != nil {
		return nil, err
	}

	t := v["t"]
	n := v.Int("samples")
	sample := wp.Field
	ylabel := "field"
	if v.Bool("probability") {
		sample = wp.Envelope
		ylabel = "|psi|"
	}

	fig := figure.New(fmt.Sprintf("Wave packet in %s (t = %.3f)", name, t))

	xs := numeric.Linspace(-0.35, 0.35, n)
	track := fig.AddPanel("frame moving at the group velocity", "x", ylabel)
	track.Line("tracking", xs, sample(xs, t, true))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	xl := numeric.Linspace(0, 4, n)
	lab := fig.AddPanel("lab frame", "x", ylabel)
	lab.Line("lab", xl, sample(xl, t, false))

	fig.Notef("group velocity %.4g (phase velocity of the centre is 1)", wp.GroupSpeed)
	return fig, ctx.Err()
}
