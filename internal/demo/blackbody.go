package demo

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/physdemo/internal/figure"
	"github.com/san-kum/physdemo/internal/numeric"
	"github.com/san-kum/physdemo/internal/physics"
)

type Blackbody struct{}

func (*Blackbody) Name() string { return "blackbody" }
func (*Blackbody) Summary() string {
	return "Planck's law against the Rayleigh-Jeans and Wien approximations"
}

func (*Blackbody) Params() []Param {
	return []Param{
		{Name: "T", Label: "temperature", Unit: "K", Min: 0.1, Max: 10000, Default: 5800, Step: 0.02, Log: true},
	}
}

func (d *Blackbody) Compute(ctx context.Context, v Values) (*figure.Figure, error) {
	T := v["T"]
	nus := numeric.Logspace(1e4, 2e15, 10000)
	laws, err := physics.BlackbodySpectrum(nus, T)
	if err != nil {
		return nil, err
	}

	fig := figure.New("Blackbody radiation")
	p := fig.AddPanel(fmt.Sprintf("T = %.4g K", T), "frequency (Hz)", "B_nu (W m^-2 Hz^-1 sr^-1)")
	measured := p.Line("measured", nus, laws.Planck)
	measured.Color = figure.Black

	for _, s := range []struct {
		name string
		y    []float64
		c    figure.RGB
	}{
		{"Planck", laws.Planck, figure.Blue},
		{"Rayleigh-Jeans", laws.RayleighJeans, figure.Gray},
		{"Wien", laws.Wien, figure.Orange},
	} {
		line := p.Line(s.name, nus, s.y)
		line.Color, line.Hidden = s.c, true
	}

	for _, band := range physics.VisibleSpectrum {
		p.Mark(band.Frequency, band.Name, true, figure.FromColor(band.Color))
	}
	if peak := floats.Max(laws.Planck); peak > 0 {
		p.SetYRange(0, 3*peak)
	}
	p.SetXRange(nus[0], nus[len(nus)-1])

	fig.Notef("peak frequency %.4g Hz", physics.PeakFrequency(T))
	fig.Notef("peak wavelength %.4g m", physics.PeakWavelength(T))
	return fig, ctx.Err()
}
