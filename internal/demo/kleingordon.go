package demo

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/san-kum/physdemo/internal/figure"
	"github.com/san-kum/physdemo/internal/numeric"
	"github.com/san-kum/physdemo/internal/physics"
)

const (
	kleinGordonFrame = 0.01
	// the finite-difference field is only evolved this long; later frames
	// reuse the front at this time
	fieldLineHorizon = 8.0
	fieldLineDt      = 0.005
	fieldLinePoints  = 600
)

// KleinGordon animates a wave entering a dispersive region where it obeys
// the Klein-Gordon equation. The simulated line is kept between frames so
// each frame only integrates from the previous one.
type KleinGordon struct {
	once sync.Once
	line *physics.FieldLine
}

func (*KleinGordon) Name() string { return "klein-gordon" }
func (*KleinGordon) Summary() string {
	return "Wave crossing into a Klein-Gordon medium: phase faster than light, front at c"
}

func (*KleinGordon) Params() []Param {
	return []Param{
		{Name: "t", Label: "time", Min: 0, Max: 20, Default: 0, Step: kleinGordonFrame},
		{Name: "field", Label: "show the simulated field line", Min: 0, Max: 1, Default: 1, Step: 1, Integer: true},
	}
}

func (d *KleinGordon) Frame(v Values) Values {
	return advance(d.Params(), v, "t", kleinGordonFrame)
}

func (d *KleinGordon) Compute(ctx context.Context, v Values) (*figure.Figure, error) {
	kg := physics.DefaultKleinGordon()
	t := v["t"]

	fig := figure.New(fmt.Sprintf("Klein-Gordon wave (t = %.2f)", t))
	p := fig.AddPanel("field", "z", "E")
	z2 := numeric.Linspace(-5, 0, 500)
	z1 := numeric.Linspace(0, 10, 1000)
	p.Line("vacuum", z2, kg.Incident(z2, t))
	p.Line("medium", z1, kg.Transmitted(z1, t))

	if v.Bool("field") {
		d.once.Do(func() {
			d.line = physics.NewFieldLine(kg, 0, 15, fieldLinePoints)
		})
		line := d.line
		u, err := line.Evolve(ctx, math.Min(t, fieldLineHorizon), fieldLineDt)
		if err != nil {
			return nil, err
		}
		s := p.Line("simulated", line.Z(), u)
		s.Color, s.Dashed = figure.Gray, true
		if t <= fieldLineHorizon {
			p.Mark(t, "front", true, figure.Red)
		}
	}
	p.SetXRange(-5, 10)
	p.SetYRange(-1.5, 1.5)

	fig.Notef("phase velocity w/k = %.3g c", kg.PhaseVelocity())
	fig.Notef("group velocity k/w = %.3g c", kg.KK/kg.W)
	return fig, nil
}
