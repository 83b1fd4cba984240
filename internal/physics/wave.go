package physics

import (
	"context"
	"math"
	"sync"

	"github.com/san-kum/physdemo/internal/dynamo"
	"github.com/san-kum/physdemo/internal/integrators"
)

// FieldLine is a finite-difference Klein-Gordon field on [ZMin, ZMax]:
// u_tt = u_zz - m^2(z) u with m = 0 for z < 0 and m = Mass beyond. The left
// end is driven by cos(W t) and a sponge layer absorbs the outgoing wave at
// the right end. State is [u..., v...].
type FieldLine struct {
	N          int
	ZMin, ZMax float64
	W          float64
	Mass       float64
	Sponge     float64 // fraction of the domain used as absorber
	dz         float64

	mu     sync.Mutex
	last   dynamo.State // state at lastT, reused by later Evolve calls
	lastT  float64
	lastDt float64
}

// NewFieldLine builds a line whose transmitted wave number matches kg.
func NewFieldLine(kg KleinGordon, zmin, zmax float64, n int) *FieldLine {
	if n < 3 {
		n = 3
	}
	m2 := kg.W*kg.W - kg.KK*kg.KK
	return &FieldLine{
		N:      n,
		ZMin:   zmin,
		ZMax:   zmax,
		W:      kg.W,
		Mass:   math.Sqrt(math.Max(m2, 0)),
		Sponge: 0.2,
		dz:     (zmax - zmin) / float64(n-1),
	}
}

func (f *FieldLine) StateDim() int { return 2 * f.N }

// Z returns the grid positions.
func (f *FieldLine) Z() []float64 {
	z := make([]float64, f.N)
	for i := range z {
		z[i] = f.ZMin + float64(i)*f.dz
	}
	return z
}

func (f *FieldLine) absorption(z float64) float64 {
	start := f.ZMax - f.Sponge*(f.ZMax-f.ZMin)
	if z <= start {
		return 0
	}
	s := (z - start) / (f.ZMax - start)
	return 20 * s * s
}

func (f *FieldLine) Derive(s dynamo.State, t float64) dynamo.State {
	n := f.N
	d := make(dynamo.State, 2*n)
	h2 := f.dz * f.dz
	m2 := f.Mass * f.Mass
	d[n] = -f.W * f.W * math.Cos(f.W*t)
	for i := 1; i < n-1; i++ {
		z := f.ZMin + float64(i)*f.dz
		d[i] = s[n+i]
		acc := (s[i-1] - 2*s[i] + s[i+1]) / h2
		if z >= 0 {
			acc -= m2 * s[i]
		}
		d[n+i] = acc - f.absorption(z)*s[n+i]
	}
	d[0] = s[n]
	return d
}

// Constrain pins the driven end and the far end.
func (f *FieldLine) Constrain(x, _ dynamo.State, t float64) dynamo.State {
	n := f.N
	x[0] = math.Cos(f.W * t)
	x[n] = -f.W * math.Sin(f.W*t)
	x[n-1], x[2*n-1] = 0, 0
	return x
}

// Energy is the discrete field energy outside the sponge.
func (f *FieldLine) Energy(s dynamo.State) float64 {
	n := f.N
	e := 0.0
	for i := 0; i < n-1; i++ {
		z := f.ZMin + float64(i)*f.dz
		if f.absorption(z) > 0 {
			break
		}
		v := s[n+i]
		du := (s[i+1] - s[i]) / f.dz
		e += 0.5 * (v*v + du*du) * f.dz
		if z >= 0 {
			e += 0.5 * f.Mass * f.Mass * s[i] * s[i] * f.dz
		}
	}
	return e
}

// Evolve integrates the line from rest up to time t with leapfrog steps of
// dt and returns the field. A later call with the same dt and a later t
// resumes from the previous end state.
func (f *FieldLine) Evolve(ctx context.Context, t, dt float64) ([]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	x0 := f.Constrain(make(dynamo.State, 2*f.N), nil, 0)
	start := 0.0
	if f.last != nil && f.lastDt == dt && t >= f.lastT {
		x0, start = f.last, f.lastT
	}
	if t-start <= 0 {
		return append([]float64(nil), x0[:f.N]...), nil
	}

	cfg := dynamo.DefaultConfig()
	cfg.Start = start
	cfg.Dt = dt
	cfg.Duration = t - start
	cfg.FinalOnly = true
	res, err := dynamo.New(f, integrators.NewLeapfrog()).Run(ctx, x0, cfg)
	if err != nil {
		return nil, err
	}
	n := len(res.States) - 1
	f.last, f.lastT, f.lastDt = res.States[n], res.Times[n], dt
	return append([]float64(nil), f.last[:f.N]...), nil
}
