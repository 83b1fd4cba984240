package dynamo

import "math"

// TrigTable holds sin and cos sampled over one turn and interpolates
// linearly between entries. Used for the animated field demos where the
// same phases are evaluated every frame.
type TrigTable struct {
	sin, cos []float64
	step     float64
}

// DefaultTrigTable has 4096 entries, about 1.5e-3 rad resolution and an
// interpolation error below 3e-7.
var DefaultTrigTable = NewTrigTable(4096)

func NewTrigTable(n int) *TrigTable {
	t := &TrigTable{
		sin:  make([]float64, n+1),
		cos:  make([]float64, n+1),
		step: 2 * math.Pi / float64(n),
	}
	for i := 0; i <= n; i++ {
		t.sin[i], t.cos[i] = math.Sincos(float64(i) * t.step)
	}
	return t
}

func (t *TrigTable) locate(x float64) (int, float64) {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	pos := x / t.step
	i := int(pos)
	if i >= len(t.sin)-1 {
		i = len(t.sin) - 2
	}
	return i, pos - float64(i)
}

func (t *TrigTable) SinCos(x float64) (float64, float64) {
	i, frac := t.locate(x)
	s := t.sin[i] + (t.sin[i+1]-t.sin[i])*frac
	c := t.cos[i] + (t.cos[i+1]-t.cos[i])*frac
	return s, c
}

func (t *TrigTable) Sin(x float64) float64 {
	s, _ := t.SinCos(x)
	return s
}

func (t *TrigTable) Cos(x float64) float64 {
	_, c := t.SinCos(x)
	return c
}

func FastSin(x float64) float64 { return DefaultTrigTable.Sin(x) }
func FastCos(x float64) float64 { return DefaultTrigTable.Cos(x) }
