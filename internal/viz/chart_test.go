package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/physdemo/internal/figure"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	if w, h := c.Dots(); w != 4 || h != 4 {
		t.Fatalf("dots = %dx%d, want 4x4", w, h)
	}
	c.Set(0, 0)
	if c.Grid[0][0] != brailleBlank|0x1 {
		t.Errorf("cell = %U", c.Grid[0][0])
	}
	c.Set(3, 3)
	if c.Grid[0][1] != brailleBlank|0x80 {
		t.Errorf("cell = %U", c.Grid[0][1])
	}
	c.Unset(0, 0)
	if c.Grid[0][0] != brailleBlank {
		t.Errorf("unset cell = %U", c.Grid[0][0])
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(100, 100)
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for col := 0; col < 4; col++ {
		if c.Grid[0][col] != brailleBlank|0x1|0x8 {
			t.Errorf("col %d = %U", col, c.Grid[0][col])
		}
	}
}

func TestPolylineBreaksAtNaN(t *testing.T) {
	vp := Viewport{XMin: 0, XMax: 3, YMin: 0, YMax: 1}
	xs := []float64{0, 1, 2, 3}
	ys := []float64{0, 0, math.NaN(), 0}

	c := NewCanvas(4, 1)
	c.Polyline(xs, ys, vp)
	// dots at x = 0, 2 are joined; x = 7 stands alone
	w, _ := c.Dots()
	if w != 8 {
		t.Fatalf("width = %d", w)
	}
	if c.Grid[0][2] != brailleBlank {
		t.Errorf("gap was drawn: %U", c.Grid[0][2])
	}
	if c.Grid[0][3] == brailleBlank {
		t.Error("isolated point missing")
	}
}

func TestViewportEqualize(t *testing.T) {
	vp := Viewport{XMin: 0, XMax: 10, YMin: 0, YMax: 1}.Equalize(100, 100)
	if math.Abs(vp.YMax-vp.YMin-10) > 1e-9 {
		t.Errorf("y span = %g, want 10", vp.YMax-vp.YMin)
	}
	if vp.XMin != 0 || vp.XMax != 10 {
		t.Errorf("x changed: %+v", vp)
	}
}

func TestResample(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{0, 10, 0}
	got := resample(x, y, []float64{-1, 0, 0.5, 1, 1.5, 2, 3})
	want := []float64{math.NaN(), 0, 5, 10, 5, 0, math.NaN()}
	for i := range want {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(got[i]) {
				t.Errorf("[%d] = %g, want NaN", i, got[i])
			}
			continue
		}
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestColumnGridLog(t *testing.T) {
	g := columnGrid(figure.Range{Min: 1, Max: 1000}, 4, true)
	want := []float64{1, 10, 100, 1000}
	for i := range want {
		if math.Abs(g[i]-want[i]) > 1e-9*want[i] {
			t.Errorf("grid[%d] = %g, want %g", i, g[i], want[i])
		}
	}
}

func TestYScale(t *testing.T) {
	tests := []struct {
		yr  figure.Range
		exp int
	}{
		{figure.Range{Min: 0, Max: 1}, 0},
		{figure.Range{Min: -300, Max: 200}, 0},
		{figure.Range{Min: 0, Max: 3e-18}, -18},
		{figure.Range{Min: 0, Max: 4e8}, 8},
	}
	for _, tt := range tests {
		_, exp := yScale(tt.yr)
		if exp != tt.exp {
			t.Errorf("yScale(%v) exp = %d, want %d", tt.yr, exp, tt.exp)
		}
	}
}

func TestRenderFigure(t *testing.T) {
	fig := figure.New("damped wave")
	p := fig.AddPanel("signal", "t", "x")
	xs := make([]float64, 50)
	ys := make([]float64, 50)
	for i := range xs {
		xs[i] = float64(i) / 10
		ys[i] = math.Exp(-xs[i]) * math.Cos(3*xs[i])
	}
	p.Line("x(t)", xs, ys)
	p.Mark(1, "t = 1", true, figure.Red)

	orbit := fig.AddPanel("phase", "x", "v")
	orbit.Equal = true
	orbit.Line("path", ys, xs)

	fig.Notef("decay time %g", 1.0)

	out := RenderFigure(fig, RenderOptions{Width: 40, Height: 6})
	for _, want := range []string{"DAMPED WAVE", "signal", "phase", "decay time 1", "x(t)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPanelLogLog(t *testing.T) {
	p := &figure.Panel{Title: "gain", XLabel: "f", YLabel: "|H|", LogX: true, LogY: true}
	fs := []float64{0.1, 1, 10, 100}
	p.Line("H", fs, []float64{1, 0.7, 0.1, 0.01})
	out := RenderPanel(p, RenderOptions{Width: 30, Height: 5})
	if !strings.Contains(out, "(log10)") {
		t.Errorf("missing log caption:\n%s", out)
	}
	// log10 of the gain spans -2..0
	if !strings.Contains(out, "-2") {
		t.Errorf("expected log-scaled labels:\n%s", out)
	}
}

func TestRenderPanelEmpty(t *testing.T) {
	p := &figure.Panel{Title: "empty"}
	out := RenderPanel(p, RenderOptions{})
	if !strings.Contains(out, "empty") {
		t.Errorf("output = %q", out)
	}
}

func TestSliderBar(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "[----]"},
		{0.5, "[==--]"},
		{1, "[====]"},
		{2, "[====]"},
	}
	for _, tt := range tests {
		if got := SliderBar(tt.v, 0, 1, 4); got != tt.want {
			t.Errorf("SliderBar(%g) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestThemes(t *testing.T) {
	names := ThemeNames()
	if len(names) != 5 {
		t.Errorf("themes = %v", names)
	}
	if _, err := GetTheme("neon"); err == nil {
		t.Error("expected unknown theme error")
	}
	t.Cleanup(func() { _ = SetTheme("cyberpunk") })
	if err := SetTheme("ocean"); err != nil {
		t.Fatal(err)
	}
	if CurrentTheme.Name != "ocean" {
		t.Errorf("current = %s", CurrentTheme.Name)
	}
}
