package figure

import (
	"encoding/json"
	"errors"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/physdemo/internal/dynamo"
)

func TestValidate(t *testing.T) {
	f := New("test")
	p := f.AddPanel("a", "x", "y")
	p.Line("ok", []float64{1, 2}, []float64{3, 4})
	if err := f.Validate(); err != nil {
		t.Fatalf("valid figure rejected: %v", err)
	}

	p.Line("bad", []float64{1, 2, 3}, []float64{3, 4})
	if err := f.Validate(); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	g := New("bars")
	g.AddPanel("", "", "").Bars = &Bars{X: []float64{1}, Values: nil}
	if err := g.Validate(); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch for bars, got %v", err)
	}
}

func TestSeriesNamesAndToggle(t *testing.T) {
	f := New("test")
	a := f.AddPanel("a", "", "")
	a.Line("x1", nil, nil)
	a.Line("x2", nil, nil)
	b := f.AddPanel("b", "", "")
	b.Line("x1", nil, nil)
	b.Line("x3", nil, nil)

	got := f.SeriesNames()
	want := []string{"x1", "x2", "x3"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("SeriesNames = %v, want %v", got, want)
	}

	b.Series[1].Hidden = true
	f.Toggle(map[string]bool{"x1": true, "x3": true})
	if len(a.Visible()) != 1 || a.Visible()[0].Name != "x2" {
		t.Errorf("x1 should be hidden in panel a")
	}
	if len(b.Visible()) != 1 || b.Visible()[0].Name != "x3" {
		t.Errorf("x3 should be shown and x1 hidden in panel b")
	}
	if a.Series[1].Color == a.Series[0].Color {
		t.Error("consecutive series should get distinct colors")
	}
}

func TestFiniteDropsBadPoints(t *testing.T) {
	p := &Panel{LogY: true}
	s := &Series{
		X: []float64{0, 1, 2, 3, 4},
		Y: []float64{1, math.NaN(), -1, math.Inf(1), 5},
	}
	x, y := p.Finite(s)
	if len(x) != 2 || x[0] != 0 || x[1] != 4 || y[1] != 5 {
		t.Errorf("Finite = %v %v", x, y)
	}
}

func TestBounds(t *testing.T) {
	p := &Panel{}
	p.Line("a", []float64{-1, 2}, []float64{0, 10})
	hidden := p.Line("b", []float64{-100}, []float64{100})
	hidden.Hidden = true

	xr, yr, ok := p.Bounds()
	if !ok || xr.Min != -1 || xr.Max != 2 || yr.Min != 0 || yr.Max != 10 {
		t.Errorf("Bounds = %v %v %v", xr, yr, ok)
	}

	p.SetYRange(-5, 5)
	if _, yr, _ := p.Bounds(); yr.Min != -5 || yr.Max != 5 {
		t.Errorf("YRange not applied: %v", yr)
	}

	if _, _, ok := (&Panel{}).Bounds(); ok {
		t.Error("empty panel should report no bounds")
	}
}

func TestColors(t *testing.T) {
	if got := Red.Hex(); !strings.EqualFold(got, "#d62728") {
		t.Errorf("Red.Hex() = %q", got)
	}
	if got, err := ParseHex("#d62728"); err != nil || got != Red {
		t.Errorf("ParseHex = %v, %v", got, err)
	}
	if _, err := ParseHex("tomato"); err == nil {
		t.Error("ParseHex should reject names")
	}
	if Palette(0) != Palette(len(palette)) {
		t.Error("palette should cycle")
	}
	if got := FromColor(color.RGBA{R: 1, G: 2, B: 3, A: 255}); got != (RGB{1, 2, 3}) {
		t.Errorf("FromColor = %v", got)
	}
	if got := Lerp(Black, RGB{200, 100, 0}, 0.5); got != (RGB{100, 50, 0}) {
		t.Errorf("Lerp = %v", got)
	}

	data, err := json.Marshal(&Series{Name: "s", Color: Blue})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(strings.ToLower(string(data)), `"color":"#1f77b4"`) {
		t.Errorf("color should marshal as hex: %s", data)
	}
}

func TestViewProjection(t *testing.T) {
	s := &Series{X: []float64{0}, Y: []float64{0}, Z: []float64{1}}
	_, y := DefaultView.Project(s)
	if y[0] < 0.8 {
		t.Errorf("z axis should point up on screen, got y=%g", y[0])
	}

	flat := &Series{X: []float64{1, 2}, Y: []float64{3, 4}}
	x, y := DefaultView.Project(flat)
	if x[1] != 2 || y[1] != 4 {
		t.Errorf("series without depth should pass through, got %v %v", x, y)
	}

	if len(Axes(1)) != 3 {
		t.Error("expected three axes")
	}
}

func TestLine3MarksPanel(t *testing.T) {
	f := New("3d")
	p := f.AddPanel("", "", "")
	p.Line3("m", []float64{0, 1}, []float64{0, 1}, []float64{0})
	if !p.ThreeD {
		t.Error("Line3 should switch the panel to 3D")
	}
	if err := f.Validate(); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("short Z should be rejected, got %v", err)
	}
}
