package export

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/physdemo/internal/figure"
)

func sampleFigure() *figure.Figure {
	fig := figure.New("sample")
	p := fig.AddPanel("lines", "x", "y")
	p.Line("a", []float64{0, 1, 2}, []float64{0, 1, 4})
	p.Line("b", []float64{0, 1}, []float64{1, math.NaN()})
	p.Mark(1, "one", true, figure.Red)
	bars := fig.AddPanel("bars", "k", "dB")
	bars.Bars = &figure.Bars{Name: "h", X: []float64{0, 1, 2}, Values: []float64{-10, -20, -120}, Base: -120, Color: figure.Blue}
	img := fig.AddPanel("screen", "X", "")
	img.Image = &figure.Image{X: []float64{-1, 0, 1}, Shade: []float64{1, 0, 1}}
	return fig
}

func TestWritePlotFormats(t *testing.T) {
	for _, format := range []string{"png", "svg", "pdf"} {
		var buf bytes.Buffer
		if err := WritePlot(&buf, sampleFigure(), format, 300, 400); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if buf.Len() == 0 {
			t.Errorf("%s: empty output", format)
		}
	}
	if !bytes.HasPrefix(pngBytes(t), []byte("\x89PNG")) {
		t.Error("png output should start with the PNG signature")
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := WritePlot(&buf, sampleFigure(), "png", 200, 300); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestWritePlotErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePlot(&buf, sampleFigure(), "bmp", 0, 0); err == nil {
		t.Error("expected an unsupported format error")
	}
	if err := WritePlot(&buf, figure.New("empty"), "png", 0, 0); err == nil {
		t.Error("expected an error for a figure without panels")
	}
	bad := figure.New("bad")
	bad.AddPanel("", "", "").Line("x", []float64{1, 2}, []float64{1})
	if err := WritePlot(&buf, bad, "png", 0, 0); err == nil {
		t.Error("expected a length mismatch error")
	}
}

func TestWritePlotLogAxes(t *testing.T) {
	fig := figure.New("bode")
	p := fig.AddPanel("gain", "f", "|H|")
	p.LogX, p.LogY = true, true
	// the origin and the zero gain cannot be placed on log axes
	p.Line("H", []float64{0, 0.1, 1, 10, 100}, []float64{1, 1, 0.7, 0.1, 0})
	p.Mark(1, "fc", true, figure.Red)

	plt, err := Plot(p)
	if err != nil {
		t.Fatal(err)
	}
	if plt.X.Min != 0.1 || plt.X.Max != 100 {
		t.Errorf("x axis %g..%g, want 0.1..100", plt.X.Min, plt.X.Max)
	}
	if plt.Y.Min <= 0 {
		t.Errorf("y axis starts at %g on a log scale", plt.Y.Min)
	}
	var buf bytes.Buffer
	if err := WritePlot(&buf, fig, "svg", 200, 200); err != nil {
		t.Fatal(err)
	}
}

func TestImage(t *testing.T) {
	img, err := Image(sampleFigure(), 320, 480)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 480 {
		t.Errorf("image is %dx%d, want 320x480", b.Dx(), b.Dy())
	}
	if _, err := Image(figure.New("empty"), 100, 100); err == nil {
		t.Error("expected an error for a figure without panels")
	}
}

func TestSavePlotByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.svg")
	if err := SavePlot(sampleFigure(), path, 0, 0); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("svg file should contain an svg element")
	}
	if err := SavePlot(sampleFigure(), filepath.Join(dir, "noext"), 0, 0); err == nil {
		t.Error("expected an error without extension")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleFigure()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "0:a:x,0:a:y,0:b:x,0:b:y" {
		t.Errorf("header = %q", lines[0])
	}
	// three points of a; b lost its NaN point
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if lines[3] != "2,4,," {
		t.Errorf("last row = %q", lines[3])
	}
}

func TestSeriesCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSeriesCSV(&buf, sampleFigure()); err != nil {
		t.Fatal(err)
	}
	points, err := ReadSeriesCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 4 {
		t.Fatalf("got %d points, want 4", len(points))
	}
	fig := FigureFromPoints("replay", points)
	if len(fig.Panels) != 1 || len(fig.Panels[0].Series) != 2 {
		t.Fatalf("rebuilt figure has %d panels", len(fig.Panels))
	}
	if got := fig.Panels[0].Series[0].Y; len(got) != 3 || got[2] != 4 {
		t.Errorf("series a = %v", got)
	}
}

func TestWriteJSONDropsNaN(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleFigure()); err != nil {
		t.Fatal(err)
	}
	var back figure.Figure
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if back.Title != "sample" || len(back.Panels) != 3 {
		t.Fatalf("decoded %q with %d panels", back.Title, len(back.Panels))
	}
	if got := len(back.Panels[0].Series[1].X); got != 1 {
		t.Errorf("series b kept %d points, want 1", got)
	}
	if back.Panels[1].Bars.Color != figure.Blue {
		t.Errorf("bar color = %v", back.Panels[1].Bars.Color)
	}
}
