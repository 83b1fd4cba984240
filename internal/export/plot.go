// Package export writes figures to image files, CSV and JSON.
package export

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/physdemo/internal/figure"
)

// Default file size in points: full width, and this height per panel.
const (
	DefaultWidth       = 640.0
	DefaultPanelHeight = 300.0
)

var dashes = []vg.Length{vg.Points(4), vg.Points(3)}

// SavePlot renders fig to path, the format following the extension (png,
// svg, pdf, jpg, eps, tif). Width and height are in points; zero picks the
// defaults.
func SavePlot(fig *figure.Figure, path string, width, height float64) (err error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return fmt.Errorf("%s: no file extension to pick a format from", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WritePlot(f, fig, format, width, height)
}

// WritePlot renders fig in the given format with its panels stacked
// vertically.
func WritePlot(w io.Writer, fig *figure.Figure, format string, width, height float64) error {
	width, height, err := checkFigure(fig, width, height)
	if err != nil {
		return err
	}
	c, err := draw.NewFormattedCanvas(vg.Points(width), vg.Points(height), format)
	if err != nil {
		return err
	}
	if err := drawFigure(draw.New(c), fig); err != nil {
		return err
	}
	_, err = c.WriteTo(w)
	return err
}

// Image rasterizes fig at one pixel per point, for windows that show the
// plot directly.
func Image(fig *figure.Figure, width, height int) (image.Image, error) {
	w, h, err := checkFigure(fig, float64(width), float64(height))
	if err != nil {
		return nil, err
	}
	c := vgimg.NewWith(vgimg.UseWH(vg.Points(w), vg.Points(h)), vgimg.UseDPI(72))
	if err := drawFigure(draw.New(c), fig); err != nil {
		return nil, err
	}
	return c.Image(), nil
}

func checkFigure(fig *figure.Figure, width, height float64) (float64, float64, error) {
	if err := fig.Validate(); err != nil {
		return 0, 0, err
	}
	if len(fig.Panels) == 0 {
		return 0, 0, fmt.Errorf("figure %q has no panels", fig.Title)
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultPanelHeight * float64(len(fig.Panels))
	}
	return width, height, nil
}

func drawFigure(dc draw.Canvas, fig *figure.Figure) error {
	plots := make([][]*plot.Plot, len(fig.Panels))
	for i, panel := range fig.Panels {
		p, err := Plot(panel)
		if err != nil {
			return fmt.Errorf("panel %d: %w", i, err)
		}
		plots[i] = []*plot.Plot{p}
	}
	if fig.Title != "" {
		top := plots[0][0]
		if top.Title.Text != "" {
			top.Title.Text = fig.Title + ": " + top.Title.Text
		} else {
			top.Title.Text = fig.Title
		}
	}

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}
	return nil
}

// Plot converts one panel. Hidden series are skipped and non-finite points
// dropped.
func Plot(panel *figure.Panel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title
	p.X.Label.Text = panel.XLabel
	p.Y.Label.Text = panel.YLabel
	p.Legend.Top = true
	if panel.LogX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if panel.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	legend := make(map[string]bool)
	for _, s := range panel.Visible() {
		xs, ys := panel.Finite(projected(panel, s))
		if len(xs) == 0 {
			continue
		}
		thumb, err := addSeries(p, xs, ys, s.Color.RGBA(), s.Dashed)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
		if s.Name != "" && !legend[s.Name] {
			legend[s.Name] = true
			p.Legend.Add(s.Name, thumb)
		}
	}

	if b := panel.Bars; b != nil {
		if err := addBars(p, b); err != nil {
			return nil, err
		}
	}
	if img := panel.Image; img != nil && len(img.X) > 0 {
		hm := plotter.NewHeatMap(strip{img}, greys(256))
		hm.Min, hm.Max = 0, 1
		hm.Underflow, hm.Overflow = color.White, color.Black
		p.Add(hm)
		p.HideY()
	}

	xr, yr, ok := panel.Bounds()
	if panel.ThreeD {
		xr, yr, ok = projectedBounds(panel)
	}
	if ok {
		if panel.Equal {
			xr, yr = square(xr, yr)
		}
		if panel.XRange != nil || panel.Equal || panel.ThreeD {
			p.X.Min, p.X.Max = xr.Min, xr.Max
		}
		if panel.YRange != nil || panel.Equal || panel.ThreeD {
			p.Y.Min, p.Y.Max = yr.Min, yr.Max
		}
		if err := addMarkers(p, panel.Markers, xr, yr); err != nil {
			return nil, err
		}
	}
	if panel.ThreeD {
		p.HideAxes()
	}
	return p, nil
}

func projected(panel *figure.Panel, s *figure.Series) *figure.Series {
	if !panel.ThreeD || s.Z == nil {
		return s
	}
	x, y := figure.DefaultView.Project(s)
	return &figure.Series{Name: s.Name, X: x, Y: y}
}

func projectedBounds(panel *figure.Panel) (xr, yr figure.Range, ok bool) {
	flat := &figure.Panel{}
	for _, s := range panel.Visible() {
		flat.Series = append(flat.Series, projected(panel, s))
	}
	return flat.Bounds()
}

func addSeries(p *plot.Plot, xs, ys []float64, c color.Color, dashed bool) (plot.Thumbnailer, error) {
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	if len(xys) == 1 {
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = c
		sc.GlyphStyle.Radius = vg.Points(3)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		return sc, nil
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.Color = c
	line.Width = vg.Points(1)
	if dashed {
		line.Dashes = dashes
	}
	p.Add(line)
	return line, nil
}

// addBars draws each bar as a thick segment from Base to its value.
func addBars(p *plot.Plot, b *figure.Bars) error {
	for i, x := range b.X {
		seg, err := plotter.NewLine(plotter.XYs{{X: x, Y: b.Base}, {X: x, Y: b.Values[i]}})
		if err != nil {
			return fmt.Errorf("bar %d: %w", i, err)
		}
		seg.Color = b.Color.RGBA()
		seg.Width = vg.Points(4)
		p.Add(seg)
		if i == 0 && b.Name != "" {
			p.Legend.Add(b.Name, seg)
		}
	}
	return nil
}

func addMarkers(p *plot.Plot, markers []figure.Marker, xr, yr figure.Range) error {
	for _, m := range markers {
		pts := plotter.XYs{{X: xr.Min, Y: m.At}, {X: xr.Max, Y: m.At}}
		if m.Vertical {
			pts = plotter.XYs{{X: m.At, Y: yr.Min}, {X: m.At, Y: yr.Max}}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("marker %q: %w", m.Label, err)
		}
		line.Color = m.Color.RGBA()
		line.Dashes = dashes
		p.Add(line)
		if m.Label != "" {
			p.Legend.Add(m.Label, line)
		}
	}
	return nil
}

// square widens the narrower range so both spans match.
func square(xr, yr figure.Range) (figure.Range, figure.Range) {
	dx, dy := xr.Max-xr.Min, yr.Max-yr.Min
	if dx > dy {
		c := (yr.Min + yr.Max) / 2
		yr = figure.Range{Min: c - dx/2, Max: c + dx/2}
	} else {
		c := (xr.Min + xr.Max) / 2
		xr = figure.Range{Min: c - dy/2, Max: c + dy/2}
	}
	return xr, yr
}

// strip adapts a figure.Image to plotter.GridXYZ as a single row.
type strip struct{ img *figure.Image }

func (s strip) Dims() (int, int)   { return len(s.img.X), 1 }
func (s strip) Z(c, _ int) float64 { return s.img.Shade[c] }
func (s strip) X(c int) float64    { return s.img.X[c] }
func (s strip) Y(int) float64      { return 0 }

// greys runs from white (no shade) to black.
type greys int

func (g greys) Colors() []color.Color {
	n := int(g)
	out := make([]color.Color, n)
	for i := range out {
		v := uint8(255 - 255*i/(n-1))
		out[i] = color.Gray{Y: v}
	}
	return out
}
