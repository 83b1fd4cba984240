package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/physdemo/internal/figure"
)

// RenderOptions sizes the terminal rendering of a figure. Width and Height
// are in characters per panel.
type RenderOptions struct {
	Width  int
	Height int
	Camera *Camera
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.Width < 20 {
		o.Width = 80
	}
	if o.Height < 4 {
		o.Height = 12
	}
	if o.Camera == nil {
		o.Camera = NewCamera()
	}
	return o
}

// RenderFigure draws every panel of fig, one below the other, followed by
// the figure notes.
func RenderFigure(fig *figure.Figure, opts RenderOptions) string {
	opts = opts.withDefaults()
	var b strings.Builder
	b.WriteString(strings.ToUpper(fig.Title))
	b.WriteString("\n\n")
	for _, p := range fig.Panels {
		b.WriteString(RenderPanel(p, opts))
		b.WriteString("\n")
	}
	for _, note := range fig.Notes {
		b.WriteString("  ")
		b.WriteString(note)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderPanel picks a drawing for the panel: a shaded strip for images,
// sparklines for bars, the braille canvas for 3D, equal-aspect and
// parametric curves, and asciigraph for everything else.
func RenderPanel(p *figure.Panel, opts RenderOptions) string {
	opts = opts.withDefaults()
	var b strings.Builder
	if p.Title != "" {
		b.WriteString("  " + p.Title + "\n")
	}
	if p.Image != nil {
		b.WriteString(shadeStrip(p.Image, opts.Width, 2))
	}
	if p.Bars != nil {
		b.WriteString(barsLine(p.Bars, opts.Width))
	}

	visible := p.Visible()
	if len(visible) > 0 {
		switch {
		case p.ThreeD:
			c := NewCanvas(opts.Width, opts.Height)
			Render3D(c, p, opts.Camera, sceneExtent(p))
			b.WriteString(c.String())
		case p.Equal || !allMonotonic(p, visible):
			b.WriteString(brailleChart(p, visible, opts))
		default:
			b.WriteString(lineChart(p, visible, opts))
			b.WriteByte('\n')
		}
		b.WriteString(legend(visible))
	}
	if len(p.Markers) > 0 {
		b.WriteString(markerLine(p.Markers))
	}
	return b.String()
}

func allMonotonic(p *figure.Panel, series []*figure.Series) bool {
	for _, s := range series {
		x, _ := p.Finite(s)
		if !sort.Float64sAreSorted(x) {
			return false
		}
	}
	return true
}

// lineChart resamples every series onto a common grid of opts.Width columns,
// because asciigraph plots values against their index.
func lineChart(p *figure.Panel, series []*figure.Series, opts RenderOptions) string {
	xr, yr, ok := p.Bounds()
	if !ok {
		return "  (no data)\n"
	}
	grid := columnGrid(xr, opts.Width, p.LogX)
	logY := p.LogY && yr.Min > 0
	if logY {
		yr = figure.Range{Min: math.Log10(yr.Min), Max: math.Log10(yr.Max)}
	}
	scale, exp := yScale(yr)
	if logY {
		scale, exp = 1, 0
	}

	var data [][]float64
	var colors []asciigraph.AnsiColor
	var names []string
	for _, s := range series {
		x, y := p.Finite(s)
		col := resample(x, y, grid)
		if logY {
			for i, v := range col {
				col[i] = math.Log10(v)
			}
		}
		finite := false
		for i, v := range col {
			if v < yr.Min || v > yr.Max {
				col[i] = math.NaN()
				continue
			}
			if !math.IsNaN(v) {
				col[i] = v * scale
				finite = true
			}
		}
		if !finite {
			continue
		}
		data = append(data, col)
		colors = append(colors, ansiColor(s.Color))
		names = append(names, s.Name)
	}
	if len(data) == 0 {
		return "  (no data in range)\n"
	}

	caption := fmt.Sprintf("%s: %.4g .. %.4g", orDefault(p.XLabel, "x"), xr.Min, xr.Max)
	if p.YLabel != "" {
		caption += "   " + p.YLabel
	}
	if logY {
		caption += " (log10)"
	}
	if exp != 0 {
		caption += fmt.Sprintf(" (x1e%d)", exp)
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(opts.Height),
		asciigraph.LowerBound(yr.Min*scale),
		asciigraph.UpperBound(yr.Max*scale),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(caption),
	)
}

func columnGrid(xr figure.Range, n int, logX bool) []float64 {
	grid := make([]float64, n)
	lo, hi := xr.Min, xr.Max
	if logX && lo > 0 {
		lo, hi = math.Log10(lo), math.Log10(hi)
	}
	for i := range grid {
		grid[i] = lo + (hi-lo)*float64(i)/float64(n-1)
		if logX && xr.Min > 0 {
			grid[i] = math.Pow(10, grid[i])
		}
	}
	return grid
}

// resample linearly interpolates (x, y), x ascending, at grid. Grid points
// outside the data are NaN.
func resample(x, y, grid []float64) []float64 {
	out := make([]float64, len(grid))
	for i, g := range grid {
		out[i] = math.NaN()
		if len(x) == 0 || g < x[0] || g > x[len(x)-1] {
			continue
		}
		j := sort.SearchFloat64s(x, g)
		switch {
		case j < len(x) && x[j] == g:
			out[i] = y[j]
		case j == 0:
			out[i] = y[0]
		default:
			x0, x1 := x[j-1], x[j]
			t := (g - x0) / (x1 - x0)
			out[i] = y[j-1] + t*(y[j]-y[j-1])
		}
	}
	return out
}

// yScale brings very small or very large values to readable labels.
func yScale(yr figure.Range) (float64, int) {
	m := math.Max(math.Abs(yr.Min), math.Abs(yr.Max))
	if m == 0 || math.IsInf(m, 0) || math.IsNaN(m) {
		return 1, 0
	}
	exp := int(math.Floor(math.Log10(m)))
	if exp >= -2 && exp <= 5 {
		return 1, 0
	}
	return math.Pow(10, float64(-exp)), exp
}

func brailleChart(p *figure.Panel, series []*figure.Series, opts RenderOptions) string {
	xr, yr, ok := p.Bounds()
	if !ok {
		return "  (no data)\n"
	}
	c := NewCanvas(opts.Width, opts.Height)
	w, h := c.Dots()
	vp := Viewport{XMin: xr.Min, XMax: xr.Max, YMin: yr.Min, YMax: yr.Max}
	if p.Equal {
		vp = vp.Equalize(w, h)
	}
	for _, s := range series {
		x, y := p.Finite(s)
		c.Polyline(x, y, vp)
	}
	return fmt.Sprintf("%s  %s: %.4g .. %.4g   %s: %.4g .. %.4g\n",
		c.String(), orDefault(p.XLabel, "x"), vp.XMin, vp.XMax, orDefault(p.YLabel, "y"), vp.YMin, vp.YMax)
}

var shades = []rune(" ░▒▓█")

// shadeStrip draws the screen image as rows of block characters, dark where
// Shade is 1.
func shadeStrip(img *figure.Image, width, rows int) string {
	if len(img.Shade) == 0 {
		return ""
	}
	line := make([]rune, width)
	for i := range line {
		k := i * (len(img.Shade) - 1) / max(width-1, 1)
		v := math.Max(0, math.Min(1, img.Shade[k]))
		line[i] = shades[int(math.Round(v*float64(len(shades)-1)))]
	}
	var b strings.Builder
	for r := 0; r < rows; r++ {
		b.WriteString("  ")
		b.WriteString(string(line))
		b.WriteByte('\n')
	}
	return b.String()
}

func barsLine(bars *figure.Bars, width int) string {
	if len(bars.Values) == 0 {
		return ""
	}
	lo, hi := bars.Base, bars.Base
	for _, v := range bars.Values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	return fmt.Sprintf("  %s\n  %s: %d bars, %.3g .. %.3g\n",
		SparklineChart(bars.Values, min(width, len(bars.Values))), bars.Name, len(bars.Values), lo, hi)
}

func legend(series []*figure.Series) string {
	seen := make(map[string]bool)
	var items []string
	for _, s := range series {
		if seen[s.Name] || s.Name == "" {
			continue
		}
		seen[s.Name] = true
		style := "-"
		if s.Dashed {
			style = "--"
		}
		items = append(items, style+" "+s.Name)
	}
	if len(items) == 0 {
		return ""
	}
	return "  " + strings.Join(items, "   ") + "\n"
}

func markerLine(markers []figure.Marker) string {
	var parts []string
	for _, m := range markers {
		if m.Label == "" {
			continue
		}
		axis := "y"
		if m.Vertical {
			axis = "x"
		}
		parts = append(parts, fmt.Sprintf("%s@%s=%.4g", m.Label, axis, m.At))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  | " + strings.Join(parts, "  ") + "\n"
}

// ansiColor maps c to the xterm 256 color cube. Near black maps to the
// terminal default so curves stay visible on dark backgrounds.
func ansiColor(c figure.RGB) asciigraph.AnsiColor {
	if int(c.R)+int(c.G)+int(c.B) < 96 {
		return asciigraph.Default
	}
	q := func(v uint8) int { return int(math.Round(float64(v) / 255 * 5)) }
	return asciigraph.AnsiColor(16 + 36*q(c.R) + 6*q(c.G) + q(c.B))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
