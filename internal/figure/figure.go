// Package figure is the renderer-agnostic result of a demonstration: a stack
// of panels holding line series, bar sets, markers and intensity strips.
// The terminal renderer in viz and the file renderer in export both consume
// it.
package figure

import (
	"fmt"
	"math"

	"github.com/san-kum/physdemo/internal/dynamo"
)

type Figure struct {
	Title  string   `json:"title"`
	Panels []*Panel `json:"panels"`
	Notes  []string `json:"notes,omitempty"`
}

type Panel struct {
	Title   string    `json:"title,omitempty"`
	XLabel  string    `json:"x_label,omitempty"`
	YLabel  string    `json:"y_label,omitempty"`
	Series  []*Series `json:"series,omitempty"`
	Bars    *Bars     `json:"bars,omitempty"`
	Markers []Marker  `json:"markers,omitempty"`
	Image   *Image    `json:"image,omitempty"`
	XRange  *Range    `json:"x_range,omitempty"`
	YRange  *Range    `json:"y_range,omitempty"`
	LogX    bool      `json:"log_x,omitempty"`
	LogY    bool      `json:"log_y,omitempty"`
	// Equal keeps one unit the same length on both axes (orbits, phase
	// portraits).
	Equal bool `json:"equal,omitempty"`
	// ThreeD panels draw series with Z through a View projection.
	ThreeD bool `json:"three_d,omitempty"`
}

type Series struct {
	Name   string    `json:"name"`
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
	Z      []float64 `json:"z,omitempty"`
	Color  RGB       `json:"color"`
	Dashed bool      `json:"dashed,omitempty"`
	Hidden bool      `json:"hidden,omitempty"`
}

// Bars is a bar chart over categorical positions X. Values below Base are
// drawn down to Base.
type Bars struct {
	Name   string    `json:"name"`
	X      []float64 `json:"x"`
	Values []float64 `json:"values"`
	Base   float64   `json:"base"`
	Color  RGB       `json:"color"`
}

// Marker is a reference line: vertical at X=At, or horizontal at Y=At.
type Marker struct {
	At       float64 `json:"at"`
	Label    string  `json:"label,omitempty"`
	Vertical bool    `json:"vertical"`
	Color    RGB     `json:"color"`
}

// Image is a one-row strip over X. Shade is darkness, 0 white and 1 black;
// values outside [0, 1] are clipped.
type Image struct {
	X     []float64 `json:"x"`
	Shade []float64 `json:"shade"`
}

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func New(title string) *Figure {
	return &Figure{Title: title}
}

// AddPanel appends an empty panel and returns it.
func (f *Figure) AddPanel(title, xlabel, ylabel string) *Panel {
	p := &Panel{Title: title, XLabel: xlabel, YLabel: ylabel}
	f.Panels = append(f.Panels, p)
	return p
}

func (f *Figure) Notef(format string, args ...any) {
	f.Notes = append(f.Notes, fmt.Sprintf(format, args...))
}

// Line appends a series colored from the palette by its position in the
// panel.
func (p *Panel) Line(name string, x, y []float64) *Series {
	s := &Series{Name: name, X: x, Y: y, Color: Palette(len(p.Series))}
	p.Series = append(p.Series, s)
	return s
}

// Line3 appends a series with depth and turns the panel into a 3D view.
func (p *Panel) Line3(name string, x, y, z []float64) *Series {
	s := p.Line(name, x, y)
	s.Z = z
	p.ThreeD = true
	return s
}

func (p *Panel) Mark(at float64, label string, vertical bool, c RGB) {
	p.Markers = append(p.Markers, Marker{At: at, Label: label, Vertical: vertical, Color: c})
}

func (p *Panel) SetXRange(min, max float64) { p.XRange = &Range{Min: min, Max: max} }
func (p *Panel) SetYRange(min, max float64) { p.YRange = &Range{Min: min, Max: max} }

// Validate checks that every series has matching X and Y lengths.
func (f *Figure) Validate() error {
	for i, p := range f.Panels {
		for _, s := range p.Series {
			if len(s.X) != len(s.Y) {
				return fmt.Errorf("panel %d series %q: %d x vs %d y: %w", i, s.Name, len(s.X), len(s.Y), dynamo.ErrDimensionMismatch)
			}
			if s.Z != nil && len(s.Z) != len(s.X) {
				return fmt.Errorf("panel %d series %q: %d x vs %d z: %w", i, s.Name, len(s.X), len(s.Z), dynamo.ErrDimensionMismatch)
			}
		}
		if b := p.Bars; b != nil && len(b.X) != len(b.Values) {
			return fmt.Errorf("panel %d bars %q: %d x vs %d values: %w", i, b.Name, len(b.X), len(b.Values), dynamo.ErrDimensionMismatch)
		}
		if img := p.Image; img != nil && len(img.X) != len(img.Shade) {
			return fmt.Errorf("panel %d image: %d x vs %d shades: %w", i, len(img.X), len(img.Shade), dynamo.ErrDimensionMismatch)
		}
	}
	return nil
}

// SeriesNames lists distinct series names in panel order. The TUI binds
// digit keys to this order.
func (f *Figure) SeriesNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, p := range f.Panels {
		for _, s := range p.Series {
			if !seen[s.Name] {
				seen[s.Name] = true
				names = append(names, s.Name)
			}
		}
	}
	return names
}

// Toggle flips the visibility of every series whose name is set in
// toggled. Series a demo hides by default become visible.
func (f *Figure) Toggle(toggled map[string]bool) {
	for _, p := range f.Panels {
		for _, s := range p.Series {
			if toggled[s.Name] {
				s.Hidden = !s.Hidden
			}
		}
	}
}

// Visible returns the panel's series that are not hidden.
func (p *Panel) Visible() []*Series {
	out := make([]*Series, 0, len(p.Series))
	for _, s := range p.Series {
		if !s.Hidden {
			out = append(out, s)
		}
	}
	return out
}

// Finite returns the points of s where both coordinates are finite, and
// positive where the axis is logarithmic.
func (p *Panel) Finite(s *Series) (x, y []float64) {
	x = make([]float64, 0, len(s.X))
	y = make([]float64, 0, len(s.Y))
	for i := range s.X {
		if i >= len(s.Y) {
			break
		}
		xv, yv := s.X[i], s.Y[i]
		if !isFinite(xv) || !isFinite(yv) {
			continue
		}
		if (p.LogX && xv <= 0) || (p.LogY && yv <= 0) {
			continue
		}
		x = append(x, xv)
		y = append(y, yv)
	}
	return x, y
}

// Bounds is the data extent of the visible series, bars and image,
// overridden by XRange and YRange.
func (p *Panel) Bounds() (xr, yr Range, ok bool) {
	xr = Range{Min: math.Inf(1), Max: math.Inf(-1)}
	yr = xr
	grow := func(r *Range, v float64) {
		r.Min = math.Min(r.Min, v)
		r.Max = math.Max(r.Max, v)
	}
	for _, s := range p.Visible() {
		x, y := p.Finite(s)
		for i := range x {
			grow(&xr, x[i])
			grow(&yr, y[i])
		}
	}
	if b := p.Bars; b != nil {
		for i := range b.X {
			grow(&xr, b.X[i])
			grow(&yr, b.Values[i])
		}
		grow(&yr, b.Base)
	}
	if img := p.Image; img != nil {
		for _, x := range img.X {
			grow(&xr, x)
		}
	}
	if p.XRange != nil {
		xr = *p.XRange
	}
	if p.YRange != nil {
		yr = *p.YRange
	}
	ok = xr.Min <= xr.Max && yr.Min <= yr.Max
	return xr, yr, ok
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
