package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/physdemo/internal/figure"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes one x and one y column per visible series, padded with
// empty cells where series are shorter.
func WriteCSV(w io.Writer, fig *figure.Figure) error {
	type column struct {
		header string
		values []float64
	}
	var cols []column
	rows := 0
	for i, p := range fig.Panels {
		for _, s := range p.Visible() {
			x, y := p.Finite(s)
			name := fmt.Sprintf("%d:%s", i, s.Name)
			cols = append(cols, column{name + ":x", x}, column{name + ":y", y})
			rows = max(rows, len(x))
		}
	}

	cw := csv.NewWriter(w)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.header
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	record := make([]string, len(cols))
	for r := 0; r < rows; r++ {
		for i, c := range cols {
			record[i] = ""
			if r < len(c.values) {
				record[i] = formatFloat(c.values[r])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Point is one row of the long series format.
type Point struct {
	Panel  int
	Series string
	X, Y   float64
}

var longHeader = []string{"panel", "series", "x", "y"}

// WriteSeriesCSV writes every visible series point as a panel, series, x, y
// row.
func WriteSeriesCSV(w io.Writer, fig *figure.Figure) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(longHeader); err != nil {
		return err
	}
	for i, p := range fig.Panels {
		for _, s := range p.Visible() {
			x, y := p.Finite(s)
			for k := range x {
				rec := []string{strconv.Itoa(i), s.Name, formatFloat(x[k]), formatFloat(y[k])}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadSeriesCSV parses the output of WriteSeriesCSV.
func ReadSeriesCSV(r io.Reader) ([]Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(longHeader)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("series csv: missing header")
	}
	out := make([]Point, 0, len(records)-1)
	for i, rec := range records[1:] {
		panel, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("series csv row %d: %w", i+2, err)
		}
		x, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("series csv row %d: %w", i+2, err)
		}
		y, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("series csv row %d: %w", i+2, err)
		}
		out = append(out, Point{Panel: panel, Series: rec[1], X: x, Y: y})
	}
	return out, nil
}

// FigureFromPoints rebuilds a line-only figure from long format rows,
// keeping first-seen panel and series order.
func FigureFromPoints(title string, points []Point) *figure.Figure {
	fig := figure.New(title)
	panels := make(map[int]*figure.Panel)
	series := make(map[int]map[string]*figure.Series)
	var order []int
	for _, pt := range points {
		p, ok := panels[pt.Panel]
		if !ok {
			p = &figure.Panel{Title: fmt.Sprintf("panel %d", pt.Panel)}
			panels[pt.Panel] = p
			series[pt.Panel] = make(map[string]*figure.Series)
			order = append(order, pt.Panel)
		}
		s, ok := series[pt.Panel][pt.Series]
		if !ok {
			s = p.Line(pt.Series, nil, nil)
			series[pt.Panel][pt.Series] = s
		}
		s.X = append(s.X, pt.X)
		s.Y = append(s.Y, pt.Y)
	}
	for _, i := range order {
		fig.Panels = append(fig.Panels, panels[i])
	}
	return fig
}

// WriteJSON writes the figure with non-finite points removed, since JSON
// has no NaN.
func WriteJSON(w io.Writer, fig *figure.Figure) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(finiteCopy(fig))
}

func finiteCopy(fig *figure.Figure) *figure.Figure {
	out := &figure.Figure{Title: fig.Title, Notes: fig.Notes}
	for _, p := range fig.Panels {
		cp := *p
		cp.Series = make([]*figure.Series, 0, len(p.Series))
		for _, s := range p.Series {
			sc := *s
			sc.Z = nil
			if s.Z != nil {
				sc.X, sc.Y, sc.Z = finite3(s)
			} else {
				sc.X, sc.Y = p.Finite(s)
			}
			cp.Series = append(cp.Series, &sc)
		}
		out.Panels = append(out.Panels, &cp)
	}
	return out
}

func finite3(s *figure.Series) (x, y, z []float64) {
	ok := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	for i := range s.X {
		if i < len(s.Y) && i < len(s.Z) && ok(s.X[i]) && ok(s.Y[i]) && ok(s.Z[i]) {
			x = append(x, s.X[i])
			y = append(y, s.Y[i])
			z = append(z, s.Z[i])
		}
	}
	return x, y, z
}
