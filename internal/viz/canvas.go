package viz

import (
	"math"
	"strings"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a character grid addressed in braille sub-pixels, so a w x h
// canvas has 2w x 4h dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in sub-pixels.
func (c *Canvas) Dots() (int, int) { return 2 * c.Width, 4 * c.Height }

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] &^= pixelMap[y%4][x%2]
	c.Grid[row][col] |= brailleBlank
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a segment with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Viewport maps data coordinates onto the dots of a canvas.
type Viewport struct {
	XMin, XMax, YMin, YMax float64
}

// Equalize widens the shorter side so one data unit spans the same number
// of dots in x and y on a w x h dot grid.
func (v Viewport) Equalize(w, h int) Viewport {
	sx := (v.XMax - v.XMin) / float64(w)
	sy := (v.YMax - v.YMin) / float64(h)
	switch {
	case sx > sy:
		pad := (sx*float64(h) - (v.YMax - v.YMin)) / 2
		v.YMin, v.YMax = v.YMin-pad, v.YMax+pad
	case sy > sx:
		pad := (sy*float64(w) - (v.XMax - v.XMin)) / 2
		v.XMin, v.XMax = v.XMin-pad, v.XMax+pad
	}
	return v
}

func (v Viewport) dot(x, y float64, w, h int) (int, int, bool) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, false
	}
	dx, dy := v.XMax-v.XMin, v.YMax-v.YMin
	if dx == 0 {
		dx = 1
	}
	if dy == 0 {
		dy = 1
	}
	px := (x - v.XMin) / dx * float64(w-1)
	py := (v.YMax - y) / dy * float64(h-1)
	// keep far points from overflowing int while still clipping
	px = math.Max(-float64(w), math.Min(2*float64(w), px))
	py = math.Max(-float64(h), math.Min(2*float64(h), py))
	return int(math.Round(px)), int(math.Round(py)), true
}

// Polyline draws the path through (xs[i], ys[i]), breaking at non-finite
// points.
func (c *Canvas) Polyline(xs, ys []float64, v Viewport) {
	w, h := c.Dots()
	havePrev := false
	var px, py int
	for i := range xs {
		if i >= len(ys) {
			break
		}
		x, y, ok := v.dot(xs[i], ys[i], w, h)
		if !ok {
			havePrev = false
			continue
		}
		if havePrev {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py, havePrev = x, y, true
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
