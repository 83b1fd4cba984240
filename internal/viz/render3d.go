package viz

import (
	"math"

	"github.com/san-kum/physdemo/internal/figure"
)

// Camera orients and scales 3D panels. It wraps a figure.View so the terminal
// and the file renderer agree on the default orientation.
type Camera struct {
	View figure.View
	Zoom float64
}

func NewCamera() *Camera {
	return &Camera{View: figure.DefaultView, Zoom: 1}
}

func (c *Camera) RotateYaw(a float64)   { c.View.Yaw += a }
func (c *Camera) RotatePitch(a float64) { c.View.Pitch += a }
func (c *Camera) ZoomIn()               { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()              { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) Reset() {
	c.View = figure.DefaultView
	c.Zoom = 1
}

// Project returns the screen coordinates of s, scaled by the zoom.
func (c *Camera) Project(s *figure.Series) (x, y []float64) {
	px, py := c.View.Project(s)
	x = make([]float64, len(px))
	y = make([]float64, len(py))
	for i := range px {
		x[i] = px[i] * c.Zoom
		y[i] = py[i] * c.Zoom
	}
	return x, y
}

// Render3D draws the visible series of a 3D panel into c. The viewport is a
// fixed cube of half width extent so rotating does not rescale the scene.
func Render3D(c *Canvas, p *figure.Panel, cam *Camera, extent float64) {
	if c == nil || p == nil || cam == nil {
		return
	}
	w, h := c.Dots()
	vp := Viewport{XMin: -extent, XMax: extent, YMin: -extent, YMax: extent}.Equalize(w, h)
	for _, s := range p.Visible() {
		x, y := cam.Project(s)
		c.Polyline(x, y, vp)
	}
}

// sceneExtent is the largest coordinate magnitude of the panel's series.
func sceneExtent(p *figure.Panel) float64 {
	m := 0.0
	for _, s := range p.Visible() {
		for _, arr := range [][]float64{s.X, s.Y, s.Z} {
			for _, v := range arr {
				if !math.IsNaN(v) && !math.IsInf(v, 0) {
					m = math.Max(m, math.Abs(v))
				}
			}
		}
	}
	if m == 0 {
		return 1
	}
	return 1.1 * m
}
