package figure

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// View orients a 3D panel: Yaw turns about the vertical z axis, Pitch tips
// the scene toward the viewer.
type View struct {
	Yaw   float64
	Pitch float64
}

// DefaultView looks down on the xy plane from above the first octant.
var DefaultView = View{Yaw: -math.Pi / 6, Pitch: -math.Pi / 3}

// Rotate returns p in camera coordinates: x right, y up, z toward the viewer.
func (v View) Rotate(p r3.Vec) r3.Vec {
	p = r3.NewRotation(v.Yaw, r3.Vec{Z: 1}).Rotate(p)
	return r3.NewRotation(v.Pitch, r3.Vec{X: 1}).Rotate(p)
}

// Project is an orthographic projection of a series with Z. Series without
// Z are returned unchanged.
func (v View) Project(s *Series) (x, y []float64) {
	if s.Z == nil {
		return s.X, s.Y
	}
	x = make([]float64, len(s.X))
	y = make([]float64, len(s.X))
	for i := range s.X {
		q := v.Rotate(r3.Vec{X: s.X[i], Y: s.Y[i], Z: s.Z[i]})
		x[i], y[i] = q.X, q.Y
	}
	return x, y
}

// Axes returns the three unit axes as 3D series for drawing a frame.
func Axes(length float64) []*Series {
	return []*Series{
		{Name: "x", X: []float64{0, length}, Y: []float64{0, 0}, Z: []float64{0, 0}, Color: Gray},
		{Name: "y", X: []float64{0, 0}, Y: []float64{0, length}, Z: []float64{0, 0}, Color: Gray},
		{Name: "z", X: []float64{0, 0}, Y: []float64{0, 0}, Z: []float64{0, length}, Color: Gray},
	}
}
