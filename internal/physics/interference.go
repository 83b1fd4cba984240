package physics

import (
	"math"

	"github.com/san-kum/physdemo/internal/dynamo"
	"github.com/san-kum/physdemo/internal/numeric"
)

// CoefficientOfFinesse is F = 4R/(1-R)^2 for mirror reflectivity R.
func CoefficientOfFinesse(R float64) (float64, error) {
	if R < 0 || R >= 1 || math.IsNaN(R) {
		return 0, dynamo.OutOfBounds("R", R, "reflectivity must be in [0, 1)")
	}
	return 4 * R / ((1 - R) * (1 - R)), nil
}

// Finesse is the ratio of free spectral range to peak width, pi sqrt(F)/2.
func Finesse(R float64) (float64, error) {
	F, err := CoefficientOfFinesse(R)
	if err != nil {
		return 0, err
	}
	return math.Pi * math.Sqrt(F) / 2, nil
}

// Airy is the transmitted intensity of a Fabry-Perot cavity,
// I/I0 = 1/(1 + F sin^2(phi/2)), for round-trip phase phi.
func Airy(phi, F float64) float64 {
	s := math.Sin(phi / 2)
	return 1 / (1 + F*s*s)
}

// FabryPerot evaluates the Airy function for reflectivity R over phis.
func FabryPerot(phis []float64, R float64) ([]float64, error) {
	F, err := CoefficientOfFinesse(R)
	if err != nil {
		return nil, err
	}
	return numeric.Eval(phis, func(phi float64) float64 { return Airy(phi, F) }), nil
}

// Grating is an array of Slits identical slits of width Width spaced by
// Pitch, observed in the focal plane of a lens of focal length Focal.
type Grating struct {
	Slits      int
	Width      float64
	Pitch      float64
	Wavelength float64
	Focal      float64
}

func DefaultGrating() Grating {
	return Grating{Slits: 2, Width: 1e-6, Pitch: 2e-5, Wavelength: 632e-9, Focal: 1}
}

func (g Grating) Validate() error {
	switch {
	case g.Slits < 1:
		return dynamo.OutOfBounds("N", float64(g.Slits), "need at least one slit")
	case g.Width <= 0:
		return dynamo.OutOfBounds("width", g.Width, "must be positive")
	case g.Pitch < g.Width:
		return dynamo.OutOfBounds("pitch", g.Pitch, "slits cannot overlap")
	case g.Wavelength <= 0 || g.Focal <= 0:
		return dynamo.OutOfBounds("wavelength", g.Wavelength, "wavelength and focal must be positive")
	}
	return nil
}

// Envelope is the single-slit diffraction factor sinc^2(pi w X/(lambda f)).
func (g Grating) Envelope(X float64) float64 {
	s := numeric.Sinc(math.Pi * g.Width * X / (g.Wavelength * g.Focal))
	return s * s
}

// ArrayFactor is (sin(N v)/(N sin v))^2 with v = pi p X/(lambda f); it
// equals 1 on the principal maxima.
func (g Grating) ArrayFactor(X float64) float64 {
	v := math.Pi * g.Pitch * X / (g.Wavelength * g.Focal)
	n := float64(g.Slits)
	s := math.Sin(v)
	if math.Abs(s) < 1e-9 {
		return 1
	}
	r := math.Sin(n*v) / (n * s)
	return r * r
}

// Intensity is the normalized pattern, 1 at X = 0.
func (g Grating) Intensity(X float64) float64 {
	return g.Envelope(X) * g.ArrayFactor(X)
}
