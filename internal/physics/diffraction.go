package physics

import (
	"context"
	"math"
	"math/cmplx"

	"github.com/san-kum/physdemo/internal/dynamo"
	"github.com/san-kum/physdemo/internal/numeric"
)

// FresnelSlit computes the diffraction of a slit by direct Huygens-Fresnel
// integration, valid from the near field to the Fraunhofer regime.
type FresnelSlit struct {
	Width        float64 // a, m
	Wavelength   float64 // m
	Distance     float64 // slit to screen D, m
	SlitPoints   int
	ScreenPoints int     // samples on half the screen
	Extent       float64 // half screen is [0, Extent*a*D]
}

func DefaultFresnelSlit() FresnelSlit {
	return FresnelSlit{
		Width:        1e-3,
		Wavelength:   632.8e-9,
		Distance:     0.5,
		SlitPoints:   100,
		ScreenPoints: 500,
		Extent:       10,
	}
}

// FresnelNumber is (a/2)^2/(lambda D); values well below 1 mean
// Fraunhofer diffraction.
func (s FresnelSlit) FresnelNumber() float64 {
	half := s.Width / 2
	return half * half / (s.Wavelength * s.Distance)
}

func (s FresnelSlit) Validate() error {
	switch {
	case s.Width <= 0:
		return dynamo.OutOfBounds("a", s.Width, "slit width must be positive")
	case s.Wavelength <= 0:
		return dynamo.OutOfBounds("lambda", s.Wavelength, "wavelength must be positive")
	case s.Distance <= 0:
		return dynamo.OutOfBounds("D", s.Distance, "distance must be positive")
	case s.SlitPoints < 2 || s.ScreenPoints < 2:
		return dynamo.OutOfBounds("points", float64(min(s.SlitPoints, s.ScreenPoints)), "need at least 2 samples")
	}
	return nil
}

// Amplitude integrates exp(i 2 pi PM/lambda)/PM across the slit for the
// screen point X.
func (s FresnelSlit) Amplitude(xs []float64, X float64) complex128 {
	k := 2 * math.Pi / s.Wavelength
	f := make([]complex128, len(xs))
	for i, x := range xs {
		pm := math.Hypot(X-x, s.Distance)
		f[i] = cmplx.Rect(1/pm, k*pm)
	}
	return numeric.TrapzComplex(xs, f)
}

type DiffractionPattern struct {
	X         []float64
	Intensity []float64 // normalized to max 1
	Shade     []float64 // 1 - contrast(intensity), for the screen strip
}

// Pattern computes the half screen in parallel and mirrors it.
func (s FresnelSlit) Pattern(ctx context.Context) (*DiffractionPattern, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	xs := numeric.Linspace(-s.Width/2, s.Width/2, s.SlitPoints)
	half := numeric.Linspace(0, s.Extent*s.Width*s.Distance, s.ScreenPoints)
	intensity := make([]float64, len(half))

	err := dynamo.ParallelFor(ctx, len(half), 16, func(ctx context.Context, start, end int) error {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			a := s.Amplitude(xs, half[i])
			intensity[i] = real(a)*real(a) + imag(a)*imag(a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	n := len(half)
	out := &DiffractionPattern{
		X:         make([]float64, 2*n),
		Intensity: make([]float64, 2*n),
	}
	for i := 0; i < n; i++ {
		out.X[i], out.X[2*n-1-i] = -half[n-1-i], half[n-1-i]
		out.Intensity[i], out.Intensity[2*n-1-i] = intensity[n-1-i], intensity[n-1-i]
	}
	numeric.Normalize(out.Intensity)
	out.Shade = numeric.Eval(out.Intensity, func(y float64) float64 { return 1 - Contrast(y) })
	return out, nil
}

// Contrast stretches mid-range intensities, ((y-0.5)*1.6)^3 + 0.5, so faint
// fringes show on the screen strip.
func Contrast(y float64) float64 {
	d := (y - 0.5) * 1.6
	return d*d*d + 0.5
}
