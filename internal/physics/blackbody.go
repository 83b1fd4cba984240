package physics

import (
	"image/color"
	"math"

	"github.com/san-kum/physdemo/internal/dynamo"
)

// Spectral radiance per unit frequency, W sr^-1 m^-2 Hz^-1.

func PlanckNu(nu, T float64) float64 {
	x := Planck * nu / (Boltzmann * T)
	return 2 * Planck * nu * nu * nu / (SpeedOfLight * SpeedOfLight) / math.Expm1(x)
}

// RayleighJeansNu is the h nu << kT limit of PlanckNu.
func RayleighJeansNu(nu, T float64) float64 {
	return 2 * Boltzmann * T * nu * nu / (SpeedOfLight * SpeedOfLight)
}

// WienNu is the h nu >> kT limit of PlanckNu.
func WienNu(nu, T float64) float64 {
	x := Planck * nu / (Boltzmann * T)
	return 2 * Planck * nu * nu * nu / (SpeedOfLight * SpeedOfLight) * math.Exp(-x)
}

// Spectral radiance per unit wavelength, W sr^-1 m^-3.

func PlanckLambda(lambda, T float64) float64 {
	x := Planck * SpeedOfLight / (lambda * Boltzmann * T)
	return 2 * Planck * SpeedOfLight * SpeedOfLight / math.Pow(lambda, 5) / math.Expm1(x)
}

func RayleighJeansLambda(lambda, T float64) float64 {
	return 2 * SpeedOfLight * Boltzmann * T / math.Pow(lambda, 4)
}

func WienLambda(lambda, T float64) float64 {
	x := Planck * SpeedOfLight / (lambda * Boltzmann * T)
	return 2 * Planck * SpeedOfLight * SpeedOfLight / math.Pow(lambda, 5) * math.Exp(-x)
}

// PeakFrequency is the maximum of PlanckNu.
func PeakFrequency(T float64) float64 {
	return WienNuCoefficient * Boltzmann * T / Planck
}

// PeakWavelength is the maximum of PlanckLambda.
func PeakWavelength(T float64) float64 {
	return WienLambdaConstant / T
}

// RadiationLaws evaluates the three laws on a frequency grid.
type RadiationLaws struct {
	Planck, RayleighJeans, Wien []float64
}

func BlackbodySpectrum(nus []float64, T float64) (*RadiationLaws, error) {
	if T <= 0 {
		return nil, dynamo.OutOfBounds("T", T, "temperature must be positive")
	}
	out := &RadiationLaws{
		Planck:        make([]float64, len(nus)),
		RayleighJeans: make([]float64, len(nus)),
		Wien:          make([]float64, len(nus)),
	}
	for i, nu := range nus {
		out.Planck[i] = PlanckNu(nu, T)
		out.RayleighJeans[i] = RayleighJeansNu(nu, T)
		out.Wien[i] = WienNu(nu, T)
	}
	return out, nil
}

// SpectralLine marks a color band of the visible spectrum.
type SpectralLine struct {
	Name      string
	Frequency float64
	Color     color.RGBA
}

var VisibleSpectrum = []SpectralLine{
	{"violet", 7.0e14, color.RGBA{R: 0x8b, G: 0x00, B: 0xff, A: 0xff}},
	{"indigo", 6.7e14, color.RGBA{R: 0x4b, G: 0x00, B: 0x82, A: 0xff}},
	{"blue", 6.0e14, color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}},
	{"cyan", 5.8e14, color.RGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff}},
	{"green", 5.3e14, color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}},
	{"yellow", 5.1e14, color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}},
	{"orange", 4.8e14, color.RGBA{R: 0xff, G: 0x7f, B: 0x00, A: 0xff}},
	{"red", 4.05e14, color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}},
}
