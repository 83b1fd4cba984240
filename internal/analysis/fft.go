package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum returns the discrete Fourier transform of a real signal.
// Any length is accepted.
func Spectrum(x []float64) []complex128 {
	if len(x) == 0 {
		return nil
	}
	return fft.FFTReal(x)
}

// AmplitudeSpectrum returns 2/N |X_k| for the positive frequencies k < N/2,
// i.e. the amplitude of each sinusoidal component. Bin 0 is the mean, 1/N |X_0|.
func AmplitudeSpectrum(x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}
	spec := Spectrum(x)
	out := make([]float64, n/2)
	for k := range out {
		out[k] = 2 / float64(n) * cmplx.Abs(spec[k])
	}
	if len(out) > 0 {
		out[0] /= 2
	}
	return out
}

// DominantBin is the index of the largest amplitude past the DC bin, or 0
// when there is none.
func DominantBin(amp []float64) int {
	if len(amp) < 2 {
		return 0
	}
	peak := 1
	for k := 2; k < len(amp); k++ {
		if amp[k] > amp[peak] {
			peak = k
		}
	}
	return peak
}

// Frequencies returns the positive frequency axis k/(N dt) for k < N/2.
func Frequencies(n int, dt float64) []float64 {
	out := make([]float64, n/2)
	for k := range out {
		out[k] = float64(k) / (float64(n) * dt)
	}
	return out
}

// SignedFrequencies returns the frequency of every FFT bin, negative
// frequencies in the upper half.
func SignedFrequencies(n int, dt float64) []float64 {
	out := make([]float64, n)
	for k := range out {
		m := k
		if k > (n-1)/2 {
			m = k - n
		}
		out[k] = float64(m) / (float64(n) * dt)
	}
	return out
}

// Decibels converts magnitudes to 20 log10(|v|). Zero magnitudes are clamped
// to floor dB.
func Decibels(mag []float64, floor float64) []float64 {
	out := make([]float64, len(mag))
	for i, v := range mag {
		if v <= 0 {
			out[i] = floor
			continue
		}
		out[i] = math.Max(floor, 20*math.Log10(math.Abs(v)))
	}
	return out
}

// BandLimit rebuilds x from its harmonics 0..maxHarmonic, keeping the
// matching negative frequency bins so the result stays real.
func BandLimit(x []float64, maxHarmonic int) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}
	spec := Spectrum(x)
	for k := range spec {
		h := k
		if k > n/2 {
			h = n - k
		}
		if h > maxHarmonic {
			spec[k] = 0
		}
	}
	return realPart(fft.IFFT(spec))
}

// ApplyTransfer filters x sampled every dt by the frequency response h.
func ApplyTransfer(x []float64, dt float64, h func(f float64) complex128) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}
	spec := Spectrum(x)
	for k, f := range SignedFrequencies(n, dt) {
		spec[k] *= h(f)
	}
	return realPart(fft.IFFT(spec))
}

// FirstOrderLowPass is H(f) = 1/(1 + j f/fc).
func FirstOrderLowPass(fc float64) func(float64) complex128 {
	return func(f float64) complex128 {
		return 1 / complex(1, f/fc)
	}
}

func realPart(c []complex128) []float64 {
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}
	return out
}
