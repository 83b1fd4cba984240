package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/physdemo/internal/dynamo"
	"github.com/san-kum/physdemo/internal/integrators"
)

func sampled(n int, dt float64, f func(t float64) float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f(float64(i) * dt)
	}
	return out
}

func TestAmplitudeSpectrum(t *testing.T) {
	n, dt := 1000, 0.01
	x := sampled(n, dt, func(t float64) float64 {
		return 3*math.Cos(2*math.Pi*5*t) + 0.5*math.Sin(2*math.Pi*20*t)
	})
	amp := AmplitudeSpectrum(x)
	freqs := Frequencies(n, dt)

	tests := []struct {
		freq, amp float64
	}{
		{5, 3},
		{20, 0.5},
	}
	for _, tt := range tests {
		k := int(math.Round(tt.freq * float64(n) * dt))
		if math.Abs(freqs[k]-tt.freq) > 1e-9 {
			t.Fatalf("bin %d is %f Hz, want %f", k, freqs[k], tt.freq)
		}
		if math.Abs(amp[k]-tt.amp) > 1e-8 {
			t.Errorf("amplitude at %f Hz = %f, want %f", tt.freq, amp[k], tt.amp)
		}
	}
	if amp[7] > 1e-8 {
		t.Errorf("leakage in empty bin: %g", amp[7])
	}
}

func TestAmplitudeSpectrumMean(t *testing.T) {
	x := sampled(64, 0.1, func(t float64) float64 { return 1.5 + math.Cos(2*math.Pi*t) })
	amp := AmplitudeSpectrum(x)
	if math.Abs(amp[0]-1.5) > 1e-12 {
		t.Errorf("DC bin = %g, want the mean 1.5", amp[0])
	}
	if math.Abs(amp[4]-1.0) > 1e-12 {
		t.Errorf("1 Hz bin = %g, want 1", amp[4])
	}
}

func TestDominantBinAboveQuarterRate(t *testing.T) {
	n, dt := 1000, 0.001
	x := sampled(n, dt, func(t float64) float64 {
		return 0.3*math.Sin(2*math.Pi*36*t) + math.Sin(2*math.Pi*300*t)
	})
	freqs := Frequencies(n, dt)
	if got := freqs[DominantBin(AmplitudeSpectrum(x))]; math.Abs(got-300) > 1e-9 {
		t.Errorf("dominant frequency = %g Hz, want 300", got)
	}
	if DominantBin([]float64{5}) != 0 {
		t.Error("single bin should give 0")
	}
}

func TestSignedFrequencies(t *testing.T) {
	f := SignedFrequencies(8, 0.125)
	want := []float64{0, 1, 2, 3, -4, -3, -2, -1}
	for i := range want {
		if math.Abs(f[i]-want[i]) > 1e-12 {
			t.Fatalf("got %v, want %v", f, want)
		}
	}
}

func TestBandLimit(t *testing.T) {
	n := 256
	x := sampled(n, 1.0/float64(n), func(t float64) float64 {
		return math.Cos(2*math.Pi*t) + 0.3*math.Cos(2*math.Pi*7*t)
	})

	full := BandLimit(x, n)
	for i := range x {
		if math.Abs(full[i]-x[i]) > 1e-9 {
			t.Fatalf("full reconstruction differs at %d: %f vs %f", i, full[i], x[i])
		}
	}

	low := BandLimit(x, 3)
	for i := range x {
		want := math.Cos(2 * math.Pi * float64(i) / float64(n))
		if math.Abs(low[i]-want) > 1e-9 {
			t.Fatalf("harmonic 7 not removed at %d: %f vs %f", i, low[i], want)
		}
	}
}

func TestApplyTransferLowPass(t *testing.T) {
	n, dt := 4000, 1e-3
	x := sampled(n, dt, func(t float64) float64 {
		return math.Cos(2*math.Pi*10*t) + math.Cos(2*math.Pi*150*t)
	})
	y := ApplyTransfer(x, dt, FirstOrderLowPass(10))
	amp := AmplitudeSpectrum(y)

	k10 := 10 * n / 1000
	k150 := 150 * n / 1000
	if math.Abs(amp[k10]-1/math.Sqrt2) > 1e-6 {
		t.Errorf("|H(fc)| should be 1/√2, got %f", amp[k10])
	}
	if want := 1 / math.Sqrt(1+15*15); math.Abs(amp[k150]-want) > 1e-6 {
		t.Errorf("|H(150)| = %f, want %f", amp[k150], want)
	}
}

func TestDecibels(t *testing.T) {
	db := Decibels([]float64{1, 10, 0}, -120)
	if db[0] != 0 || math.Abs(db[1]-20) > 1e-12 || db[2] != -120 {
		t.Errorf("got %v", db)
	}
}

type drivenPendulum struct {
	damping, drive, omega float64
}

func (d drivenPendulum) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -d.damping*x[1] - math.Sin(x[0]) + d.drive*math.Cos(d.omega*t)}
}
func (d drivenPendulum) StateDim() int { return 2 }

type harmonic struct{}

func (harmonic) Derive(x dynamo.State, t float64) dynamo.State { return dynamo.State{x[1], -x[0]} }
func (harmonic) StateDim() int                                 { return 2 }

func TestStroboscopicSection(t *testing.T) {
	res, err := dynamo.New(harmonic{}, integrators.NewRK4()).Run(context.Background(), dynamo.State{1, 0}, dynamo.Config{Dt: 0.01, Duration: 10 * 2 * math.Pi})
	if err != nil {
		t.Fatal(err)
	}
	xs, ys := StroboscopicSection(res, 0, 1, 2*math.Pi, 0)
	if len(xs) < 9 {
		t.Fatalf("expected about 10 section points, got %d", len(xs))
	}
	for i := range xs {
		if math.Abs(xs[i]-1) > 1e-3 || math.Abs(ys[i]) > 1e-3 {
			t.Errorf("periodic orbit should section to (1, 0), got (%f, %f)", xs[i], ys[i])
		}
	}
}

func TestPhasePortrait(t *testing.T) {
	res := &dynamo.Result{States: []dynamo.State{{1, 2}, {3, 4}}, Times: []float64{0, 1}}
	xs, ys := PhasePortrait(res, 0, 1)
	if len(xs) != 2 || xs[1] != 3 || ys[1] != 4 {
		t.Errorf("got %v %v", xs, ys)
	}
	if xs, _ := PhasePortrait(res, 5, 1); xs != nil {
		t.Error("out of range index should give nil")
	}
}

func TestLyapunovExponent(t *testing.T) {
	regular := LyapunovExponent(harmonic{}, integrators.NewRK4(), dynamo.State{1, 0}, 0.01, 200, 1e-8)
	if math.Abs(regular) > 0.05 {
		t.Errorf("harmonic oscillator should have λ≈0, got %f", regular)
	}

	chaotic := drivenPendulum{damping: 0.5, drive: 1.5, omega: 2.0 / 3}
	lambda := LyapunovExponent(chaotic, integrators.NewRK4(), dynamo.State{0.2, 0}, 0.01, 1000, 1e-8)
	if lambda <= 0.03 {
		t.Errorf("driven damped pendulum should be chaotic, λ=%f", lambda)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{-math.Pi / 2, -math.Pi / 2},
		{2*math.Pi + 0.1, 0.1},
	}
	for _, tt := range tests {
		if got := WrapAngle(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("WrapAngle(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}
