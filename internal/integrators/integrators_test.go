package integrators

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/physdemo/internal/dynamo"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) StateDim() int { return 2 }

func (h *harmonicOscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (h *harmonicOscillator) Energy(x dynamo.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

func integrate(integ dynamo.Integrator, steps int, dt float64) dynamo.State {
	dyn := &harmonicOscillator{}
	x := dynamo.State{1.0, 0.0}
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}
	return x
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name string
		tol  float64
	}{
		{"euler", 1e-2},
		{"rk4", 1e-8},
		{"rk45", 1e-8},
		{"verlet", 1e-4},
		{"leapfrog", 1e-4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integ, err := New(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			x := integrate(integ, 100, 0.01)

			if got, want := x[0], math.Cos(1); math.Abs(got-want) > tt.tol {
				t.Errorf("position error too large: got %.8f, expected %.8f", got, want)
			}
			if got, want := x[1], -math.Sin(1); math.Abs(got-want) > tt.tol {
				t.Errorf("velocity error too large: got %.8f, expected %.8f", got, want)
			}
		})
	}
}

func TestRK45_EnergyConservation(t *testing.T) {
	dyn := &harmonicOscillator{}
	x := integrate(NewRK45(), 10000, 0.01)

	drift := math.Abs(dyn.Energy(x)-0.5) / 0.5
	if drift > 1e-6 {
		t.Errorf("RK45 energy drift too high: %e", drift)
	}
}

func TestRK45_AdaptiveStep(t *testing.T) {
	dyn := &harmonicOscillator{}
	x, taken, next, err := NewRK45().StepAdaptive(dyn, dynamo.State{1, 0}, 0, 1.0, 1e-10)
	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}
	if !x.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}
	if taken >= 1.0 {
		t.Errorf("expected a rejected first try at tol 1e-10, took dt=%f", taken)
	}
	if next <= 0 {
		t.Errorf("invalid suggested dt: %f", next)
	}
	if math.Abs(x[0]-math.Cos(taken)) > 1e-8 {
		t.Errorf("accepted step inaccurate: %f vs %f", x[0], math.Cos(taken))
	}
}

func TestRK45WithSimulator(t *testing.T) {
	sim := dynamo.New(&harmonicOscillator{}, NewRK45())
	cfg := dynamo.Config{Dt: 0.1, Duration: 2 * math.Pi, Adaptive: true, Tolerance: 1e-9, MinDt: 1e-9, MaxDt: 0.5}
	res, err := sim.Run(context.Background(), dynamo.State{1, 0}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	final := res.States[len(res.States)-1]
	if math.Abs(final[0]-1) > 1e-6 || math.Abs(final[1]) > 1e-6 {
		t.Errorf("expected return to (1, 0) after one period, got %v", final)
	}
	if res.EnergyDrift > 1e-6 {
		t.Errorf("energy drift %e", res.EnergyDrift)
	}
}

func TestVerletLongRunBounded(t *testing.T) {
	dyn := &harmonicOscillator{}
	x := integrate(NewVerlet(), 100000, 0.05)
	if e := dyn.Energy(x); math.Abs(e-0.5) > 1e-3 {
		t.Errorf("symplectic energy error too large: %f", e)
	}
}

func TestUnknownIntegrator(t *testing.T) {
	if _, err := New("midpoint"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func BenchmarkRK4(b *testing.B) {
	integ := NewRK4()
	dyn := &harmonicOscillator{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkRK45(b *testing.B) {
	integ := NewRK45()
	dyn := &harmonicOscillator{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(dyn, x, 0, 0.01)
	}
}
