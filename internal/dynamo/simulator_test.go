package dynamo

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
)

type decay struct{}

func (decay) Derive(x State, t float64) State { return State{-x[0]} }
func (decay) StateDim() int                   { return 1 }

type eulerStep struct{}

func (eulerStep) Step(sys System, x State, t, dt float64) State {
	return x.AddScaled(dt, sys.Derive(x, t))
}

// stopAt ends a run once x drops below a threshold.
type stopAt struct {
	decay
	below float64
}

func (s stopAt) Done(x State, t float64) bool { return x[0] < s.below }

// floor clamps the state at zero after every step.
type floor struct{}

func (floor) Derive(x State, t float64) State { return State{-1} }
func (floor) StateDim() int                   { return 1 }
func (floor) Constrain(x, prev State, t float64) State {
	if x[0] < 0 {
		return State{0}
	}
	return x
}

type blowUp struct{}

func (blowUp) Derive(x State, t float64) State { return State{math.Inf(1)} }
func (blowUp) StateDim() int                   { return 1 }

func TestSimulatorRun(t *testing.T) {
	sim := New(decay{}, eulerStep{})

	result, err := sim.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}

	final := result.States[len(result.States)-1][0]
	if expected := math.Exp(-1.0); math.Abs(final-expected) > 0.2 {
		t.Errorf("expected final state ~%.4f, got %.4f", expected, final)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(decay{}, eulerStep{})

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"adaptive without tolerance", Config{Dt: 0.1, Duration: 1.0, Adaptive: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sim.Run(context.Background(), State{1.0}, tt.cfg); err == nil {
				t.Error("expected error for invalid config")
			}
		})
	}
}

func TestSimulatorDimensionMismatch(t *testing.T) {
	sim := New(decay{}, eulerStep{})
	_, err := sim.Run(context.Background(), State{1, 2}, Config{Dt: 0.1, Duration: 1})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSimulatorTerminator(t *testing.T) {
	sim := New(stopAt{below: 0.5}, eulerStep{})
	result, err := sim.Run(context.Background(), State{1.0}, Config{Dt: 0.01, Duration: 10})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Stopped {
		t.Error("expected run to stop early")
	}
	last := result.States[len(result.States)-1][0]
	if last >= 0.5 || last < 0.49 {
		t.Errorf("expected stop just below 0.5, got %f", last)
	}
}

func TestSimulatorConstraint(t *testing.T) {
	sim := New(floor{}, eulerStep{})
	result, err := sim.Run(context.Background(), State{0.5}, Config{Dt: 0.1, Duration: 2})
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range result.States {
		if s[0] < 0 {
			t.Fatalf("state %d went below the floor: %f", i, s[0])
		}
	}
}

func TestSimulatorInvalidState(t *testing.T) {
	sim := New(blowUp{}, eulerStep{})
	cfg := DefaultConfig()
	result, err := sim.Run(context.Background(), State{0}, cfg)

	var simErr *SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected SimulationError, got %v", err)
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("expected error to wrap ErrInvalidState")
	}
	if simErr.Step != 0 {
		t.Errorf("expected failure on first step, got %d", simErr.Step)
	}
	if len(result.States) != 1 {
		t.Errorf("expected only the initial state, got %d", len(result.States))
	}
}

// grow doubles its state every unit of time.
type grow struct{}

func (grow) Derive(x State, t float64) State { return State{math.Ln2 * x[0]} }
func (grow) StateDim() int                   { return 1 }

// ramp has dx/dt = t, so the solution depends on the start time.
type ramp struct{}

func (ramp) Derive(x State, t float64) State { return State{t} }
func (ramp) StateDim() int                   { return 1 }

func TestSimulatorUnstable(t *testing.T) {
	cfg := Config{Dt: 0.01, Duration: 100, MaxNorm: 1e3}
	result, err := New(grow{}, eulerStep{}).Run(context.Background(), State{1}, cfg)
	if !errors.Is(err, ErrUnstable) {
		t.Fatalf("expected ErrUnstable, got %v", err)
	}
	last := result.States[len(result.States)-1][0]
	if last > 1e3 || last < 500 {
		t.Errorf("last accepted state %g should be just below the bound", last)
	}

	cfg.MaxNorm = 0
	cfg.Duration = 5
	if _, err := New(grow{}, eulerStep{}).Run(context.Background(), State{1}, cfg); err != nil {
		t.Errorf("unbounded run failed: %v", err)
	}
}

func TestSimulatorFinalOnly(t *testing.T) {
	cfg := Config{Dt: 0.1, Duration: 1, FinalOnly: true}
	result, err := New(decay{}, eulerStep{}).Run(context.Background(), State{1}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.States) != 2 || result.StepsTaken != 10 {
		t.Fatalf("states = %d, steps = %d", len(result.States), result.StepsTaken)
	}
	if want := math.Pow(0.9, 10); math.Abs(result.States[1][0]-want) > 1e-12 {
		t.Errorf("final = %g, want %g", result.States[1][0], want)
	}
	if math.Abs(result.Times[1]-1) > 1e-12 {
		t.Errorf("final time = %g", result.Times[1])
	}
}

func TestSimulatorStart(t *testing.T) {
	whole, err := New(ramp{}, eulerStep{}).Run(context.Background(), State{0}, Config{Dt: 0.1, Duration: 2})
	if err != nil {
		t.Fatal(err)
	}
	mid := whole.States[10]
	rest, err := New(ramp{}, eulerStep{}).Run(context.Background(), mid, Config{Start: 1, Dt: 0.1, Duration: 1})
	if err != nil {
		t.Fatal(err)
	}
	if rest.Times[0] != 1 || math.Abs(rest.Times[len(rest.Times)-1]-2) > 1e-12 {
		t.Errorf("times run from %g to %g", rest.Times[0], rest.Times[len(rest.Times)-1])
	}
	got, want := rest.States[len(rest.States)-1][0], whole.States[20][0]
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("resumed run ends at %g, full run at %g", got, want)
	}
}

func TestSimulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(decay{}, eulerStep{}).Run(ctx, State{1}, Config{Dt: 0.1, Duration: 1})
	if !errors.Is(err, ErrContextCanceled) {
		t.Errorf("expected ErrContextCanceled, got %v", err)
	}
}

func TestSimulatorAdaptiveStepDoubling(t *testing.T) {
	cfg := Config{Dt: 0.1, Duration: 1, Adaptive: true, Tolerance: 1e-4, MinDt: 1e-6, MaxDt: 0.2}
	result, err := New(decay{}, eulerStep{}).Run(context.Background(), State{1}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	end := result.Times[len(result.Times)-1]
	if math.Abs(end-1) > 1e-9 {
		t.Errorf("expected run to end at t=1, got %f", end)
	}
	final := result.States[len(result.States)-1][0]
	if math.Abs(final-math.Exp(-1)) > 0.01 {
		t.Errorf("expected ~%f, got %f", math.Exp(-1), final)
	}
}

func TestParallelFor(t *testing.T) {
	out := make([]int, 1000)
	err := ParallelFor(context.Background(), len(out), 10, func(ctx context.Context, start, end int) error {
		for i := start; i < end; i++ {
			out[i] = i * i
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if v != i*i {
			t.Fatalf("index %d not filled: %d", i, v)
		}
	}
}

func TestParallelForError(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32
	err := ParallelFor(context.Background(), 100, 1, func(ctx context.Context, start, end int) error {
		calls.Add(1)
		if start == 0 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if calls.Load() == 0 {
		t.Error("expected fn to be called")
	}
}

func TestTrigTable(t *testing.T) {
	for x := -10.0; x < 10; x += 0.0137 {
		s, c := DefaultTrigTable.SinCos(x)
		if math.Abs(s-math.Sin(x)) > 1e-6 || math.Abs(c-math.Cos(x)) > 1e-6 {
			t.Fatalf("x=%f: got (%f, %f), want (%f, %f)", x, s, c, math.Sin(x), math.Cos(x))
		}
	}
	if math.Abs(FastCos(2*math.Pi)-1) > 1e-9 {
		t.Error("FastCos(2π) should be 1")
	}
}

func TestOutOfBounds(t *testing.T) {
	err := OutOfBounds("R", 1.2, "must be in [0, 1)")
	if !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}
