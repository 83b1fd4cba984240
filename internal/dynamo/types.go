package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Sub returns s - other over the common length.
func (s State) Sub(other State) State {
	result := s.Clone()
	for i := range result {
		if i < len(other) {
			result[i] -= other[i]
		}
	}
	return result
}

// AddScaled returns s + f*other.
func (s State) AddScaled(f float64, other State) State {
	result := s.Clone()
	for i := range result {
		if i < len(other) {
			result[i] += f * other[i]
		}
	}
	return result
}

// System is a first-order ODE dX/dt = Derive(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Hamiltonian systems report a conserved energy.
type Hamiltonian interface {
	Energy(x State) float64
}

// Constrained systems project the state after every accepted step.
// prev is the state before the step.
type Constrained interface {
	Constrain(x, prev State, t float64) State
}

// Terminator systems end a run early once Done reports true.
type Terminator interface {
	Done(x State, t float64) bool
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// AdaptiveIntegrator retries a step until its error estimate meets tol and
// returns the new state, the step actually taken and a suggested next step.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64, float64, error)
}

type Config struct {
	// Start is the time of the initial state; Duration counts from it.
	Start         float64
	Dt            float64
	Duration      float64
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	Adaptive      bool
	ValidateState bool
	// MaxNorm > 0 fails the run with ErrUnstable once |x| exceeds it.
	MaxNorm float64
	// FinalOnly keeps just the initial and the last state in the Result.
	FinalOnly bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		Tolerance:     1e-6,
		MaxDt:         0.1,
		MinDt:         1e-8,
		ValidateState: true,
	}
}

type Result struct {
	States      []State
	Times       []float64
	EnergyDrift float64
	StepsTaken  int
	Stopped     bool
}

// Component returns the i-th state component over the whole run.
func (r *Result) Component(i int) []float64 {
	out := make([]float64, len(r.States))
	for k, s := range r.States {
		if i < len(s) {
			out[k] = s[i]
		}
	}
	return out
}
