package dynamo

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	sys        System
	integrator Integrator
}

func New(sys System, integrator Integrator) *Simulator {
	return &Simulator{sys: sys, integrator: integrator}
}

// Run integrates from x0 at cfg.Start over cfg.Duration and records every
// accepted step. On a non-finite state the partial result is returned
// together with a *SimulationError wrapping ErrInvalidState, and a state
// beyond cfg.MaxNorm wraps ErrUnstable.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if dim := s.sys.StateDim(); dim > 0 && len(x0) != dim {
		return nil, fmt.Errorf("state has %d components, system wants %d: %w", len(x0), dim, ErrDimensionMismatch)
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	keep := steps + 1
	if cfg.FinalOnly {
		keep = 2
	}
	result := &Result{
		States: make([]State, 0, keep),
		Times:  make([]float64, 0, keep),
	}

	x := x0.Clone()
	t := cfg.Start
	end := cfg.Start + cfg.Duration
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialEnergy := s.energy(x)
	constraint, _ := s.sys.(Constrained)
	terminator, _ := s.sys.(Terminator)

	for i := 0; ; i++ {
		if cfg.Adaptive && t-cfg.Start >= cfg.Duration*(1-1e-12) {
			break
		}
		if !cfg.Adaptive && i >= steps {
			break
		}
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %v", ErrContextCanceled, ctx.Err())
		default:
		}

		var newX State
		used := dt
		if cfg.Adaptive {
			if remaining := end - t; dt > remaining {
				dt = remaining
			}
			var err error
			newX, used, dt, err = s.adaptiveStep(x, t, dt, cfg)
			if err != nil {
				return result, &SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: err}
			}
		} else {
			newX = s.integrator.Step(s.sys, x, t, dt)
		}

		if constraint != nil {
			newX = constraint.Constrain(newX, x, t+used)
		}

		if cfg.ValidateState && !newX.IsValid() {
			return result, &SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: ErrInvalidState}
		}
		if cfg.MaxNorm > 0 && newX.Norm() > cfg.MaxNorm {
			return result, &SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: ErrUnstable}
		}

		x = newX
		t += used
		result.StepsTaken++
		if !cfg.FinalOnly {
			result.States = append(result.States, x.Clone())
			result.Times = append(result.Times, t)
		}

		if terminator != nil && terminator.Done(x, t) {
			result.Stopped = true
			break
		}
	}

	if cfg.FinalOnly && result.StepsTaken > 0 {
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(s.energy(x)-initialEnergy) / math.Abs(initialEnergy)
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	return nil
}

func (s *Simulator) energy(x State) float64 {
	if h, ok := s.sys.(Hamiltonian); ok {
		return h.Energy(x)
	}
	return 0
}

// adaptiveStep returns the new state, the step actually taken and the
// suggested next step.
func (s *Simulator) adaptiveStep(x State, t, dt float64, cfg Config) (State, float64, float64, error) {
	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok {
		newX, taken, next, err := adaptive.StepAdaptive(s.sys, x, t, dt, cfg.Tolerance)
		if err != nil {
			return nil, 0, 0, err
		}
		if taken < dt && taken < cfg.MinDt {
			return nil, 0, 0, ErrStepTooSmall
		}
		return newX, taken, clampDt(next, cfg), nil
	}

	// step doubling for fixed-step integrators
	for {
		x1 := s.integrator.Step(s.sys, x, t, dt)
		xHalf := s.integrator.Step(s.sys, x, t, dt/2)
		x2 := s.integrator.Step(s.sys, xHalf, t+dt/2, dt/2)

		errNorm := x1.Sub(x2).Norm()
		if errNorm > cfg.Tolerance && dt/2 >= cfg.MinDt {
			dt /= 2
			continue
		}
		next := dt
		if errNorm < cfg.Tolerance/10 {
			next = dt * 2
		}
		return x2, dt, clampDt(next, cfg), nil
	}
}

func clampDt(dt float64, cfg Config) float64 {
	if cfg.MaxDt > 0 && dt > cfg.MaxDt {
		return cfg.MaxDt
	}
	return dt
}
