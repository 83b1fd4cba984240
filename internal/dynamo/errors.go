package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for numerical operations.
var (
	// ErrInvalidState indicates a state with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrUnstable indicates the integration diverged.
	ErrUnstable = errors.New("dynamo: simulation unstable (state diverged)")

	// ErrParameterBounds indicates a physical parameter outside its valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrContextCanceled indicates the computation was interrupted.
	ErrContextCanceled = errors.New("dynamo: computation canceled by context")

	// ErrStepTooSmall indicates the adaptive timestep fell below Config.MinDt.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrDimensionMismatch indicates mismatched state and system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrNoBracket indicates a root search interval without a sign change.
	ErrNoBracket = errors.New("dynamo: root not bracketed")
)

// SimulationError wraps an error with the step at which it happened.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

// OutOfBounds reports a named parameter outside its valid range.
func OutOfBounds(name string, value float64, constraint string) error {
	return fmt.Errorf("%s=%g (%s): %w", name, value, constraint, ErrParameterBounds)
}
