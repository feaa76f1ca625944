package geodesic

import (
	"errors"
	"fmt"
)

// Domain errors for geodesic integration.
var (
	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("geodesic: invalid state (NaN or Inf detected)")

	// ErrDiverged indicates the adaptive stepper could not bring the local
	// error within tolerance before exhausting its retry budget.
	ErrDiverged = errors.New("geodesic: step failed to converge (ray diverged)")

	// ErrStepTooSmall indicates the adaptive step size was driven below
	// the configured minimum.
	ErrStepTooSmall = errors.New("geodesic: adaptive step below minimum")

	// ErrDimensionMismatch indicates a state whose length does not match
	// the system dimension.
	ErrDimensionMismatch = errors.New("geodesic: dimension mismatch between state and system")
)

// StepError wraps an error with the lambda and step count at which it occurred.
type StepError struct {
	Step    int
	Lambda  float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (lambda=%.6g): %v", e.Step, e.Lambda, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
