package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrEmptyTrajectory indicates an operation needs at least one sample.
	ErrEmptyTrajectory = errors.New("dynamo: trajectory has no samples")
)

// BoundsError wraps ErrParameterBounds with the offending field.
type BoundsError struct {
	Field string
	Value float64
	Want  string
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("dynamo: %s = %g out of bounds (want %s)", e.Field, e.Value, e.Want)
}

func (e *BoundsError) Unwrap() error {
	return ErrParameterBounds
}
