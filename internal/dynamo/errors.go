package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidTick indicates a non-positive or non-finite tick duration.
	ErrInvalidTick = errors.New("dynamo: tick duration must be positive and finite")

	// ErrInvalidMass indicates a body with non-positive mass.
	ErrInvalidMass = errors.New("dynamo: body mass must be positive")

	// ErrInvalidRadius indicates a body with negative radius.
	ErrInvalidRadius = errors.New("dynamo: body radius must not be negative")

	// ErrInvalidState indicates a NaN or Inf in a body's kinematic state.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrBodyIndex indicates a body index outside the world.
	ErrBodyIndex = errors.New("dynamo: body index out of range")

	// ErrUnknownBody indicates a reference to a body name that does not exist.
	ErrUnknownBody = errors.New("dynamo: unknown body")

	// ErrEmptyScenario indicates a scenario with no bodies.
	ErrEmptyScenario = errors.New("dynamo: scenario has no bodies")
)

// SimulationError wraps an error with the tick it was detected on.
type SimulationError struct {
	Tick    int
	Time    float64
	Body    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f) body %d: %v", e.Tick, e.Time, e.Body, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
