package beam

import (
	"errors"
	"fmt"
)

var (
	// ErrSupportsCoincide indicates a pin and roller at the same position.
	ErrSupportsCoincide = errors.New("beam: pin and roller positions coincide")

	// ErrSupportOutsideSpan indicates a support placed off the beam.
	ErrSupportOutsideSpan = errors.New("beam: support outside the span")

	// ErrInvalidInterval indicates a load interval with x1 > x2.
	ErrInvalidInterval = errors.New("beam: load interval start exceeds its end")

	// ErrOutsideSpan indicates a load interval reaching outside [0, length].
	ErrOutsideSpan = errors.New("beam: load interval outside the span")

	// ErrFrozen indicates a load added after Calculate.
	ErrFrozen = errors.New("beam: loads are frozen after calculate")

	// ErrNotConfigured indicates a Builder that was not created with New.
	ErrNotConfigured = errors.New("beam: builder has no geometry")

	// ErrUnknownDistribution indicates an unrecognised distribution name.
	ErrUnknownDistribution = errors.New("beam: unknown distribution")

	// ErrOutOfSpan indicates an evaluation position outside [0, length].
	ErrOutOfSpan = errors.New("beam: position outside the span")
)

// ConfigurationError reports invalid support geometry.
type ConfigurationError struct {
	Pin     float64
	Roller  float64
	Wrapped error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: pin=%g, roller=%g", e.Wrapped, e.Pin, e.Roller)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Wrapped
}

// ValidationError reports a load that was rejected when it was added.
type ValidationError struct {
	Load    string // "force" or "moment"
	X1, X2  float64
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s load [%g, %g]: %v", e.Load, e.X1, e.X2, e.Wrapped)
}

func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}
