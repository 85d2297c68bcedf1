package dynamo

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// Domain errors for simulation operations.
var (
	// ErrConfiguration indicates a run was requested with invalid parameters.
	ErrConfiguration = errors.New("dynamo: invalid configuration")

	// ErrNumericDegeneracy indicates a derived quantity is undefined for the
	// given parameters (e.g. a damping ratio with m*k <= 0).
	ErrNumericDegeneracy = errors.New("dynamo: numerically degenerate parameters")

	// ErrUnknownMethod indicates an unrecognised response method name.
	ErrUnknownMethod = errors.New("dynamo: unknown method")

	// ErrUnstable indicates the simulation produced NaN or Inf.
	ErrUnstable = errors.New("dynamo: simulation unstable (state diverged)")
)

// ConfigError describes one rejected configuration field.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dynamo: invalid %s=%g: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// Positive rejects values that are not finite and strictly greater than zero.
func Positive(field string, v float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return &ConfigError{Field: field, Value: v, Reason: "must be positive"}
	}
	return nil
}

// NonNegative rejects values that are not finite or below zero.
func NonNegative(field string, v float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return &ConfigError{Field: field, Value: v, Reason: "must not be negative"}
	}
	return nil
}

func Finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ConfigError{Field: field, Value: v, Reason: "must be finite"}
	}
	return nil
}

// Combine merges validation results; nil entries are dropped.
func Combine(errs ...error) error {
	return multierr.Combine(errs...)
}

// Violations flattens a combined validation error into its parts.
func Violations(err error) []error {
	return multierr.Errors(err)
}
