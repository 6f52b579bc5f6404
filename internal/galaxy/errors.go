package galaxy

import (
	"errors"
	"fmt"
)

// Domain errors for galaxy generation.
var (
	// ErrInvalidParameter indicates a parameter that cannot produce finite particles.
	ErrInvalidParameter = errors.New("galaxy: invalid parameter")

	// ErrAllocation indicates the particle buffers could not be allocated.
	ErrAllocation = errors.New("galaxy: buffer allocation failed")
)

// ParamError wraps ErrInvalidParameter with the offending field.
type ParamError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%g %s", ErrInvalidParameter, e.Field, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}
