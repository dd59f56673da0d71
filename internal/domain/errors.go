package domain

import (
	"errors"
	"fmt"
	"math"
)

// DomainError reports an input outside the range a model is defined on.
// It is the single failure kind of the engine: evaluations are deterministic,
// so a DomainError is never retried.
type DomainError struct {
	Op     string  // operation that rejected the input, e.g. "rain_attenuation"
	Param  string  // offending parameter name
	Value  float64 // offending value
	Reason string

	textual bool // Param is not a number; Value is unset
}

func (e *DomainError) Error() string {
	if e.textual {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Param, e.Reason)
	}
	return fmt.Sprintf("%s: %s=%g: %s", e.Op, e.Param, e.Value, e.Reason)
}

// NewDomainError builds a DomainError for op rejecting param=value.
func NewDomainError(op, param string, value float64, reason string) *DomainError {
	return &DomainError{Op: op, Param: param, Value: value, Reason: reason}
}

// NewInputError builds a DomainError for op rejecting a non-numeric param.
func NewInputError(op, param, reason string) *DomainError {
	return &DomainError{Op: op, Param: param, Reason: reason, textual: true}
}

// IsDomainError reports whether err, or anything it wraps, is a DomainError.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// CheckFinite rejects NaN and ±Inf.
func CheckFinite(op, param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NewDomainError(op, param, v, "must be finite")
	}
	return nil
}

// CheckRange rejects values outside [lo, hi] (and non-finite values).
func CheckRange(op, param string, v, lo, hi float64) error {
	if err := CheckFinite(op, param, v); err != nil {
		return err
	}
	if v < lo || v > hi {
		return NewDomainError(op, param, v, fmt.Sprintf("must be within [%g, %g]", lo, hi))
	}
	return nil
}

// CheckPositive rejects values that are not strictly positive.
func CheckPositive(op, param string, v float64) error {
	if err := CheckFinite(op, param, v); err != nil {
		return err
	}
	if v <= 0 {
		return NewDomainError(op, param, v, "must be positive")
	}
	return nil
}

// CheckNonNegative rejects negative values.
func CheckNonNegative(op, param string, v float64) error {
	if err := CheckFinite(op, param, v); err != nil {
		return err
	}
	if v < 0 {
		return NewDomainError(op, param, v, "must not be negative")
	}
	return nil
}

// CheckCoordinates validates a geographic position on the climatology grid.
func CheckCoordinates(op string, lat, lon float64) error {
	if err := CheckRange(op, "lat", lat, -90, 90); err != nil {
		return err
	}
	return CheckRange(op, "lon", lon, -180, 180)
}

// CheckUnavailability validates a time percentage in (0, 100].
func CheckUnavailability(op string, p float64) error {
	if err := CheckFinite(op, "p", p); err != nil {
		return err
	}
	if p <= 0 || p > 100 {
		return NewDomainError(op, "p", p, "must be within (0, 100]")
	}
	return nil
}
