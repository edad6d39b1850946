package metric

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is the sentinel for invalid metric configuration
	// (bad weights, negative result counts).
	ErrInvalidConfig = errors.New("invalid metric configuration")

	// ErrInvalidValue is the sentinel for missing or non-numeric data
	// encountered in a weighted column during comparison.
	ErrInvalidValue = errors.New("invalid value")
)

// UnsupportedFamilyError indicates an unknown metric family name.
type UnsupportedFamilyError struct {
	Name string
}

func (e *UnsupportedFamilyError) Error() string {
	return fmt.Sprintf("unsupported metric family %q", e.Name)
}

// WeightError indicates an invalid weight entry: a negative value or a
// reference to a column absent from the table's schema.
//
// Satisfies errors.Is(err, ErrInvalidConfig).
type WeightError struct {
	Column string
	Weight float64
	Reason string
}

func (e *WeightError) Error() string {
	return fmt.Sprintf("weight for column %q: %s", e.Column, e.Reason)
}

func (e *WeightError) Unwrap() error { return ErrInvalidConfig }

// ValueError indicates a missing or non-numeric value in a weighted column
// for a specific record.
//
// Satisfies errors.Is(err, ErrInvalidValue).
type ValueError struct {
	Key    string
	Column string
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("record %q column %q: %s", e.Key, e.Column, e.Reason)
}

func (e *ValueError) Unwrap() error { return ErrInvalidValue }
