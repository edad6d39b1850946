package audiosim

import (
	"errors"

	"github.com/hupe1980/audiosim/metric"
)

var (
	// ErrNotFound is returned when the query key is absent from the table.
	ErrNotFound = errors.New("not found")

	// ErrNilTable is returned when an engine is constructed without a table.
	ErrNilTable = errors.New("nil table")

	// ErrInvalidConfig is the sentinel for invalid query configuration.
	// Weight errors carry the offending column via *metric.WeightError.
	ErrInvalidConfig = metric.ErrInvalidConfig

	// ErrInvalidValue is the sentinel for missing or non-numeric data hit
	// during a comparison. The record and column are carried via
	// *metric.ValueError.
	ErrInvalidValue = metric.ErrInvalidValue
)
