package dataset

import (
	"fmt"
	"math"

	gojson "github.com/goccy/go-json"
)

// Kind defines the shape of a column value.
type Kind uint8

const (
	// KindScalar is a single numeric value (duration, tempo, a statistic).
	KindScalar Kind = iota
	// KindVector is a fixed-length numeric vector (e.g. per-band MFCC means).
	KindVector
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "Scalar"
	case KindVector:
		return "Vector"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// Value is one cell of a record: either a scalar or a fixed-length vector.
// The Kind field selects which payload is valid, so downstream code never
// needs runtime type inspection.
type Value struct {
	Kind   Kind
	Scalar float64   // valid when Kind == KindScalar
	Vector []float64 // valid when Kind == KindVector
}

// ScalarValue returns a scalar Value.
func ScalarValue(f float64) Value {
	return Value{Kind: KindScalar, Scalar: f}
}

// VectorValue returns a vector Value. The slice is not copied.
func VectorValue(xs []float64) Value {
	return Value{Kind: KindVector, Vector: xs}
}

// Dim returns the vector length, or 0 for scalars.
func (v Value) Dim() int {
	if v.Kind == KindVector {
		return len(v.Vector)
	}
	return 0
}

// IsNumeric reports whether every component of v is a finite number.
// NaN or Inf cells count as missing data for distance purposes.
func (v Value) IsNumeric() bool {
	switch v.Kind {
	case KindScalar:
		return !math.IsNaN(v.Scalar) && !math.IsInf(v.Scalar, 0)
	case KindVector:
		for _, x := range v.Vector {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// MarshalJSON encodes scalars as numbers and vectors as arrays, matching the
// shape of the analysis documents the feature extractor writes.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == KindVector {
		return gojson.Marshal(v.Vector)
	}
	return gojson.Marshal(v.Scalar)
}

// UnmarshalJSON decodes a number into a scalar and an array into a vector.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := gojson.Unmarshal(data, &raw); err != nil {
		return err
	}
	val, ok := valueOf(raw)
	if !ok {
		return fmt.Errorf("dataset: cannot decode %q as scalar or vector", string(data))
	}
	*v = val
	return nil
}

// Record represents one row of extracted features, keyed by a unique
// identifier (typically the audio file name).
type Record struct {
	Key     string           `json:"key"`
	Columns map[string]Value `json:"columns"`
}

// valueOf converts a decoded JSON leaf into a Value. Numeric strings are
// coerced to floats; the extractor occasionally serializes numbers that way.
func valueOf(raw any) (Value, bool) {
	switch x := raw.(type) {
	case float64:
		return ScalarValue(x), true
	case int:
		return ScalarValue(float64(x)), true
	case int64:
		return ScalarValue(float64(x)), true
	case string:
		f, ok := parseFloat(x)
		if !ok {
			return Value{}, false
		}
		return ScalarValue(f), true
	case []any:
		vec := make([]float64, len(x))
		for i, e := range x {
			v, ok := valueOf(e)
			if !ok || v.Kind != KindScalar {
				return Value{}, false
			}
			vec[i] = v.Scalar
		}
		return VectorValue(vec), true
	case []float64:
		return VectorValue(x), true
	default:
		return Value{}, false
	}
}
