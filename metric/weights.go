package metric

import (
	"github.com/hupe1980/audiosim/dataset"
)

// WeightedColumn pairs a column descriptor with its effective weight.
type WeightedColumn struct {
	Column dataset.Column
	Weight float64
}

// Weights is the resolved, active weight vector for a query: only columns
// with a nonzero effective weight, in schema order. Zero-weight columns are
// excluded here so the comparator never evaluates them.
type Weights struct {
	active []WeightedColumn
}

// Active returns the weighted columns in schema order.
func (w Weights) Active() []WeightedColumn { return w.active }

// Resolve validates raw against schema and applies the defaulting rules:
// every schema column gets its explicit weight if present, otherwise 1.0,
// or 0.0 (excluded) when exclusive weighting is enabled.
//
// Validation fails fast: a negative weight or a weight key naming a column
// not in the schema returns a *WeightError before any distance work.
func Resolve(schema dataset.Schema, raw map[string]float64, exclusive bool) (Weights, error) {
	for name, v := range raw {
		if _, ok := schema.Lookup(name); !ok {
			return Weights{}, &WeightError{Column: name, Weight: v, Reason: "no such column"}
		}
		if v < 0 {
			return Weights{}, &WeightError{Column: name, Weight: v, Reason: "negative weight"}
		}
	}

	active := make([]WeightedColumn, 0, len(schema))
	for _, col := range schema {
		w, explicit := raw[col.Name]
		if !explicit {
			if exclusive {
				continue
			}
			w = 1.0
		}
		if w == 0 {
			continue
		}
		active = append(active, WeightedColumn{Column: col, Weight: w})
	}

	return Weights{active: active}, nil
}
