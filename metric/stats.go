package metric

import (
	"math"

	"github.com/hupe1980/audiosim/dataset"
)

// statsComparator implements the "stats" family: per-column weighted
// Euclidean distance. A vector column contributes the sum of its element-wise
// squared differences as a single weighted term, so one coefficient weighs a
// multi-dimensional column the same way it weighs a scalar one.
type statsComparator struct{}

// Distance returns sqrt(sum over active columns of w * sqdiff). It is
// symmetric in a and b. A missing or non-numeric cell in an active column of
// either record fails the comparison with a *ValueError.
func (statsComparator) Distance(a, b dataset.Record, w Weights) (float64, error) {
	var sum float64
	for _, wc := range w.Active() {
		va, err := cell(a, wc.Column)
		if err != nil {
			return 0, err
		}
		vb, err := cell(b, wc.Column)
		if err != nil {
			return 0, err
		}

		var sq float64
		switch wc.Column.Kind {
		case dataset.KindScalar:
			d := va.Scalar - vb.Scalar
			sq = d * d
		case dataset.KindVector:
			for i := range va.Vector {
				d := va.Vector[i] - vb.Vector[i]
				sq += d * d
			}
		}
		sum += wc.Weight * sq
	}
	return math.Sqrt(sum), nil
}

// cell fetches an active column from rec, failing on missing or non-numeric
// data. Kind and vector length already match the schema (table construction
// validates them), so only presence and numeric-ness are checked here.
func cell(rec dataset.Record, col dataset.Column) (dataset.Value, error) {
	v, ok := rec.Columns[col.Name]
	if !ok {
		return dataset.Value{}, &ValueError{Key: rec.Key, Column: col.Name, Reason: "missing value"}
	}
	if !v.IsNumeric() {
		return dataset.Value{}, &ValueError{Key: rec.Key, Column: col.Name, Reason: "non-numeric value"}
	}
	return v, nil
}
