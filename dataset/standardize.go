package dataset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Standardize returns a new table with the named columns z-scored: each
// value becomes (x - mean) / stddev, computed over the rows where the cell
// is present and numeric. Vector columns are standardized element-wise.
// Columns with zero variance map to 0 so constant features stop dominating
// (or contributing to) distances. When no columns are named, every column is
// standardized.
//
// Standardization is an explicit preprocessing step; the similarity engine
// itself never rescales data.
func Standardize(t *Table, columns ...string) (*Table, error) {
	cols := t.schema
	if len(columns) > 0 {
		cols = make(Schema, 0, len(columns))
		for _, name := range columns {
			col, ok := t.schema.Lookup(name)
			if !ok {
				return nil, fmt.Errorf("standardize: unknown column %q", name)
			}
			cols = append(cols, col)
		}
	}

	rows := make([]Record, t.Len())
	for i, rec := range t.rows {
		clone := Record{Key: rec.Key, Columns: make(map[string]Value, len(rec.Columns))}
		for name, v := range rec.Columns {
			cv := v
			if cv.Kind == KindVector {
				cv.Vector = append([]float64(nil), cv.Vector...)
			}
			clone.Columns[name] = cv
		}
		rows[i] = clone
	}

	for _, col := range cols {
		switch col.Kind {
		case KindScalar:
			standardizeScalar(rows, col.Name)
		case KindVector:
			for d := 0; d < col.Dim; d++ {
				standardizeVector(rows, col.Name, d)
			}
		}
	}

	return NewTable(rows)
}

func standardizeScalar(rows []Record, name string) {
	var sample []float64
	for _, rec := range rows {
		if v, ok := rec.Columns[name]; ok && v.IsNumeric() {
			sample = append(sample, v.Scalar)
		}
	}
	mean, std := stat.MeanStdDev(sample, nil)
	for _, rec := range rows {
		if v, ok := rec.Columns[name]; ok && v.IsNumeric() {
			rec.Columns[name] = ScalarValue(zscore(v.Scalar, mean, std))
		}
	}
}

func standardizeVector(rows []Record, name string, d int) {
	var sample []float64
	for _, rec := range rows {
		if v, ok := rec.Columns[name]; ok && v.IsNumeric() {
			sample = append(sample, v.Vector[d])
		}
	}
	mean, std := stat.MeanStdDev(sample, nil)
	for _, rec := range rows {
		if v, ok := rec.Columns[name]; ok && v.IsNumeric() {
			v.Vector[d] = zscore(v.Vector[d], mean, std)
		}
	}
}

func zscore(x, mean, std float64) float64 {
	// A single-row sample yields NaN stddev; treat it like a constant column.
	if std == 0 || math.IsNaN(std) {
		return 0
	}
	return (x - mean) / std
}
