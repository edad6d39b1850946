package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FlattenRecord converts a decoded analysis document into a Record. The
// document is the JSON the feature extractor writes per audio file:
//
//	{"id": "kick_01.wav", "stats": {"lowlevel": {"spectral_centroid": {"mean": 1042.8, ...}, ...}, ...}}
//
// Top-level keys other than "id" are feature classes. Nested maps flatten
// into underscore-joined column names prefixed by their class
// ("stats_spectral_centroid_mean"), numeric leaves become scalar columns,
// numeric arrays become vector columns, and arrays of arrays become one
// vector column per inner array with its index in the name. Numeric strings
// are coerced to floats. Non-numeric leaves carry no distance semantics and
// are dropped.
//
// When classes are given, only those feature classes are flattened.
func FlattenRecord(doc map[string]any, classes ...string) (Record, error) {
	id, ok := doc["id"].(string)
	if !ok || id == "" {
		return Record{}, fmt.Errorf("analysis document has no string %q field", "id")
	}

	keep := func(string) bool { return true }
	if len(classes) > 0 {
		set := make(map[string]struct{}, len(classes))
		for _, c := range classes {
			set[c] = struct{}{}
		}
		keep = func(class string) bool {
			_, ok := set[class]
			return ok
		}
	}

	columns := make(map[string]Value)
	for class, tree := range doc {
		if class == "id" || !keep(class) {
			continue
		}
		if err := flattenInto(columns, class, tree); err != nil {
			return Record{}, fmt.Errorf("document %q: %w", id, err)
		}
	}

	return Record{Key: id, Columns: columns}, nil
}

func flattenInto(columns map[string]Value, prefix string, node any) error {
	switch x := node.(type) {
	case map[string]any:
		// Deterministic flattening order so duplicate-name errors are stable.
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := flattenInto(columns, prefix+"_"+k, x[k]); err != nil {
				return err
			}
		}
		return nil
	case []any:
		if inner, ok := nestedLists(x); ok {
			for i, row := range inner {
				if err := putColumn(columns, fmt.Sprintf("%s_%d", prefix, i), row); err != nil {
					return err
				}
			}
			return nil
		}
		return putColumn(columns, prefix, x)
	default:
		return putColumn(columns, prefix, x)
	}
}

func putColumn(columns map[string]Value, name string, raw any) error {
	v, ok := valueOf(raw)
	if !ok {
		// Categorical or otherwise non-numeric leaf; not a feature column.
		return nil
	}
	if _, exists := columns[name]; exists {
		return fmt.Errorf("flattening produced duplicate column %q", name)
	}
	columns[name] = v
	return nil
}

// nestedLists reports whether xs is a list of lists (e.g. per-band frame
// statistics) and returns the inner lists.
func nestedLists(xs []any) ([][]any, bool) {
	if len(xs) == 0 {
		return nil, false
	}
	inner := make([][]any, len(xs))
	for i, e := range xs {
		row, ok := e.([]any)
		if !ok {
			return nil, false
		}
		inner[i] = row
	}
	return inner, true
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
