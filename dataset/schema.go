package dataset

import (
	"fmt"
	"sort"
)

// Column describes one feature column: its name, shape, and, for vectors,
// the fixed length every row must carry.
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
	Dim  int    `json:"dim,omitempty"`
}

// Schema is the ordered set of column descriptors shared by all records of a
// Table. Columns are kept sorted by name so schema-driven iteration (weight
// resolution, distance evaluation) is deterministic.
type Schema []Column

// Lookup returns the descriptor for the named column.
func (s Schema) Lookup(name string) (Column, bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i].Name >= name })
	if i < len(s) && s[i].Name == name {
		return s[i], true
	}
	return Column{}, false
}

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// validate checks that every cell of rec conforms to the schema: known
// column, matching kind, matching vector length. Missing cells are legal at
// this point; a weighted comparison against them fails later with a value
// error.
func (s Schema) validate(rec Record) error {
	for name, v := range rec.Columns {
		col, ok := s.Lookup(name)
		if !ok {
			return fmt.Errorf("%w: record %q has column %q not in schema", ErrSchemaMismatch, rec.Key, name)
		}
		if v.Kind != col.Kind {
			return fmt.Errorf("%w: record %q column %q is %s, schema says %s", ErrSchemaMismatch, rec.Key, name, v.Kind, col.Kind)
		}
		if col.Kind == KindVector && v.Dim() != col.Dim {
			return fmt.Errorf("%w: record %q column %q has dim %d, schema says %d", ErrSchemaMismatch, rec.Key, name, v.Dim(), col.Dim)
		}
	}
	return nil
}

// schemaOf builds the union schema over the given records, failing on
// conflicting kinds or vector lengths for the same column name.
func schemaOf(records []Record) (Schema, error) {
	byName := make(map[string]Column)
	for _, rec := range records {
		for name, v := range rec.Columns {
			col := Column{Name: name, Kind: v.Kind, Dim: v.Dim()}
			prev, seen := byName[name]
			if !seen {
				byName[name] = col
				continue
			}
			if prev.Kind != col.Kind {
				return nil, fmt.Errorf("%w: column %q is %s in one record and %s in another", ErrSchemaMismatch, name, prev.Kind, col.Kind)
			}
			if prev.Kind == KindVector && prev.Dim != col.Dim {
				return nil, fmt.Errorf("%w: column %q has vector dims %d and %d", ErrSchemaMismatch, name, prev.Dim, col.Dim)
			}
		}
	}

	schema := make(Schema, 0, len(byName))
	for _, col := range byName {
		schema = append(schema, col)
	}
	sort.Slice(schema, func(i, j int) bool { return schema[i].Name < schema[j].Name })
	return schema, nil
}
