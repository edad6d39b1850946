package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is returned when two records share the same key.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrEmptyKey is returned when a record has no key.
	ErrEmptyKey = errors.New("empty key")

	// ErrSchemaMismatch is returned when records disagree on a column's shape.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrEmptyTable is returned when a table is built from zero records.
	ErrEmptyTable = errors.New("empty table")
)

// Table is the full keyed collection of records queried against. It is
// immutable after construction: exactly one record per key, one shared
// schema, stable row order.
type Table struct {
	schema Schema
	rows   []Record
	byKey  map[string]int
}

// NewTable builds a Table from records, preserving their order. It derives
// the union schema and validates every record against it.
func NewTable(records []Record) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	schema, err := schemaOf(records)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]int, len(records))
	rows := make([]Record, len(records))
	for i, rec := range records {
		if rec.Key == "" {
			return nil, fmt.Errorf("%w: record at position %d", ErrEmptyKey, i)
		}
		if prev, ok := byKey[rec.Key]; ok {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateKey, rec.Key, prev, i)
		}
		if err := schema.validate(rec); err != nil {
			return nil, err
		}
		byKey[rec.Key] = i
		rows[i] = rec
	}

	return &Table{schema: schema, rows: rows, byKey: byKey}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Schema returns the shared column schema.
func (t *Table) Schema() Schema { return t.schema }

// Row returns the record at position i.
func (t *Table) Row(i int) Record { return t.rows[i] }

// Index returns the row position of key.
func (t *Table) Index(key string) (int, bool) {
	i, ok := t.byKey[key]
	return i, ok
}

// Lookup returns the record for key.
func (t *Table) Lookup(key string) (Record, bool) {
	i, ok := t.byKey[key]
	if !ok {
		return Record{}, false
	}
	return t.rows[i], true
}

// Keys returns all row keys in table order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.rows))
	for i, rec := range t.rows {
		keys[i] = rec.Key
	}
	return keys
}
