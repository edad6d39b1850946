package dataset

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// Selection is a mask over a table's row ordinals, used to narrow the
// candidate pool of a similarity query without copying the table (e.g.
// excluding files already assigned to a group). Selections are immutable;
// Only and Without return new masks.
type Selection struct {
	table *Table
	rows  *roaring.Bitmap
}

// NewSelection returns a selection covering every row of t.
func NewSelection(t *Table) *Selection {
	bm := roaring.New()
	bm.AddRange(0, uint64(t.Len()))
	return &Selection{table: t, rows: bm}
}

// Only returns a selection narrowed to the given keys (intersected with the
// current mask). Unknown keys fail rather than silently shrink the pool.
func (s *Selection) Only(keys ...string) (*Selection, error) {
	bm := roaring.New()
	for _, key := range keys {
		i, ok := s.table.Index(key)
		if !ok {
			return nil, fmt.Errorf("selection references unknown key %q", key)
		}
		bm.Add(uint32(i))
	}
	bm.And(s.rows)
	return &Selection{table: s.table, rows: bm}, nil
}

// Without returns a selection with the given keys removed. Unknown keys fail
// rather than silently pass through.
func (s *Selection) Without(keys ...string) (*Selection, error) {
	bm := s.rows.Clone()
	for _, key := range keys {
		i, ok := s.table.Index(key)
		if !ok {
			return nil, fmt.Errorf("selection references unknown key %q", key)
		}
		bm.Remove(uint32(i))
	}
	return &Selection{table: s.table, rows: bm}, nil
}

// Contains reports whether row ordinal i is in the selection.
func (s *Selection) Contains(i int) bool {
	return s.rows.Contains(uint32(i))
}

// Len returns the number of selected rows.
func (s *Selection) Len() int {
	return int(s.rows.GetCardinality())
}
