// Package mmap provides read-only memory-mapped file access for zero-copy
// blob reads in the local store.
//
// On unix systems the mapping uses mmap(2); elsewhere the file is read into
// memory, keeping the same API.
package mmap

import (
	"sync/atomic"
)

// Mapping represents a memory-mapped file.
// It owns the underlying byte slice and is responsible for unmapping it.
type Mapping struct {
	data   []byte
	closed atomic.Bool
	// unmap is the platform-specific function to release the memory.
	// Nil for empty files and read-into-memory fallbacks.
	unmap func([]byte) error
}

// Bytes returns the mapped contents. The slice is valid until Close.
func (m *Mapping) Bytes() []byte {
	return m.data
}

// Size returns the length of the mapped contents.
func (m *Mapping) Size() int64 {
	return int64(len(m.data))
}

// Close releases the mapping. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	data := m.data
	m.data = nil
	if m.unmap == nil || len(data) == 0 {
		return nil
	}
	return m.unmap(data)
}
