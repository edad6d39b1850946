//go:build !unix

package mmap

import "os"

// Open reads the file at path into memory. Platforms without mmap support
// get the same API with a copy instead of a mapping.
func Open(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data}, nil
}
