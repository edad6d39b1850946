// Package snapshot persists a materialized dataset.Table as a single
// self-describing blob, so large datasets can skip re-listing, decoding and
// flattening thousands of analysis documents on every start.
//
// The format records its codec and compression by name in the header and
// carries a checksum of the compressed payload; loads select codec and
// compression from the header, never from configuration, and fail loudly on
// corruption.
package snapshot

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/hupe1980/audiosim/blobstore"
	"github.com/hupe1980/audiosim/codec"
	"github.com/hupe1980/audiosim/dataset"
)

var (
	// ErrCorrupt is returned when a snapshot fails structural or checksum
	// validation.
	ErrCorrupt = errors.New("corrupt snapshot")

	// ErrUnknownCodec is returned when the header names a codec this build
	// does not provide.
	ErrUnknownCodec = errors.New("unknown snapshot codec")

	// ErrUnknownCompression is returned when the header names a compression
	// this build does not provide.
	ErrUnknownCompression = errors.New("unknown snapshot compression")
)

var (
	magic         = [4]byte{'A', 'S', 'N', 'P'}
	castagnoli    = crc32.MakeTable(crc32.Castagnoli)
	formatVersion = uint8(1)
)

// Options controls snapshot encoding. Loads ignore it and trust the header.
type Options struct {
	Codec       codec.Codec
	Compression Compression
}

// Option mutates Options.
type Option func(*Options)

// WithCodec sets the payload codec (default codec.Default).
func WithCodec(c codec.Codec) Option {
	return func(o *Options) {
		if c != nil {
			o.Codec = c
		}
	}
}

// WithCompression sets the payload compression (default CompressionS2).
func WithCompression(c Compression) Option {
	return func(o *Options) {
		o.Compression = c
	}
}

// tableDoc is the serialized form. The schema is rederived on load by table
// construction, which also revalidates the rows.
type tableDoc struct {
	Rows []dataset.Record `json:"rows"`
}

// Save encodes table and writes it to store under name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, table *dataset.Table, optFns ...Option) error {
	o := Options{Codec: codec.Default, Compression: CompressionS2}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	rows := make([]dataset.Record, table.Len())
	for i := 0; i < table.Len(); i++ {
		rows[i] = table.Row(i)
	}
	payload, err := o.Codec.Marshal(tableDoc{Rows: rows})
	if err != nil {
		return fmt.Errorf("snapshot encode: %w", err)
	}

	compressed, err := compress(o.Compression, payload)
	if err != nil {
		return err
	}

	blob := encodeHeader(o.Codec.Name(), string(o.Compression), compressed)
	return store.Put(ctx, name, blob)
}

// Load reads the snapshot name from store and reconstructs the table.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*dataset.Table, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	data, err := blob.Bytes()
	if err != nil {
		return nil, err
	}

	codecName, compName, compressed, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}

	payload, err := decompress(Compression(compName), compressed)
	if err != nil {
		return nil, err
	}

	var doc tableDoc
	if err := c.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: payload decode: %w", ErrCorrupt, err)
	}
	return dataset.NewTable(doc.Rows)
}

// Header layout: magic | version | codec name | compression name |
// crc32c(compressed) | payload length | compressed payload.
func encodeHeader(codecName, compName string, compressed []byte) []byte {
	buf := make([]byte, 0, 4+1+1+len(codecName)+1+len(compName)+4+8+len(compressed))
	buf = append(buf, magic[:]...)
	buf = append(buf, formatVersion)
	buf = append(buf, uint8(len(codecName)))
	buf = append(buf, codecName...)
	buf = append(buf, uint8(len(compName)))
	buf = append(buf, compName...)
	buf = binary.LittleEndian.AppendUint32(buf, crc32.Checksum(compressed, castagnoli))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(compressed)))
	buf = append(buf, compressed...)
	return buf
}

func decodeHeader(data []byte) (codecName, compName string, compressed []byte, err error) {
	rest := data
	take := func(n int, what string) []byte {
		if err != nil {
			return nil
		}
		if len(rest) < n {
			err = fmt.Errorf("%w: truncated %s", ErrCorrupt, what)
			return nil
		}
		b := rest[:n]
		rest = rest[n:]
		return b
	}

	m := take(4, "magic")
	if err == nil && string(m) != string(magic[:]) {
		return "", "", nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	v := take(1, "version")
	if err == nil && v[0] != formatVersion {
		return "", "", nil, fmt.Errorf("%w: unsupported format version %d", ErrCorrupt, v[0])
	}
	if n := take(1, "codec name"); err == nil {
		codecName = string(take(int(n[0]), "codec name"))
	}
	if n := take(1, "compression name"); err == nil {
		compName = string(take(int(n[0]), "compression name"))
	}
	sum := take(4, "checksum")
	length := take(8, "payload length")
	if err != nil {
		return "", "", nil, err
	}

	want := binary.LittleEndian.Uint64(length)
	if uint64(len(rest)) != want {
		return "", "", nil, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrCorrupt, len(rest), want)
	}
	if crc32.Checksum(rest, castagnoli) != binary.LittleEndian.Uint32(sum) {
		return "", "", nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	return codecName, compName, rest, nil
}
