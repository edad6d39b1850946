package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/audiosim/blobstore"
	"github.com/hupe1980/audiosim/codec"
	"github.com/hupe1980/audiosim/dataset"
)

func testTable(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.NewTable([]dataset.Record{
		{Key: "a", Columns: map[string]dataset.Value{
			"bpm":  dataset.ScalarValue(120),
			"mfcc": dataset.VectorValue([]float64{0.1, 0.2, 0.3}),
		}},
		{Key: "b", Columns: map[string]dataset.Value{
			"bpm":  dataset.ScalarValue(98.5),
			"mfcc": dataset.VectorValue([]float64{0.4, 0.5, 0.6}),
		}},
	})
	require.NoError(t, err)
	return table
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "defaults"},
		{name: "s2", opts: []Option{WithCompression(CompressionS2)}},
		{name: "lz4", opts: []Option{WithCompression(CompressionLZ4)}},
		{name: "none", opts: []Option{WithCompression(CompressionNone)}},
		{name: "stdlib json", opts: []Option{WithCodec(codec.JSON{})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := blobstore.NewMemoryStore()
			table := testTable(t)

			require.NoError(t, Save(ctx, store, "table.snap", table, tt.opts...))

			got, err := Load(ctx, store, "table.snap")
			require.NoError(t, err)

			require.Equal(t, table.Len(), got.Len())
			assert.Equal(t, table.Schema(), got.Schema())
			for i := 0; i < table.Len(); i++ {
				assert.Equal(t, table.Row(i), got.Row(i))
			}
		})
	}
}

func TestLoadMissingBlob(t *testing.T) {
	_, err := Load(context.Background(), blobstore.NewMemoryStore(), "nope.snap")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestLoadCorruption(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, Save(ctx, store, "table.snap", testTable(t)))

	blob, err := store.Open(ctx, "table.snap")
	require.NoError(t, err)
	data, err := blob.Bytes()
	require.NoError(t, err)
	require.NoError(t, blob.Close())

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{
			name: "bad magic",
			mutate: func(b []byte) []byte {
				b[0] = 'X'
				return b
			},
		},
		{
			name: "unsupported version",
			mutate: func(b []byte) []byte {
				b[4] = 99
				return b
			},
		},
		{
			name: "flipped payload byte",
			mutate: func(b []byte) []byte {
				b[len(b)-1] ^= 0xff
				return b
			},
		},
		{
			name: "truncated payload",
			mutate: func(b []byte) []byte {
				return b[:len(b)-8]
			},
		},
		{
			name: "truncated header",
			mutate: func(b []byte) []byte {
				return b[:3]
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broken := tt.mutate(append([]byte(nil), data...))
			require.NoError(t, store.Put(ctx, "broken.snap", broken))

			_, err := Load(ctx, store, "broken.snap")
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestLoadUnknownCodec(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "table.snap", encodeHeader("msgpack", string(CompressionNone), []byte(`{"rows":[]}`))))

	_, err := Load(ctx, store, "table.snap")
	assert.ErrorIs(t, err, ErrUnknownCodec)
}

func TestLoadUnknownCompression(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "table.snap", encodeHeader(codec.Default.Name(), "zstd", []byte(`{"rows":[]}`))))

	_, err := Load(ctx, store, "table.snap")
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestSaveUnknownCompression(t *testing.T) {
	err := Save(context.Background(), blobstore.NewMemoryStore(), "table.snap", testTable(t), WithCompression("zstd"))
	assert.ErrorIs(t, err, ErrUnknownCompression)
}
