package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "a.json", []byte("payload")))

	blob, err := store.Open(ctx, "a.json")
	require.NoError(t, err)
	defer blob.Close()

	data, err := blob.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
	assert.Equal(t, int64(7), blob.Size())
}

func TestMemoryStoreOpenMissing(t *testing.T) {
	_, err := NewMemoryStore().Open(context.Background(), "nope.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "b.json", []byte("{}")))
	require.NoError(t, store.Put(ctx, "a.json", []byte("{}")))
	require.NoError(t, store.Put(ctx, "sub/c.json", []byte("{}")))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.json", "sub/c.json"}, names)

	names, err = store.List(ctx, "sub/")
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/c.json"}, names)
}

func TestMemoryStoreCopiesData(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	src := []byte("original")
	require.NoError(t, store.Put(ctx, "a.json", src))
	src[0] = 'X'

	blob, err := store.Open(ctx, "a.json")
	require.NoError(t, err)
	defer blob.Close()

	data, err := blob.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), data)
}
