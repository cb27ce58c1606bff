package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte("0123456789")
	require.NoError(t, store.Put(ctx, "b/two", data))
	require.NoError(t, store.Put(ctx, "a/one", []byte("1")))

	// Put copies its input.
	data[0] = 'X'

	blob, err := store.Open(ctx, "b/two")
	require.NoError(t, err)
	assert.Equal(t, int64(10), blob.Size())

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "0123", string(buf))

	n, err = blob.ReadAt(ctx, buf, 8)
	assert.Equal(t, 2, n)
	assert.Equal(t, io.EOF, err)

	rc, err := blob.ReadRange(ctx, 3, 100)
	require.NoError(t, err)
	content, _ := io.ReadAll(rc)
	assert.Equal(t, "3456789", string(content))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/one", "b/two"}, names)

	require.NoError(t, store.Delete(ctx, "a/one"))
	_, err = store.Open(ctx, "a/one")
	assert.ErrorIs(t, err, ErrNotFound)
}
