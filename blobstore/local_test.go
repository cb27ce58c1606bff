package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fsys "github.com/hupe1980/crcgo/internal/fs"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	data := []byte("hello world, this is a test blob for crcgo")
	require.NoError(t, store.Put(ctx, "data-001.bin", data))
	require.NoError(t, store.Put(ctx, "nested/data-002.bin", []byte("x")))

	_, err := os.Stat(filepath.Join(tmpDir, "data-001.bin"))
	require.NoError(t, err)

	blob, err := store.Open(ctx, "data-001.bin")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "world", string(buf))

	rc, err := blob.ReadRange(ctx, 13, 4)
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, "this", string(content))

	m, ok := blob.(Mappable)
	require.True(t, ok)
	b, err := m.Bytes()
	require.NoError(t, err)
	require.Equal(t, data, b)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"data-001.bin", "nested/data-002.bin"}, names)

	names, err = store.List(ctx, "nested/")
	require.NoError(t, err)
	require.Equal(t, []string{"nested/data-002.bin"}, names)
}

func TestLocalStore_ReadRange_Boundaries(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "boundary.bin", []byte("0123456789")))

	blob, err := store.Open(ctx, "boundary.bin")
	require.NoError(t, err)
	defer blob.Close()

	r, err := blob.ReadRange(ctx, 0, 10)
	require.NoError(t, err)
	content, _ := io.ReadAll(r)
	require.Equal(t, "0123456789", string(content))

	// Past end is clamped.
	r, err = blob.ReadRange(ctx, 8, 5)
	require.NoError(t, err)
	content, _ = io.ReadAll(r)
	require.Equal(t, "89", string(content))

	// Exactly at the end yields an empty range.
	r, err = blob.ReadRange(ctx, 10, 5)
	require.NoError(t, err)
	content, _ = io.ReadAll(r)
	require.Empty(t, content)

	_, err = blob.ReadRange(ctx, 20, 5)
	require.ErrorIs(t, err, io.EOF)

	_, err = blob.ReadRange(ctx, -1, 5)
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestLocalStore_EmptyBlob(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "empty", nil))

	blob, err := store.Open(ctx, "empty")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(0), blob.Size())
	b, err := blob.(Mappable).Bytes()
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestLocalStore_Errors(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	_, err := store.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Open(ctx, "../escape")
	assert.ErrorIs(t, err, ErrInvalidName)

	assert.ErrorIs(t, store.Put(ctx, "/abs", nil), ErrInvalidName)

	require.NoError(t, store.Put(ctx, "dir/file", nil))
	_, err = store.Open(ctx, "dir")
	assert.Error(t, err)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = store.Open(cctx, "dir/file")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStore_Unrooted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("123456789"), 0o600))

	store := NewLocalStore("")
	blob, err := store.Open(context.Background(), path)
	require.NoError(t, err)
	defer blob.Close()
	assert.Equal(t, int64(9), blob.Size())
}

func TestLocalStore_PutFaults(t *testing.T) {
	faults := map[string]fsys.Fault{
		"write":  {FailAfterBytes: 3},
		"sync":   {FailAfterBytes: -1, FailOnSync: true},
		"close":  {FailAfterBytes: -1, FailOnClose: true},
		"rename": {FailAfterBytes: -1, FailOnRename: true},
	}
	for name, fault := range faults {
		t.Run(name, func(t *testing.T) {
			tmpDir := t.TempDir()
			ffs := fsys.NewFaultyFS(nil)
			ffs.AddRule(tmpDir, fault)

			store := NewLocalStore(tmpDir)
			store.fs = ffs

			err := store.Put(context.Background(), "blob.bin", []byte("payload"))
			require.ErrorIs(t, err, fsys.ErrInjected)

			// The temporary file is cleaned up and nothing is published.
			require.Len(t, ffs.Removed(), 1)
			_, err = os.Stat(filepath.Join(tmpDir, "blob.bin"))
			assert.True(t, os.IsNotExist(err))

			names, err := store.List(context.Background(), "")
			require.NoError(t, err)
			assert.Empty(t, names)
		})
	}
}
