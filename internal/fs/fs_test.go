package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, Default.MkdirAll(dir, 0o755))

	f, err := Default.CreateTemp(dir, ".tmp-*")
	require.NoError(t, err)
	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	dst := filepath.Join(dir, "out")
	require.NoError(t, Default.Rename(f.Name(), dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, Default.Remove(dst))
	_, err = os.Stat(dst)
	assert.True(t, os.IsNotExist(err))
}

func TestFaultyFS_FailAfterBytes(t *testing.T) {
	dir := t.TempDir()
	ffs := NewFaultyFS(nil)
	ffs.AddRule(dir, Fault{FailAfterBytes: 4})

	f, err := ffs.CreateTemp(dir, "x-*")
	require.NoError(t, err)
	defer f.Close()

	n, err := f.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = f.Write([]byte("de"))
	require.ErrorIs(t, err, ErrInjected)
}

func TestFaultyFS_SyncCloseRename(t *testing.T) {
	dir := t.TempDir()
	custom := errors.New("disk on fire")
	ffs := NewFaultyFS(LocalFS{})
	ffs.AddRule(dir, Fault{FailAfterBytes: -1, FailOnSync: true, FailOnClose: true, FailOnRename: true, Err: custom})

	f, err := ffs.CreateTemp(dir, "x-*")
	require.NoError(t, err)
	require.ErrorIs(t, f.Sync(), custom)
	require.ErrorIs(t, f.Close(), custom)
	require.ErrorIs(t, ffs.Rename(f.Name(), filepath.Join(dir, "dst")), custom)

	require.NoError(t, ffs.Remove(f.Name()))
	assert.Equal(t, []string{f.Name()}, ffs.Removed())
}

func TestFaultyFS_NoRule(t *testing.T) {
	dir := t.TempDir()
	ffs := NewFaultyFS(nil)

	f, err := ffs.CreateTemp(dir, "x-*")
	require.NoError(t, err)
	_, err = f.Write(make([]byte, 1<<16))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())
	require.NoError(t, ffs.Rename(f.Name(), filepath.Join(dir, "dst")))
}
