package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
)

var (
	// ErrNotFound is returned when a blob does not exist.
	//
	// Implementations return an error that satisfies errors.Is(err, ErrNotFound).
	// It maps to os.ErrNotExist.
	ErrNotFound = os.ErrNotExist

	// ErrInvalidName is returned for names that would escape the store root.
	ErrInvalidName = errors.New("blobstore: invalid blob name")

	// ErrInvalidRange is returned for negative offsets or lengths.
	ErrInvalidRange = errors.New("blobstore: invalid range")
)

// BlobStore is an abstraction for reading and writing named, immutable blobs.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)

	// Put writes a blob atomically, replacing any existing blob of that name.
	Put(ctx context.Context, name string, data []byte) error

	// List returns the sorted names of all blobs starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
// A Blob is safe for concurrent ReadAt and ReadRange calls.
type Blob interface {
	io.Closer

	// ReadAt reads len(p) bytes starting at off. It returns io.EOF when
	// fewer bytes are available.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)

	// ReadRange returns a reader over at most length bytes starting at off.
	// The range is clamped to the end of the blob; off beyond the end
	// returns io.EOF.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)

	// Size returns the size of the blob in bytes.
	Size() int64
}

// Mappable is an optional interface for Blobs whose contents are already
// resident in memory.
type Mappable interface {
	// Bytes returns the underlying byte slice. The slice is valid until the
	// Blob is closed and must not be modified.
	Bytes() ([]byte, error)
}

// clampRange validates [off, off+length) against size and returns the
// clamped end offset.
func clampRange(off, length, size int64) (int64, error) {
	if off < 0 || length < 0 {
		return 0, ErrInvalidRange
	}
	if off > size {
		return 0, io.EOF
	}
	end := off + length
	if end > size || end < off {
		end = size
	}
	return end, nil
}
