// Package blobstore provides the storage abstraction crcgo reads blobs from.
//
// BlobStore is the interface for opening, writing and listing named blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with mmap-backed reads
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Blobs support positional reads and range streams, so large blobs can be
// checksummed as independent parts:
//
//	type Blob interface {
//	    ReadAt(ctx, p, off) (int, error)
//	    ReadRange(ctx, off, len) (io.ReadCloser, error)
//	    Size() int64
//	    Close() error
//	}
//
// Blobs that are already resident in memory may also implement Mappable,
// which lets callers checksum them without copying.
package blobstore
