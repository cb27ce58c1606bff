// Package pool provides reusable read buffers for checksum jobs.
// Uses sync.Pool for automatic memory reuse across blobs and parts.
package pool

import "sync"

// DefaultBufferSize is the size of pooled read buffers.
const DefaultBufferSize = 256 << 10

// Buffers is a pool of fixed-size byte slices.
type Buffers struct {
	size int
	pool sync.Pool
}

// NewBuffers creates a pool of size-byte buffers.
// If size <= 0, DefaultBufferSize is used.
func NewBuffers(size int) *Buffers {
	if size <= 0 {
		size = DefaultBufferSize
	}
	b := &Buffers{size: size}
	b.pool.New = func() any {
		buf := make([]byte, size)
		return &buf
	}
	return b
}

// Size returns the length of buffers handed out by Get.
func (b *Buffers) Size() int { return b.size }

// Get retrieves a buffer from the pool. Its contents are unspecified.
func (b *Buffers) Get() *[]byte {
	return b.pool.Get().(*[]byte)
}

// Put returns a buffer to the pool for reuse.
// Buffers of a different size are dropped.
func (b *Buffers) Put(buf *[]byte) {
	if buf == nil || len(*buf) != b.size {
		return
	}
	b.pool.Put(buf)
}
