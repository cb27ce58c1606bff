package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Bytes returns n pseudo-random bytes.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	data := make([]byte, n)
	r.rand.Read(data)
	return data
}

// Split cuts data into consecutive chunks of random length up to maxChunk.
// Zero-length chunks are included. The chunks alias data.
func (r *RNG) Split(data []byte, maxChunk int) [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	var chunks [][]byte
	for len(data) > 0 {
		n := r.rand.Intn(min(len(data), maxChunk) + 1)
		chunks = append(chunks, data[:n])
		data = data[n:]
	}
	return chunks
}

// RandomBytes returns n bytes from a fresh RNG seeded with seed.
func RandomBytes(seed int64, n int) []byte {
	return NewRNG(seed).Bytes(n)
}
