package crcgo

import (
	"hash/crc32"
	"testing"

	kcrc32 "github.com/klauspost/crc32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/crcgo/testutil"
)

func sumOf(p []byte) uint32 {
	h := New()
	h.Update(p)
	return h.Finalize()
}

func TestHasher_CheckValue(t *testing.T) {
	assert.Equal(t, uint32(0xcbf43926), sumOf([]byte("123456789")))
	assert.Equal(t, uint32(0xcbf43926), Checksum([]byte("123456789")))
}

func TestHasher_EmptyInput(t *testing.T) {
	want := crc32.ChecksumIEEE(nil)
	require.Equal(t, uint32(0x00000000), want)

	h := New()
	assert.Equal(t, want, h.Finalize())

	h = New()
	h.Update(nil)
	h.Update([]byte{})
	assert.Equal(t, want, h.Finalize())
	assert.Equal(t, want, Checksum(nil))
}

func TestHasher_KnownVectors(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 0x00000000},
		{"a", 0xe8b7be43},
		{"abc", 0x352441c2},
		{"hello world", 0x0d4a1185},
		{"The quick brown fox jumps over the lazy dog", 0x414fa339},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Checksum([]byte(tt.in)))
		})
	}
}

func TestHasher_MatchesReferenceImplementations(t *testing.T) {
	for i, n := range []int{1, 2, 15, 16, 17, 255, 1024, 65_537} {
		data := testutil.RandomBytes(int64(i), n)
		got := Checksum(data)
		assert.Equal(t, crc32.ChecksumIEEE(data), got, "hash/crc32 len %d", n)
		assert.Equal(t, kcrc32.ChecksumIEEE(data), got, "klauspost/crc32 len %d", n)
	}
}

func TestHasher_Deterministic(t *testing.T) {
	data := testutil.RandomBytes(1, 4096)
	first := sumOf(data)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, sumOf(data))
	}
}

func TestHasher_ChunkInvariance(t *testing.T) {
	data := testutil.RandomBytes(2, 8192)
	want := sumOf(data)
	rng := testutil.NewRNG(3)

	for round := 0; round < 100; round++ {
		h := New()
		// Zero-length chunks are allowed and must be no-ops.
		for _, chunk := range rng.Split(data, 300) {
			h.Update(chunk)
		}
		h.Update(nil)
		require.Equal(t, want, h.Finalize(), "round %d", round)
	}
}

func TestHasher_ByteAtATime(t *testing.T) {
	data := testutil.RandomBytes(4, 1000)

	h := New()
	for i := range data {
		h.Update(data[i : i+1])
	}
	assert.Equal(t, sumOf(data), h.Finalize())
}

func TestHasher_Amount(t *testing.T) {
	h := New()
	assert.Equal(t, int64(0), h.Amount())
	h.Update([]byte("abc"))
	h.Update([]byte("de"))
	assert.Equal(t, int64(5), h.Amount())
}

func TestHasher_IndependentInstances(t *testing.T) {
	a, b := New(), New()
	a.Update([]byte("123456789"))
	assert.Equal(t, uint32(0), b.Finalize())
	assert.Equal(t, uint32(0xcbf43926), a.Finalize())
}

func TestHasher_MisuseAfterFinalize(t *testing.T) {
	h := New()
	h.Update([]byte("data"))
	sum := h.Finalize()
	assert.Equal(t, Checksum([]byte("data")), sum)

	require.PanicsWithValue(t, ErrFinalized, func() { h.Update([]byte("more")) })
	require.PanicsWithValue(t, ErrFinalized, func() { h.Finalize() })
	require.PanicsWithValue(t, ErrFinalized, func() { h.Sum32() })
	require.PanicsWithValue(t, ErrFinalized, func() { New().Combine(h) })

	// A failed Update must not have changed the state either.
	assert.Equal(t, int64(4), h.Amount())
}

func TestHasher_ResetReopens(t *testing.T) {
	h := New()
	h.Update([]byte("junk"))
	_ = h.Finalize()

	h.Reset()
	h.Update([]byte("123456789"))
	assert.Equal(t, uint32(0xcbf43926), h.Finalize())
}

func TestHasher_Sum32DoesNotFinalize(t *testing.T) {
	h := New()
	h.Update([]byte("1234"))
	assert.Equal(t, Checksum([]byte("1234")), h.Sum32())

	h.Update([]byte("56789"))
	assert.Equal(t, uint32(0xcbf43926), h.Finalize())
}

func TestHasher_NewWithInitial(t *testing.T) {
	data := []byte("123456789")
	prefix := Checksum(data[:4])

	h := NewWithInitial(prefix, 4)
	h.Update(data[4:])
	assert.Equal(t, int64(len(data)), h.Amount())
	assert.Equal(t, uint32(0xcbf43926), h.Finalize())
}

func TestHasher_Combine(t *testing.T) {
	data := testutil.RandomBytes(5, 5000)

	for _, split := range []int{0, 1, 100, 2500, 4999, 5000} {
		a, b := New(), New()
		a.Update(data[:split])
		b.Update(data[split:])

		a.Combine(b)
		assert.Equal(t, int64(len(data)), a.Amount())
		assert.Equal(t, Checksum(data), a.Finalize(), "split %d", split)

		// other stays usable.
		assert.Equal(t, Checksum(data[split:]), b.Finalize())
	}
}

func TestCombine_Function(t *testing.T) {
	a := []byte("12345")
	b := []byte("6789")
	assert.Equal(t, uint32(0xcbf43926), Combine(Checksum(a), Checksum(b), int64(len(b))))
}

func TestHasher_ConcurrentMatchesSequential(t *testing.T) {
	const n = 64
	inputs := make([][]byte, n)
	want := make([]uint32, n)
	for i := range inputs {
		inputs[i] = testutil.RandomBytes(int64(100+i), 1000+i*37)
		want[i] = sumOf(inputs[i])
	}

	got := make([]uint32, n)
	var g errgroup.Group
	for i := range inputs {
		g.Go(func() error {
			h := New()
			data := inputs[i]
			for len(data) > 0 {
				k := min(len(data), 97)
				h.Update(data[:k])
				data = data[k:]
			}
			got[i] = h.Finalize()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, want, got)
}

func TestNewHash32(t *testing.T) {
	h := NewHash32()
	assert.Equal(t, Size, h.Size())
	assert.Equal(t, 1, h.BlockSize())

	std := crc32.NewIEEE()
	for _, chunk := range []string{"hello", " ", "world"} {
		_, err := h.Write([]byte(chunk))
		require.NoError(t, err)
		_, err = std.Write([]byte(chunk))
		require.NoError(t, err)

		assert.Equal(t, std.Sum32(), h.Sum32())
		assert.Equal(t, std.Sum([]byte("prefix")), h.Sum([]byte("prefix")))
	}

	h.Reset()
	assert.Equal(t, uint32(0), h.Sum32())
}

func BenchmarkChecksum(b *testing.B) {
	data := testutil.RandomBytes(0, 1<<20)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Checksum(data)
	}
}

func BenchmarkCombine(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Combine(0xcbf43926, 0x414fa339, 1<<30)
	}
}
