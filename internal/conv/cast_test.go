package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUint64ToInt64(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := Uint64ToInt64(0)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), got)
	})

	t.Run("valid max", func(t *testing.T) {
		got, err := Uint64ToInt64(math.MaxInt64)
		assert.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), got)
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := Uint64ToInt64(math.MaxInt64 + 1)
		assert.Error(t, err)
	})
}

func TestInt64ToUint64(t *testing.T) {
	t.Run("valid positive", func(t *testing.T) {
		got, err := Int64ToUint64(8 << 20)
		assert.NoError(t, err)
		assert.Equal(t, uint64(8<<20), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := Int64ToUint64(-1)
		assert.Error(t, err)
	})
}
