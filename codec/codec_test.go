package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	CRC32 string `json:"crc32"`
	Size  *int64 `json:"size,omitempty"`
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}
	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecs_Compatible(t *testing.T) {
	size := int64(9)
	in := []sample{{Name: "a", CRC32: "cbf43926", Size: &size}, {Name: "b", CRC32: "00000000"}}

	std, err := JSON{}.Marshal(in)
	require.NoError(t, err)
	fast, err := GoJSON{}.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, string(std), string(fast))

	var out []sample
	require.NoError(t, GoJSON{}.Unmarshal(std, &out))
	assert.Equal(t, in, out)

	out = nil
	require.NoError(t, JSON{}.Unmarshal(fast, &out))
	assert.Equal(t, in, out)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "go-json", Default.Name())
}

func BenchmarkCodecMarshal(b *testing.B) {
	in := make([]sample, 1000)
	for i := range in {
		in[i] = sample{Name: "blob", CRC32: "cbf43926"}
	}
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := c.Marshal(in); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
