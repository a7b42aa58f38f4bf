package encryption

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "FORMLESS_WILL_REMEMBER_YOU"

func TestNewCipherRejectsEmptyKey(t *testing.T) {
	t.Parallel()

	_, err := NewCipher(nil)
	require.ErrorIs(t, err, ErrEmptyKey)
}

func TestCipherKnownOutput(t *testing.T) {
	t.Parallel()

	c, err := NewCipher([]byte(testKey))
	require.NoError(t, err)

	// 'F'^'F' = 0, 'O'^'O' = 0, then 'x'^'R'.
	got := c.apply([]byte("FOx"))
	assert.Equal(t, []byte{0x00, 0x00, 'x' ^ 'R'}, got)
}

func TestCipherRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := NewCipher([]byte(testKey))
	require.NoError(t, err)

	size := len(testKey)

	for _, n := range []int{0, 1, size - 1, size, size + 1, 3*size + 7} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(rand.IntN(256)) //nolint:gosec
		}

		enc := c.apply(data)
		require.Len(t, enc, n)

		if n >= size {
			assert.NotEqual(t, data, enc, "length %d", n)
		}

		assert.Equal(t, data, c.apply(enc), "length %d", n)
	}
}

func TestXORKeyStreamOffset(t *testing.T) {
	t.Parallel()

	c, err := NewCipher([]byte(testKey))
	require.NoError(t, err)

	data := bytes.Repeat([]byte("level data "), 20)
	whole := c.apply(data)

	for _, split := range []int{1, 5, len(testKey), len(testKey) + 3, len(data) - 1} {
		out := make([]byte, len(data))
		c.XORKeyStream(out[:split], data[:split], 0)
		c.XORKeyStream(out[split:], data[split:], int64(split))

		assert.Equal(t, whole, out, "split at %d", split)
	}
}

func TestXORKeyStreamInPlace(t *testing.T) {
	t.Parallel()

	c, err := NewCipher([]byte("k"))
	require.NoError(t, err)

	data := []byte("abc")
	c.XORKeyStream(data, data, 0)
	assert.Equal(t, []byte{'a' ^ 'k', 'b' ^ 'k', 'c' ^ 'k'}, data)
}

func TestTransformMatchesWholeBuffer(t *testing.T) {
	t.Parallel()

	c, err := NewCipher([]byte(testKey))
	require.NoError(t, err)

	// Larger than one pooled buffer so the stream offset crosses chunk boundaries.
	data := bytes.Repeat([]byte("0123456789abcdef"), defaultBufferSize/8+3)

	var out bytes.Buffer

	n, err := transform(c, bytes.NewReader(data), &out)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)
	assert.Equal(t, c.apply(data), out.Bytes())
}

func TestStreamingWriterSmallWrites(t *testing.T) {
	t.Parallel()

	c, err := NewCipher([]byte(testKey))
	require.NoError(t, err)

	data := []byte("one line per level\nanother line\n")

	var out bytes.Buffer

	sw := newStreamingWriter(&out, c)

	for i := range data {
		_, err := sw.Write(data[i : i+1])
		require.NoError(t, err)
	}

	assert.Equal(t, c.apply(data), out.Bytes())
	assert.Equal(t, "one line per level\nanother line\n", string(data), "input must not be modified")
}
