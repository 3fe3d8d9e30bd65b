package byteenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBijection(t *testing.T) {
	seen := make(map[string]bool, 256)
	for b := 0; b < 256; b++ {
		s := ByteToUTF8(byte(b))
		require.False(t, seen[s], "duplicate encoded string for byte %d", b)
		seen[s] = true

		back, err := UTF8ToByte(s)
		require.NoError(t, err)
		assert.Equal(t, byte(b), back)
	}
	assert.Len(t, seen, 256)
}

func TestUTF8ToByteUnknown(t *testing.T) {
	_, err := UTF8ToByte("not a mapped string")
	assert.ErrorIs(t, err, ErrUnknownEncodedByte)
}

func TestSeededIdentityRanges(t *testing.T) {
	// Visible ASCII keeps its own byte value as a single-byte string.
	assert.Equal(t, "!", ByteToUTF8('!'))
	assert.Equal(t, "~", ByteToUTF8('~'))
}

func TestProcessEncodesRawBytes(t *testing.T) {
	out, err := Process([]string{"Hi"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, ByteToUTF8('H')+ByteToUTF8('i'), out[0])
}

func TestProcessRejectsMalformedUTF8(t *testing.T) {
	_, err := Process([]string{string([]byte{0xFF})})
	assert.Error(t, err)
}
