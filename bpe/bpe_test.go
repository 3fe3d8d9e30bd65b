package bpe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identityVocab returns the 256 single-byte vocabulary with no merges:
// vocab[i] == []byte{byte(i)}, so rank i always decodes back to byte i.
func identityVocab() [][]byte {
	vocab := make([][]byte, 256)
	for i := range vocab {
		vocab[i] = []byte{byte(i)}
	}
	return vocab
}

func TestEncodeDecodeRoundTripNoMerges(t *testing.T) {
	vocab := identityVocab()
	core, err := NewCore(vocab, nil, NewGPT2Segmenter())
	require.NoError(t, err)

	text := "Hello, world! 123"
	toks := core.EncodeOrdinary(text)
	assert.Equal(t, len(text), len(toks), "no merges means one token per byte")

	out, err := core.DecodeUTF8(toks)
	require.NoError(t, err)
	assert.Equal(t, text, out)
}

func TestBytePairMergeCombinesHighPriorityPair(t *testing.T) {
	vocab := identityVocab()
	vocab = append(vocab, []byte("he")) // rank 256
	core, err := NewCore(vocab, nil, NewGPT2Segmenter())
	require.NoError(t, err)

	toks := core.EncodeOrdinary("he")
	assert.Equal(t, []uint32{256}, toks)

	out, err := core.DecodeUTF8(toks)
	require.NoError(t, err)
	assert.Equal(t, "he", out)
}

func TestSpecialTokenEncodingAndDecoding(t *testing.T) {
	vocab := identityVocab()
	specials := map[string]Rank{"<|endoftext|>": 256}
	core, err := NewCore(vocab, specials, NewGPT2Segmenter())
	require.NoError(t, err)

	allowed := map[string]struct{}{"<|endoftext|>": {}}
	toks, _ := core.Encode("a<|endoftext|>b", allowed)
	require.Len(t, toks, 3)
	assert.Equal(t, uint32('a'), toks[0])
	assert.Equal(t, uint32(256), toks[1])
	assert.Equal(t, uint32('b'), toks[2])
	assert.True(t, core.IsSpecialToken(256))
	assert.False(t, core.IsSpecialToken(255))

	out, err := core.DecodeBytes(toks)
	require.NoError(t, err)
	assert.Equal(t, "a<|endoftext|>b", string(out))
}

func TestEncodeOrdinaryIgnoresSpecialLiterals(t *testing.T) {
	vocab := identityVocab()
	specials := map[string]Rank{"<|endoftext|>": 256}
	core, err := NewCore(vocab, specials, NewGPT2Segmenter())
	require.NoError(t, err)

	toks := core.EncodeOrdinary("<|endoftext|>")
	for _, tok := range toks {
		assert.NotEqual(t, uint32(256), tok)
	}
}

func TestDecodeInvalidTokenErrors(t *testing.T) {
	vocab := identityVocab()
	core, err := NewCore(vocab, nil, NewGPT2Segmenter())
	require.NoError(t, err)

	_, err = core.DecodeBytes([]uint32{9999})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEncodeIntoOrdinaryMatchesEncode(t *testing.T) {
	vocab := identityVocab()
	core, err := NewCore(vocab, nil, NewLlama3Segmenter())
	require.NoError(t, err)

	text := "It'S a Test\n1234567"
	want := core.EncodeOrdinary(text)

	var got []uint32
	n := core.EncodeIntoOrdinary(text, &got)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, n, "digit run chunks into separate pre-tokens; the final one is the lone trailing '7'")
}
