package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokencore/pretok/codec"
)

func segments(t *testing.T, text string, offsets []int) []string {
	t.Helper()
	var out []string
	start := 0
	b := []byte(text)
	// offsets are codepoint-length; rebuild segment byte strings via the codec.
	cps, err := codec.CodepointsFromUTF8(b)
	require.NoError(t, err)
	cpPos := 0
	for _, n := range offsets {
		seg := cps[cpPos : cpPos+n]
		out = append(out, string(codec.CodepointsToUTF8(seg)))
		cpPos += n
		start += n
	}
	_ = start
	return out
}

func split(t *testing.T, fn func([]codec.Codepoint, []int) []int, text string) []string {
	t.Helper()
	cps, err := codec.CodepointsFromUTF8([]byte(text))
	require.NoError(t, err)
	offsets := fn(cps, []int{len(cps)})
	assertOffsetsConserveLength(t, offsets, len(cps))
	return segments(t, text, offsets)
}

func assertOffsetsConserveLength(t *testing.T, offsets []int, total int) {
	t.Helper()
	sum := 0
	for _, o := range offsets {
		sum += o
	}
	assert.Equal(t, total, sum, "offsets must sum to the codepoint count")
}

func TestGPT2Scenarios(t *testing.T) {
	assert.Equal(t, []string{"Hello", ",", " world", "!"}, split(t, GPT2, "Hello, world!"))
	assert.Equal(t, []string{"it", "'s"}, split(t, GPT2, "it's"))
	assert.Equal(t, []string{" ", " a"}, split(t, GPT2, "  a"))
}

func TestLlama3Scenarios(t *testing.T) {
	assert.Equal(t, []string{"It", "'S", " a", " Test", "\n"}, split(t, Llama3, "It'S a Test\n"))
	assert.Equal(t, []string{"123", "456", "7"}, split(t, Llama3, "1234567"))
	assert.Equal(t, []string{"Hello", "\r\n\r\n"}, split(t, Llama3, "Hello\r\n\r\n"))
}

func TestLlama3CaseInsensitiveContraction(t *testing.T) {
	for _, tc := range []struct {
		text string
		want int
	}{{"it's", 2}, {"IT'S", 2}, {"It'S", 2}, {"it'T", 2}, {"IT'RE", 3}} {
		cps, err := codec.CodepointsFromUTF8([]byte(tc.text))
		require.NoError(t, err)
		offsets := Llama3(cps, []int{len(cps)})
		require.NotEmpty(t, offsets)
		assert.Equal(t, tc.want, offsets[len(offsets)-1], "expected a %d-codepoint contraction token for %q", tc.want, tc.text)
	}
}

func TestOffsetConservation(t *testing.T) {
	texts := []string{
		"",
		"a",
		"Hello, world! 123 456789 漢字 \t\n  multiple   spaces",
		"don't can't we'll they're I'm you'd",
		"\r\n\r\n\n  \r",
	}
	for _, text := range texts {
		cps, err := codec.CodepointsFromUTF8([]byte(text))
		require.NoError(t, err)
		assertOffsetsConserveLength(t, GPT2(cps, []int{len(cps)}), len(cps))
		assertOffsetsConserveLength(t, Llama3(cps, []int{len(cps)}), len(cps))
	}
}

func TestCodepointOrderPreserved(t *testing.T) {
	text := "Hello, world! 123 漢字"
	cps, err := codec.CodepointsFromUTF8([]byte(text))
	require.NoError(t, err)
	for _, fn := range []func([]codec.Codepoint, []int) []int{GPT2, Llama3} {
		offsets := fn(cps, []int{len(cps)})
		var rebuilt []codec.Codepoint
		pos := 0
		for _, n := range offsets {
			rebuilt = append(rebuilt, cps[pos:pos+n]...)
			pos += n
		}
		assert.Equal(t, cps, rebuilt)
	}
}

func TestEmptyInput(t *testing.T) {
	assert.Empty(t, GPT2(nil, []int{0}))
	assert.Empty(t, Llama3(nil, []int{0}))
}
