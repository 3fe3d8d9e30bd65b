package uniprops

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tokencore/pretok/codec"
)

func TestCptFlagsCategories(t *testing.T) {
	tests := []struct {
		name string
		cp   codec.Codepoint
		want Category
	}{
		{"ascii letter", 'A', CategoryLetter},
		{"ascii digit", '5', CategoryNumber},
		{"ascii space", ' ', CategorySeparator},
		{"exclamation", '!', CategoryPunctuation},
		{"cjk letter", 0x6F22, CategoryLetter},
		{"plus sign", '+', CategorySymbol},
		{"newline is control", '\n', CategoryControl},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CptFlags(tt.cp).Category)
		})
	}
}

func TestCptFlagsOutOfRange(t *testing.T) {
	assert.Equal(t, Undefined, CptFlags(0x110000))
	assert.Equal(t, Undefined, CptFlags(0xFFFFFFFF))
}

func TestCptFlagsUTF8Empty(t *testing.T) {
	assert.Equal(t, Undefined, CptFlagsUTF8(nil))
	assert.Equal(t, Undefined, CptFlagsUTF8([]byte{}))
}

func TestWhitespaceFlag(t *testing.T) {
	for _, r := range []codec.Codepoint{' ', '\t', '\n', '\r', '\v', '\f'} {
		assert.True(t, CptFlags(r).Whitespace, "expected %q to be whitespace", r)
	}
	assert.False(t, CptFlags('a').Whitespace)
}

func TestToLower(t *testing.T) {
	assert.Equal(t, codec.Codepoint('a'), ToLower('A'))
	assert.Equal(t, codec.Codepoint('a'), ToLower('a'))
	assert.Equal(t, codec.Codepoint('5'), ToLower('5'))
}

func TestNormalizeNFD(t *testing.T) {
	in := []codec.Codepoint{'c', 0x00E9 /* é, maps to 'e' */, 0x00C0 /* À */, 'd'}
	out := NormalizeNFD(in)
	assert.Len(t, out, len(in))
	assert.Equal(t, codec.Codepoint('A'), out[2])
	assert.Equal(t, codec.Codepoint('c'), out[0])
	assert.Equal(t, codec.Codepoint('d'), out[3])
}

func TestNormalizeNFDIdempotent(t *testing.T) {
	in := []codec.Codepoint{0x00C0, 0x00E7, 'x'}
	once := NormalizeNFD(in)
	twice := NormalizeNFD(once)
	assert.Equal(t, once, twice)
}
