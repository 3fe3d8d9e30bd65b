// Package byteenc implements the reversible byte-to-visible-codepoint
// mapping ("GPT-2 byte encoder") used to pass raw bytes through text-only
// tokenizer interfaces.
//
// Grounded on the bytesToUnicode construction shared by the GPT-2 and
// LLaMA-style tokenizer implementations in the retrieved corpus
// (e3n-m2k-gpt2-go, divy-sh-llama3-go): seed the map with the identity on
// the visible ASCII/Latin-1 ranges, then assign the remaining bytes the
// next unused codepoint starting at 256.
package byteenc

import (
	"errors"
	"sync"

	"github.com/tokencore/pretok/codec"
)

// ErrUnknownEncodedByte is returned by UTF8ToByte when the input is not
// one of the 256 mapped visible-codepoint strings.
var ErrUnknownEncodedByte = errors.New("byteenc: unknown encoded byte sequence")

var (
	once      sync.Once
	byteToStr [256]string
	strToByte map[string]byte
)

func build() {
	var visible [256]bool
	assign := func(b int, cp codec.Codepoint) {
		enc, _ := codec.Encode(cp)
		byteToStr[b] = string(enc)
		visible[b] = true
	}
	// Seed with the identity on the three visible ASCII/Latin-1 ranges.
	for b := 0x21; b <= 0x7E; b++ {
		assign(b, codec.Codepoint(b))
	}
	for b := 0xA1; b <= 0xAC; b++ {
		assign(b, codec.Codepoint(b))
	}
	for b := 0xAE; b <= 0xFF; b++ {
		assign(b, codec.Codepoint(b))
	}
	// Assign the remaining bytes the next unused codepoint starting at 256,
	// in ascending byte order.
	next := codec.Codepoint(256)
	for b := 0; b < 256; b++ {
		if visible[b] {
			continue
		}
		assign(b, next)
		next++
	}
	strToByte = make(map[string]byte, 256)
	for b := 0; b < 256; b++ {
		strToByte[byteToStr[b]] = byte(b)
	}
}

func ensureBuilt() {
	once.Do(build)
}

// ByteToUTF8 returns the visible-codepoint UTF-8 string assigned to b.
func ByteToUTF8(b byte) string {
	ensureBuilt()
	return byteToStr[b]
}

// UTF8ToByte is the inverse of ByteToUTF8; it fails with
// ErrUnknownEncodedByte if s is not one of the 256 mapped strings.
func UTF8ToByte(s string) (byte, error) {
	ensureBuilt()
	b, ok := strToByte[s]
	if !ok {
		return 0, ErrUnknownEncodedByte
	}
	return b, nil
}

// Process byte-encodes each pre-token: it first round-trips the string
// through the UTF-8 codec (decode to codepoints, re-encode), which fails
// the whole pre-token on malformed input, then replaces each resulting
// byte with its visible-codepoint mapping.
func Process(preTokens []string) ([]string, error) {
	ensureBuilt()
	out := make([]string, len(preTokens))
	for i, pt := range preTokens {
		cps, err := codec.CodepointsFromUTF8([]byte(pt))
		if err != nil {
			return nil, err
		}
		normalized := codec.CodepointsToUTF8(cps)
		var b []byte
		for _, by := range normalized {
			b = append(b, byteToStr[by]...)
		}
		out[i] = string(b)
	}
	return out, nil
}
