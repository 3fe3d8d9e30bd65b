package bpe

import (
	"strings"
	"testing"
)

// benchCore uses the identity vocabulary rather than a downloaded
// vocabulary file, so these benchmarks exercise the merge loop itself
// without a network dependency (unlike the teacher's LoadO200k-backed
// benchmarks, which assumed a pre-fetched or cached encoding file).
func benchCore(b *testing.B) *Core {
	b.Helper()
	core, err := NewCore(identityVocab(), nil, NewGPT2Segmenter())
	if err != nil {
		b.Fatalf("new core: %v", err)
	}
	return core
}

func BenchmarkEncodePiece_Short(b *testing.B) {
	core := benchCore(b)
	piece := "weather"
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		toks := core.bytePairEncode(piece)
		if len(toks) == 0 {
			b.Fatal("expected tokens")
		}
	}
}

func BenchmarkEncodePiece_Medium(b *testing.B) {
	core := benchCore(b)
	piece := "San Francisco weather forecast for the next five days with precipitation chances"
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		toks := core.bytePairEncode(piece)
		if len(toks) == 0 {
			b.Fatal("expected tokens")
		}
	}
}

func BenchmarkEncodePiece_Large(b *testing.B) {
	core := benchCore(b)
	base := "Summarise the full itinerary including breakfast, museum visits, hikes, dinner plans, and transit notes. "
	piece := strings.Repeat(base, 8)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		toks := core.bytePairEncode(piece)
		if len(toks) == 0 {
			b.Fatal("expected tokens")
		}
	}
}

func BenchmarkEncodeOrdinary(b *testing.B) {
	core := benchCore(b)
	text := "The quick brown fox jumps over the lazy dog. 1234567890."
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		toks := core.EncodeOrdinary(text)
		if len(toks) == 0 {
			b.Fatal("expected tokens")
		}
	}
}
