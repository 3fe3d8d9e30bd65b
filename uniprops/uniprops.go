// Package uniprops flattens static Unicode range tables into O(1)
// per-codepoint flag lookup, plus lowercase/uppercase and NFD queries.
//
// The category/whitespace/case data is derived once, lazily, from the Go
// standard library's own unicode.RangeTables — walking their (lo, hi,
// stride) entries is exactly the "strictly increasing list of boundary
// pairs" construction spec'd for this table, just sourced from the
// standard library's Unicode data instead of a hand-transcribed copy of
// it (see DESIGN.md). The NFD table is a small, hand-written, flat
// lookup — deliberately not full canonical decomposition (see nfd.go).
//
// Because this sourcing follows the Go standard library's own Unicode
// tables rather than llama.cpp's unicode_ranges_flags/unicode_set_whitespace
// tables, a handful of non-ASCII codepoints classify differently than the
// original (e.g. U+0085 NEL and U+00A0 NBSP are whitespace in one table set
// and not the other); bit-exactness with the original is only guaranteed
// for ASCII.
package uniprops

import (
	"sync"
	"unicode"

	"github.com/tokencore/pretok/codec"
)

// Category is a mutually exclusive classification of a codepoint.
type Category uint8

// Category values, in the priority order they are assigned during table
// construction (first matching standard-library range table wins).
const (
	CategoryUndefined Category = iota
	CategoryControl
	CategoryNumber
	CategoryLetter
	CategorySeparator
	CategoryAccentMark
	CategoryPunctuation
	CategorySymbol
)

// Flags aggregates a codepoint's category plus independent boolean bits.
type Flags struct {
	Category   Category
	Whitespace bool
	Lowercase  bool
	Uppercase  bool
	NFD        bool
}

// Undefined is the flags value returned for codepoints outside the table
// or for an empty UTF-8 prefix.
var Undefined = Flags{Category: CategoryUndefined}

const tableSize = 0x110000

var (
	once      sync.Once
	flagTable []Flags
	lowerMap  map[codec.Codepoint]codec.Codepoint
)

type categoryTable struct {
	category Category
	table    *unicode.RangeTable
}

// Priority order matters only in the (non-existent, by Unicode design)
// case of overlap between major general-category groups; kept explicit
// to match the spec's "first matching range wins" construction model.
var categoryTables = []categoryTable{
	{CategoryControl, unicode.Cc},
	{CategoryNumber, unicode.N},
	{CategoryLetter, unicode.L},
	{CategorySeparator, unicode.Z},
	{CategoryAccentMark, unicode.M},
	{CategoryPunctuation, unicode.P},
	{CategorySymbol, unicode.S},
}

func build() {
	flagTable = make([]Flags, tableSize)
	for _, ct := range categoryTables {
		forEachCodepointIn(ct.table, func(cp int) {
			if flagTable[cp].Category == CategoryUndefined {
				flagTable[cp].Category = ct.category
			}
		})
	}
	forEachCodepointIn(unicode.White_Space, func(cp int) {
		flagTable[cp].Whitespace = true
	})
	lowerMap = make(map[codec.Codepoint]codec.Codepoint)
	for cp := 0; cp < tableSize; cp++ {
		r := rune(cp)
		if unicode.IsLower(r) {
			flagTable[cp].Lowercase = true
		}
		if unicode.IsUpper(r) {
			flagTable[cp].Uppercase = true
		}
		if lower := unicode.ToLower(r); lower != r {
			lowerMap[codec.Codepoint(cp)] = codec.Codepoint(lower)
		}
	}
	for _, rg := range nfdRanges {
		flagTable[rg.NFD].NFD = true
	}
}

// forEachCodepointIn walks a unicode.RangeTable's R16/R32 entries and
// invokes fn for every codepoint the table covers, honoring stride.
func forEachCodepointIn(t *unicode.RangeTable, fn func(cp int)) {
	for _, r := range t.R16 {
		for cp := int(r.Lo); cp <= int(r.Hi); cp += int(r.Stride) {
			fn(cp)
		}
	}
	for _, r := range t.R32 {
		for cp := uint32(r.Lo); cp <= r.Hi; cp += r.Stride {
			fn(int(cp))
		}
	}
}

func ensureBuilt() {
	once.Do(build)
}

// CptFlags returns the flags for cp, or Undefined if cp is out of range.
func CptFlags(cp codec.Codepoint) Flags {
	ensureBuilt()
	if cp >= tableSize {
		return Undefined
	}
	return flagTable[cp]
}

// CptFlagsUTF8 returns the flags of the first codepoint decoded from
// utf8, or Undefined if utf8 is empty or malformed.
func CptFlagsUTF8(utf8 []byte) Flags {
	if len(utf8) == 0 {
		return Undefined
	}
	cp, _, err := codec.Decode(utf8, 0)
	if err != nil {
		return Undefined
	}
	return CptFlags(cp)
}

// ToLower returns the lowercase mapping of cp, or cp itself if none exists.
func ToLower(cp codec.Codepoint) codec.Codepoint {
	ensureBuilt()
	if v, ok := lowerMap[cp]; ok {
		return v
	}
	return cp
}

// NormalizeNFD replaces each codepoint that falls inside an NFD range with
// that range's target, leaving all others unchanged. The result always has
// the same length as cps.
func NormalizeNFD(cps []codec.Codepoint) []codec.Codepoint {
	out := make([]codec.Codepoint, len(cps))
	for i, cp := range cps {
		out[i] = nfdLookup(cp)
	}
	return out
}

// nfdLookup binary-searches nfdRanges (sorted, non-overlapping, ascending
// by First) for the range containing cp.
func nfdLookup(cp codec.Codepoint) codec.Codepoint {
	lo, hi := 0, len(nfdRanges)
	for lo < hi {
		mid := (lo + hi) / 2
		rg := nfdRanges[mid]
		switch {
		case cp < rg.First:
			hi = mid
		case cp > rg.Last:
			lo = mid + 1
		default:
			return rg.NFD
		}
	}
	return cp
}
