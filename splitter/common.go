// Package splitter implements the two hand-written pre-tokenization state
// machines — the GPT-2 splitter and the LLaMA-3 splitter — that reproduce
// specific regex behaviors without invoking a regex engine.
//
// Grounded in structure on the teacher's tokenizer/segmenter.go (cursor
// discipline, small ASCII-fast-path helper functions), re-expressed over
// the spec's codepoint-offset-list model: each exported function reads an
// offset list and returns a refined offset list whose segments partition
// the same codepoint range.
package splitter

import (
	"github.com/tokencore/pretok/codec"
	"github.com/tokencore/pretok/uniprops"
)

// cursor gives bounds-checked cp/flags access over a fixed codepoint
// slice, returning 0/Undefined outside [ini, end) per spec §4.4.
type cursor struct {
	cps      []codec.Codepoint
	ini, end int
}

func (c cursor) cp(i int) codec.Codepoint {
	if i < c.ini || i >= c.end {
		return 0
	}
	return c.cps[i]
}

func (c cursor) flags(i int) uniprops.Flags {
	if i < c.ini || i >= c.end {
		return uniprops.Undefined
	}
	return uniprops.CptFlags(c.cps[i])
}

// effectiveFlags implements the "optional leading space" class test shared
// by the letter/number/other rules in both splitters: look at the
// codepoint after a single leading space, else at pos itself.
func (c cursor) effectiveFlags(pos int) uniprops.Flags {
	if c.cp(pos) == ' ' {
		return c.flags(pos + 1)
	}
	return c.flags(pos)
}

func isLetter(f uniprops.Flags) bool { return f.Category == uniprops.CategoryLetter }
func isNumber(f uniprops.Flags) bool { return f.Category == uniprops.CategoryNumber }

// isOther is "not whitespace, not letter, not number, not undefined".
func isOther(f uniprops.Flags) bool {
	return !f.Whitespace &&
		f.Category != uniprops.CategoryLetter &&
		f.Category != uniprops.CategoryNumber &&
		f.Category != uniprops.CategoryUndefined
}

// optionalSpaceRun consumes an optional single leading space then the
// maximal run matching class, provided effectiveFlags(pos) already
// matches class. Returns the new position and whether anything matched.
func (c cursor) optionalSpaceRun(pos int, class func(uniprops.Flags) bool) (int, bool) {
	if !class(c.effectiveFlags(pos)) {
		return pos, false
	}
	p := pos
	if c.cp(p) == ' ' {
		p++
	}
	for class(c.flags(p)) {
		p++
	}
	return p, true
}

// whitespaceRunLen returns the length of the maximal whitespace run
// starting at pos.
func (c cursor) whitespaceRunLen(pos int) int {
	n := 0
	for c.flags(pos+n).Whitespace {
		n++
	}
	return n
}

func isCRLF(cp codec.Codepoint) bool { return cp == '\r' || cp == '\n' }

// applyPerSegment runs machine independently over each segment described
// by offsets (consecutive segment lengths over cps), concatenating the refined
// sub-offsets it returns for every segment.
func applyPerSegment(cps []codec.Codepoint, offsets []int, machine func(cursor) []int) []int {
	var out []int
	start := 0
	for _, length := range offsets {
		end := start + length
		out = append(out, machine(cursor{cps: cps, ini: start, end: end})...)
		start = end
	}
	return out
}
