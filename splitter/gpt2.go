package splitter

import "github.com/tokencore/pretok/codec"

// GPT2Pattern is the exact, recognized GPT-2 pre-token pattern string.
const GPT2Pattern = `'s|'t|'re|'ve|'m|'ll|'d| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+(?!\S)`

var gpt2Contractions = []string{"s", "t", "m", "d", "re", "ve", "ll"}

// GPT2 implements the GPT-2 splitter (spec §4.4): contractions, then
// optional-space letter/number/other runs, then the two whitespace rules,
// then a single-codepoint fallback — tried in that order at every cursor
// position.
func GPT2(cps []codec.Codepoint, offsets []int) []int {
	return applyPerSegment(cps, offsets, gpt2Segment)
}

func gpt2Segment(c cursor) []int {
	var out []int
	pos := c.ini
	prevEnd := c.ini
	emit := func(newPos int) {
		pos = newPos
		if pos > prevEnd {
			out = append(out, pos-prevEnd)
			prevEnd = pos
		}
	}

	for pos < c.end {
		// Rule 1: contraction.
		if end, ok := matchGPT2Contraction(c, pos); ok {
			emit(end)
			continue
		}
		// Rule 2: optional-space letter run.
		if end, ok := c.optionalSpaceRun(pos, isLetter); ok {
			emit(end)
			continue
		}
		// Rule 3: optional-space number run.
		if end, ok := c.optionalSpaceRun(pos, isNumber); ok {
			emit(end)
			continue
		}
		// Rule 4: optional-space symbol/other run.
		if end, ok := c.optionalSpaceRun(pos, isOther); ok {
			emit(end)
			continue
		}
		// Rules 5 & 6: whitespace.
		n := c.whitespaceRunLen(pos)
		if n > 1 && c.cp(pos+n) != 0 {
			emit(pos + n - 1)
			continue
		}
		if n > 0 {
			emit(pos + n)
			continue
		}
		// Rule 7: fallback.
		emit(pos + 1)
	}
	return out
}

// matchGPT2Contraction matches 's|'t|'re|'ve|'m|'ll|'d, case-sensitive,
// against ASCII lowercase letters only, exactly as the GPT-2 pattern does
// (unlike the LLaMA-3 splitter's case-insensitive contraction rule).
func matchGPT2Contraction(c cursor, pos int) (int, bool) {
	if c.cp(pos) != '\'' {
		return pos, false
	}
	for _, suf := range gpt2Contractions {
		if hasLowerASCIISuffix(c, pos+1, suf) {
			return pos + 1 + len(suf), true
		}
	}
	return pos, false
}

func hasLowerASCIISuffix(c cursor, pos int, suf string) bool {
	for i := 0; i < len(suf); i++ {
		cp := c.cp(pos + i)
		if cp != codec.Codepoint(suf[i]) {
			return false
		}
	}
	return true
}
