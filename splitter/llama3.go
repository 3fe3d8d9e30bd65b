package splitter

import (
	"github.com/tokencore/pretok/codec"
	"github.com/tokencore/pretok/uniprops"
)

// Llama3PatternA and Llama3PatternB are the two accepted spellings of the
// LLaMA-3 pre-token pattern (spec §4.7): the case-insensitive-group and
// inline-case-insensitive-flag spellings of the same contraction
// alternation are both recognized literally.
const (
	Llama3PatternA = `(?i:'s|'t|'re|'ve|'m|'ll|'d)|[^\r\n\p{L}\p{N}]?\p{L}+|\p{N}{1,3}| ?[^\s\p{L}\p{N}]+[\r\n]*|\s*[\r\n]+|\s+(?!\S)|\s+`
	Llama3PatternB = `(?i)('s|'t|'re|'ve|'m|'ll|'d)|[^\r\n\p{L}\p{N}]?\p{L}+|\p{N}{1,3}| ?[^\s\p{L}\p{N}]+[\r\n]*|\s*[\r\n]+|\s+(?!\S)|\s+`
)

var llama3Contractions = []string{"s", "t", "m", "d", "re", "ve", "ll"}

// Llama3 implements the LLaMA-3 splitter (spec §4.5): case-insensitive
// contractions, an optional non-letter/non-number/non-newline prefix
// before a letter run (preserving the source's unconditional-first-advance
// quirk, see spec §9), digit runs capped and chunked at 3, a symbol/other
// run that also swallows trailing CR/LF, then the three whitespace rules,
// then a single-codepoint fallback.
func Llama3(cps []codec.Codepoint, offsets []int) []int {
	return applyPerSegment(cps, offsets, llama3Segment)
}

func llama3Segment(c cursor) []int {
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
		// Rule 1: case-insensitive contraction.
		if end, ok := matchLlama3Contraction(c, pos); ok {
			emit(end)
			continue
		}
		// Rule 2: optional non-letter/non-number/non-newline prefix, then
		// letter run. The leading advance is unconditional (source FIXME,
		// preserved verbatim): it also admits a leading letter itself.
		if end, ok := llama3LetterRule(c, pos); ok {
			emit(end)
			continue
		}
		// Rule 3: digit run, split every 3.
		if end, matched := llama3DigitRun(c, pos, emit); matched {
			pos = end
			continue
		}
		// Rule 4: optional-space symbol/other run, plus trailing CR/LF.
		if end, ok := llama3OtherRunWithNewlines(c, pos); ok {
			emit(end)
			continue
		}
		// Rule 5: whitespace run ending in CR/LF.
		n := c.whitespaceRunLen(pos)
		if last, found := lastCRLFIndex(c, pos, n); found {
			emit(last + 1)
			continue
		}
		// Rule 6: whitespace-before-non-whitespace.
		if n > 1 && c.cp(pos+n) != 0 {
			emit(pos + n - 1)
			continue
		}
		// Rule 7: whitespace to end.
		if n > 0 {
			emit(pos + n)
			continue
		}
		// Rule 8: fallback.
		emit(pos + 1)
	}
	return out
}

func matchLlama3Contraction(c cursor, pos int) (int, bool) {
	if c.cp(pos) != '\'' {
		return pos, false
	}
	for _, suf := range llama3Contractions {
		if hasLowerSuffixCI(c, pos+1, suf) {
			return pos + 1 + len(suf), true
		}
	}
	return pos, false
}

func hasLowerSuffixCI(c cursor, pos int, suf string) bool {
	for i := 0; i < len(suf); i++ {
		cp := c.cp(pos + i)
		if uniprops.ToLower(cp) != codec.Codepoint(suf[i]) {
			return false
		}
	}
	return true
}

func llama3LetterRule(c cursor, pos int) (int, bool) {
	first := c.flags(pos)
	cp0 := c.cp(pos)
	if isCRLF(cp0) || first.Category == uniprops.CategoryNumber {
		return pos, false
	}
	if !(isLetter(first) || isLetter(c.flags(pos+1))) {
		return pos, false
	}
	p := pos + 1 // unconditional advance: the documented source quirk.
	for isLetter(c.flags(p)) {
		p++
	}
	return p, true
}

// llama3DigitRun implements "while NUMBER, advance; every 3 consumed
// digits emit an intermediate token; after the loop emit the remainder".
// It reports the new cursor position and whether the rule matched at all.
func llama3DigitRun(c cursor, pos int, emit func(int)) (int, bool) {
	if !isNumber(c.flags(pos)) {
		return pos, false
	}
	p := pos
	count := 0
	for isNumber(c.flags(p)) {
		p++
		count++
		if count == 3 {
			emit(p)
			count = 0
		}
	}
	if count > 0 {
		emit(p)
	}
	return p, true
}

func llama3OtherRunWithNewlines(c cursor, pos int) (int, bool) {
	p, ok := c.optionalSpaceRun(pos, isOther)
	if !ok {
		return pos, false
	}
	for isCRLF(c.cp(p)) {
		p++
	}
	return p, true
}

// lastCRLFIndex returns the index of the last '\r'/'\n' within the
// whitespace run [pos, pos+n), if any.
func lastCRLFIndex(c cursor, pos, n int) (int, bool) {
	found := false
	last := -1
	for i := pos; i < pos+n; i++ {
		if isCRLF(c.cp(i)) {
			last = i
			found = true
		}
	}
	return last, found
}
