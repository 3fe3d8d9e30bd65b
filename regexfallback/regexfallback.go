// Package regexfallback implements the "category collapse" trick (spec
// §4.6): substitute a one-byte stand-in for any non-ASCII codepoint so
// that a plain regex engine's ASCII character classes can stand in for
// \p{L}/\p{N}/\p{P}, then run an arbitrary user-supplied regex pattern
// against that collapsed text.
//
// Go's standard regexp package already decodes \p{L}/\p{N}/\p{P} natively;
// the collapse machinery is implemented anyway because it is an explicit,
// named architectural component of the pre-tokenization core (spec §2,
// §4.6), not an optimization this port is free to skip.
//
// Stand-in bytes: the source design (spec §9) picks 0xD0..0xD3 because the
// target engine there treats unmatched input bytes literally. Go's regexp
// decodes subject text as UTF-8 and replaces any byte sequence it cannot
// decode with U+FFFD before matching — so two different high stand-in
// bytes used as lone bytes would both collapse onto the same replacement
// rune and become indistinguishable. This port instead uses four ASCII
// control bytes (0x00-0x03) that are valid standalone UTF-8 runes in their
// own right and essentially never appear as literals in a real-world
// regex, preserving the one-byte-per-codepoint and
// never-collides-with-ASCII-classes properties the trick depends on.
package regexfallback

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tokencore/pretok/codec"
	"github.com/tokencore/pretok/uniprops"
)

// ErrMixedCategoryAndLiteral is returned when a pattern combines \p{…}
// with a non-ASCII literal, which the collapse would silently erase.
var ErrMixedCategoryAndLiteral = errors.New("regexfallback: pattern mixes \\p{...} with a non-ASCII literal")

// ErrRegexFailure wraps a compile or execution failure from the
// underlying regex engine.
var ErrRegexFailure = errors.New("regexfallback: regex engine failure")

const (
	standInOther  byte = 0x00
	standInNumber byte = 0x01
	standInLetter byte = 0x02
	standInPunct  byte = 0x03
)

// asciiPunctRange mirrors POSIX [:punct:] as inclusive ASCII sub-ranges;
// it never types the literal ']' character, relying on the range operator
// to cover it, so it is always safe to splice into a character class.
const asciiPunctRange = "!-/:-@[-`{-~"

// Apply runs pattern against each segment of cps described by offsets and
// returns the matched spans' codepoint lengths, concatenated across
// segments. Unlike splitter.GPT2/Llama3, this does not guarantee full
// coverage of the input: text between matches is dropped, exactly like an
// ordinary regex find-all over the (possibly collapsed) text — see spec
// §8's `\p{L}+` over "abc漢字123" example, which drops "123" entirely.
//
// onDiagnostic, if non-nil, is invoked at most once with a single
// diagnostic message immediately before a regex compile/exec failure is
// returned (spec §7).
func Apply(cps []codec.Codepoint, offsets []int, pattern string, onDiagnostic func(string)) ([]int, error) {
	rewritten, needsCollapse, err := rewritePattern(pattern)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(rewritten)
	if err != nil {
		if onDiagnostic != nil {
			onDiagnostic(fmt.Sprintf("regexfallback: failed to compile %q: %v", rewritten, err))
		}
		return nil, fmt.Errorf("%w: %v", ErrRegexFailure, err)
	}

	var out []int
	start := 0
	for _, length := range offsets {
		end := start + length
		segCps := cps[start:end]
		var spans []int
		if needsCollapse {
			spans = matchCollapsed(re, segCps)
		} else {
			spans = matchRaw(re, segCps)
		}
		out = append(out, spans...)
		start = end
	}
	return out, nil
}

func matchCollapsed(re *regexp.Regexp, segCps []codec.Codepoint) []int {
	hay := collapseText(segCps)
	var out []int
	for _, m := range re.FindAllIndex(hay, -1) {
		if m[1] > m[0] {
			out = append(out, m[1]-m[0])
		}
	}
	return out
}

func matchRaw(re *regexp.Regexp, segCps []codec.Codepoint) []int {
	raw := make([]byte, 0, len(segCps)*2)
	prefix := make([]int, 0, len(segCps)*2+1)
	for i, cp := range segCps {
		enc, err := codec.Encode(cp)
		if err != nil {
			continue
		}
		for range enc {
			prefix = append(prefix, i)
		}
		raw = append(raw, enc...)
	}
	prefix = append(prefix, len(segCps))

	var out []int
	for _, m := range re.FindAllIndex(raw, -1) {
		if m[1] <= m[0] {
			continue
		}
		out = append(out, prefix[m[1]]-prefix[m[0]])
	}
	return out
}

// collapseText reduces segCps to one stand-in byte per codepoint: ASCII
// codepoints keep their byte value; non-ASCII codepoints are replaced per
// their category.
func collapseText(segCps []codec.Codepoint) []byte {
	out := make([]byte, len(segCps))
	for i, cp := range segCps {
		if cp < 128 {
			out[i] = byte(cp)
			continue
		}
		switch uniprops.CptFlags(cp).Category {
		case uniprops.CategoryNumber:
			out[i] = standInNumber
		case uniprops.CategoryLetter:
			out[i] = standInLetter
		case uniprops.CategoryPunctuation:
			out[i] = standInPunct
		default:
			out[i] = standInOther
		}
	}
	return out
}

// rewritePattern rewrites every \p{N}, \p{L}, \p{P} occurrence in pattern
// into the matching stand-in byte plus its ASCII range, wrapping the
// substitution in a fresh character class when it appears outside one.
// Returns needsCollapse=true if any such rewrite happened. Any other
// \p{X} form is left untouched. Fails with ErrMixedCategoryAndLiteral if
// the pattern both needs collapsing and contains a non-ASCII literal.
func rewritePattern(pattern string) (rewritten string, needsCollapse bool, err error) {
	var sb strings.Builder
	runes := []rune(pattern)
	inClass := false
	hasNonASCIILiteral := false

	for i := 0; i < len(runes); {
		r := runes[i]
		if r > 127 {
			hasNonASCIILiteral = true
			sb.WriteRune(r)
			i++
			continue
		}
		if r == '\\' && i+1 < len(runes) {
			next := runes[i+1]
			if next == '[' || next == ']' {
				sb.WriteRune(r)
				sb.WriteRune(next)
				i += 2
				continue
			}
			if next == 'p' && i+4 < len(runes) && runes[i+2] == '{' && runes[i+4] == '}' {
				class := runes[i+3]
				if standIn, asciiRange, ok := propertyStandIn(class); ok {
					needsCollapse = true
					frag := fmt.Sprintf(`\x%02X%s`, standIn, asciiRange)
					if inClass {
						sb.WriteString(frag)
					} else {
						sb.WriteString("[" + frag + "]")
					}
					i += 5
					continue
				}
			}
			sb.WriteRune(r)
			sb.WriteRune(next)
			i += 2
			continue
		}
		switch r {
		case '[':
			inClass = true
		case ']':
			inClass = false
		}
		sb.WriteRune(r)
		i++
	}

	if needsCollapse && hasNonASCIILiteral {
		return "", false, ErrMixedCategoryAndLiteral
	}
	return sb.String(), needsCollapse, nil
}

func propertyStandIn(class rune) (standIn byte, asciiRange string, ok bool) {
	switch class {
	case 'N':
		return standInNumber, "0-9", true
	case 'L':
		return standInLetter, "A-Za-z", true
	case 'P':
		return standInPunct, asciiPunctRange, true
	default:
		return 0, "", false
	}
}
