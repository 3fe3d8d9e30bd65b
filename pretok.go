package pretok

import (
	"github.com/tokencore/pretok/byteenc"
	"github.com/tokencore/pretok/codec"
	"github.com/tokencore/pretok/regexfallback"
	"github.com/tokencore/pretok/splitter"
)

// Split implements the top-level driver (spec §4.7): decode text to
// codepoints once, apply each pattern in order (a recognized named
// pattern runs the matching hand-written splitter; anything else runs
// the regex fallback), reassemble the final offsets into pre-token
// strings, then byte-encode them.
func Split(text string, patterns []string) ([]string, error) {
	cps, err := codec.CodepointsFromUTF8([]byte(text))
	if err != nil {
		return nil, err
	}
	offsets := []int{len(cps)}

	for _, pattern := range patterns {
		switch pattern {
		case splitter.GPT2Pattern:
			offsets = splitter.GPT2(cps, offsets)
		case splitter.Llama3PatternA, splitter.Llama3PatternB:
			offsets = splitter.Llama3(cps, offsets)
		default:
			offsets, err = regexfallback.Apply(cps, offsets, pattern, onRegexDiagnostic)
			if err != nil {
				return nil, err
			}
		}
	}

	preTokens := materialize(cps, offsets)
	return byteenc.Process(preTokens)
}

func materialize(cps []codec.Codepoint, offsets []int) []string {
	out := make([]string, len(offsets))
	pos := 0
	for i, n := range offsets {
		out[i] = string(codec.CodepointsToUTF8(cps[pos : pos+n]))
		pos += n
	}
	return out
}

func onRegexDiagnostic(msg string) {
	logger.Warn(msg)
}
