package bpe

import "strconv"

// Scheme names one of the special-token layouts a Core can be built
// with. Each scheme reserves a contiguous block of ranks immediately
// after the base merge vocabulary, the same convention tiktoken-style
// encoders use.
type Scheme int

const (
	// SchemeGPT2 is the original GPT-2 encoding: one special token,
	// <|endoftext|>.
	SchemeGPT2 Scheme = iota
	// SchemeO200kHarmony is the o200k_base-derived layout the teacher
	// repo's chat-formatting tokenizer used: start/end-of-text plus the
	// structural tokens a message-formatting layer needs (channel,
	// message, call boundaries) and a reserved range for future growth.
	SchemeO200kHarmony
	// SchemeLlama3 mirrors Meta's LLaMA-3 tokenizer: begin/end-of-text
	// plus a block of reserved special tokens.
	SchemeLlama3
)

// DefaultSpecials returns the literal->rank table for scheme, with
// ranks assigned starting at baseVocabSize so they never collide with
// the merge vocabulary proper.
func DefaultSpecials(scheme Scheme, baseVocabSize int) map[string]Rank {
	next := Rank(baseVocabSize)
	alloc := func() Rank {
		r := next
		next++
		return r
	}

	switch scheme {
	case SchemeGPT2:
		return map[string]Rank{
			"<|endoftext|>": alloc(),
		}

	case SchemeO200kHarmony:
		specials := map[string]Rank{
			"<|startoftext|>": alloc(),
			"<|endoftext|>":   alloc(),
		}
		_ = alloc() // gap, mirrors a reserved id in the source layout
		specials["<|return|>"] = alloc()
		specials["<|constrain|>"] = alloc()
		_ = alloc()
		specials["<|channel|>"] = alloc()
		specials["<|start|>"] = alloc()
		specials["<|end|>"] = alloc()
		specials["<|message|>"] = alloc()
		_ = alloc() // three-gap run before <|call|>
		_ = alloc()
		_ = alloc()
		specials["<|call|>"] = alloc()
		for i := 0; i < 1075; i++ {
			specials[reservedSpecialName(i)] = alloc()
		}
		return specials

	case SchemeLlama3:
		specials := map[string]Rank{
			"<|begin_of_text|>": alloc(),
			"<|end_of_text|>":   alloc(),
		}
		for i := 0; i < 248; i++ {
			specials[reservedSpecialName(i)] = alloc()
		}
		return specials

	default:
		return map[string]Rank{}
	}
}

func reservedSpecialName(i int) string {
	return "<|reserved_special_token_" + strconv.Itoa(i) + "|>"
}
