package bpe

// NewGPT2Core builds a Core from a rank-ordered vocabulary of raw token
// bytes (the form LoadVocabulary returns) using the GPT-2 splitter and
// SchemeGPT2's special-token table. Pieces are looked up by their raw
// bytes, not by their package byteenc encoding.
func NewGPT2Core(vocab [][]byte) (*Core, error) {
	specials := DefaultSpecials(SchemeGPT2, len(vocab))
	return NewCore(vocab, specials, NewGPT2Segmenter())
}

// NewO200kHarmonyCore builds a Core using the LLaMA-3-family splitter
// (o200k_base is trained against that pattern family) and the
// o200k/Harmony special-token table.
func NewO200kHarmonyCore(vocab [][]byte) (*Core, error) {
	specials := DefaultSpecials(SchemeO200kHarmony, len(vocab))
	return NewCore(vocab, specials, NewLlama3Segmenter())
}

// NewLlama3Core builds a Core using the LLaMA-3 splitter and the
// LLaMA-3 special-token table.
func NewLlama3Core(vocab [][]byte) (*Core, error) {
	specials := DefaultSpecials(SchemeLlama3, len(vocab))
	return NewCore(vocab, specials, NewLlama3Segmenter())
}
