// Package pretok is a Unicode-aware pre-tokenization core for
// byte-pair-encoding tokenizer pipelines. Given raw text and an
// ordered list of splitter pattern strings, Split partitions the text
// into byte-encoded pre-token strings that a downstream BPE merge
// pass (see package bpe) operates on.
//
// The two named patterns, GPT2Pattern and the LLaMA-3 pattern family
// in package splitter, are recognized literally and dispatched to
// hand-written state machines; any other pattern runs through package
// regexfallback's category-collapse trick against Go's regexp engine.
package pretok
