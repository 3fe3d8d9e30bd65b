package bpe

import (
	"sync"

	"github.com/tokencore/pretok/codec"
	"github.com/tokencore/pretok/splitter"
)

// Segmenter finds the end of the next pre-token starting at byte offset i
// in s. It mirrors the teacher's streaming cursor interface so the merge
// loop below can stay byte-oriented even though the underlying splitters
// (spec §4.4, §4.5) operate over codepoint offsets.
type Segmenter interface {
	Next(s string, i int) int
}

// splitFunc is satisfied by splitter.GPT2 and splitter.Llama3.
type splitFunc func([]codec.Codepoint, []int) []int

// adaptedSegmenter wraps one of the codepoint-offset splitters and caches
// the byte-boundary split of the last text seen, since Core's encode
// loop calls Next repeatedly over the same string with an advancing
// cursor. A cache miss (new text) recomputes the whole split once; a hit
// is a linear scan of the cached boundaries for the first one past i.
type adaptedSegmenter struct {
	fn splitFunc

	mu         sync.Mutex
	cachedText string
	boundaries []int // cumulative byte offsets of token ends, ascending
}

func newAdaptedSegmenter(fn splitFunc) *adaptedSegmenter {
	return &adaptedSegmenter{fn: fn}
}

func (a *adaptedSegmenter) Next(s string, i int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if s != a.cachedText {
		a.cachedText = s
		a.boundaries = a.computeBoundaries(s)
	}
	for _, b := range a.boundaries {
		if b > i {
			return b
		}
	}
	return len(s)
}

func (a *adaptedSegmenter) computeBoundaries(s string) []int {
	cps, err := codec.CodepointsFromUTF8([]byte(s))
	if err != nil {
		// A malformed-UTF8 text cannot be segmented; fall back to a
		// single token spanning the whole string so the caller still
		// makes forward progress.
		return []int{len(s)}
	}
	lengths := a.fn(cps, []int{len(cps)})
	boundaries := make([]int, 0, len(lengths))
	bytePos := 0
	cpPos := 0
	for _, n := range lengths {
		for _, cp := range cps[cpPos : cpPos+n] {
			enc, encErr := codec.Encode(cp)
			if encErr != nil {
				continue
			}
			bytePos += len(enc)
		}
		cpPos += n
		boundaries = append(boundaries, bytePos)
	}
	return boundaries
}

// NewGPT2Segmenter returns a Segmenter backed by splitter.GPT2.
func NewGPT2Segmenter() Segmenter { return newAdaptedSegmenter(splitter.GPT2) }

// NewLlama3Segmenter returns a Segmenter backed by splitter.Llama3.
func NewLlama3Segmenter() Segmenter { return newAdaptedSegmenter(splitter.Llama3) }
