// Package bpe applies a trained byte-pair-encoding vocabulary over the
// pre-tokens produced by package splitter. It is an expansion beyond the
// pre-tokenization core proper (the pre-tokenization spec explicitly
// treats merge application as an external collaborator), added here to
// give the module a complete, runnable encode/decode path.
//
// The merge algorithm is grounded on ollama-ollama's
// x/tokenizer/tokenizer_bpe.go rather than the teacher (the teacher's
// tokenizer/bpe.go rescans the whole remaining part list from scratch
// after every merge): a doubly-linked list of byte-range nodes plus a
// container/heap priority queue of candidate pairs, popping the
// globally lowest-rank pair and lazily discarding stale heap entries
// (a pair whose nodes are no longer adjacent, or no longer alive) at
// pop time instead of rescanning. Every lookup — single-token check,
// pair-rank check, and the final per-node token resolution — goes
// through the pansearch-backed tokenStore (store.go), which is what
// actually makes the vocabulary's dictionary a first-class domain
// dependency here rather than a redundant side index.
package bpe

import (
	"container/heap"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// ErrInvalidToken is returned by DecodeBytesInto when a token id is
// neither in the vocabulary nor a registered special token.
var ErrInvalidToken = errors.New("bpe: invalid token id for decoding")

// Core is a loaded vocabulary plus its special-token table, ready to
// encode and decode text.
type Core struct {
	dec        tokenStore
	specialEnc map[string]Rank
	specialDec map[Rank][]byte
	seg        Segmenter
	tokenPool  sync.Pool
}

// NewCore builds a Core from an ordered (rank 0 first) vocabulary, a
// special-token table, and a Segmenter (NewGPT2Segmenter or
// NewLlama3Segmenter, per the scheme the vocabulary was trained with).
func NewCore(vocab [][]byte, specials map[string]Rank, seg Segmenter) (*Core, error) {
	specialEnc := make(map[string]Rank, len(specials))
	specialDec := make(map[Rank][]byte, len(specials))
	for k, v := range specials {
		specialEnc[k] = v
		specialDec[v] = []byte(k)
	}
	return &Core{
		dec:        newPansearchStore(vocab),
		specialEnc: specialEnc,
		specialDec: specialDec,
		seg:        seg,
		tokenPool:  sync.Pool{New: func() any { b := make([]uint32, 0, 32); return &b }},
	}, nil
}

// DecodeBytes renders tokens back to their concatenated byte string.
func (b *Core) DecodeBytes(tokens []uint32) ([]byte, error) {
	var out []byte
	if err := b.DecodeBytesInto(&out, tokens); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeUTF8 renders tokens back to a string. The vocabulary is not
// guaranteed to produce valid UTF-8 at arbitrary token boundaries
// (spec §4.1's codec is permissive about this), so callers that need a
// guarantee should validate with codec.CodepointsFromUTF8 first.
func (b *Core) DecodeUTF8(tokens []uint32) (string, error) {
	bs, err := b.DecodeBytes(tokens)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

// DecodeBytesInto appends the decoded bytes for tokens into dst,
// avoiding an intermediate slice allocation.
func (b *Core) DecodeBytesInto(dst *[]byte, tokens []uint32) error {
	buf := *dst
	for _, t := range tokens {
		if next, ok := b.dec.AppendInto(buf, t); ok {
			buf = next
			continue
		}
		if v, ok := b.specialDec[t]; ok {
			buf = append(buf, v...)
			continue
		}
		return errors.Wrapf(ErrInvalidToken, "token id %d", t)
	}
	*dst = buf
	return nil
}

// IsSpecialToken reports whether id names a registered special token.
func (b *Core) IsSpecialToken(id uint32) bool { _, ok := b.specialDec[id]; return ok }

// EncodeWithSpecialTokens encodes text allowing every registered
// special token to be matched literally.
func (b *Core) EncodeWithSpecialTokens(text string) []uint32 {
	toks, _ := b.Encode(text, b.allAllowed())
	return toks
}

// EncodeWithSpecialTokensInto is the in-place variant of
// EncodeWithSpecialTokens.
func (b *Core) EncodeWithSpecialTokensInto(text string, out *[]uint32) int {
	return b.encodeInto(text, b.allAllowed(), out)
}

func (b *Core) allAllowed() map[string]struct{} {
	allowed := make(map[string]struct{}, len(b.specialEnc))
	for s := range b.specialEnc {
		allowed[s] = struct{}{}
	}
	return allowed
}

// EncodeOrdinary encodes text treating special-token literals as
// ordinary text.
func (b *Core) EncodeOrdinary(text string) []uint32 {
	toks, _ := b.Encode(text, nil)
	return toks
}

// EncodeIntoOrdinary is the in-place variant of EncodeOrdinary.
func (b *Core) EncodeIntoOrdinary(text string, out *[]uint32) int {
	return b.encodeInto(text, nil, out)
}

// Encode segments text with the configured Segmenter and merges each
// piece via BPE, emitting allowedSpecial's literals directly wherever
// they occur. It returns the tokens and the length (in tokens) of the
// final piece, which callers use to detect a token split across the
// special/ordinary boundary.
func (b *Core) Encode(text string, allowedSpecial map[string]struct{}) ([]uint32, int) {
	var out []uint32
	lastPieceLen := b.encodeInto(text, allowedSpecial, &out)
	return out, lastPieceLen
}

func (b *Core) encodeInto(text string, allowedSpecial map[string]struct{}, out *[]uint32) int {
	lastPieceLen := 0
	i := 0
	hasSpecials := len(allowedSpecial) > 0
	for i < len(text) {
		if hasSpecials {
			if tok, n := b.matchSpecialAt(text, i, allowedSpecial); n > 0 {
				*out = append(*out, tok)
				i += n
				lastPieceLen = 0
				continue
			}
		}
		start := i
		end := b.seg.Next(text, i)
		if end <= start {
			end = start + 1
		}
		piece := text[start:end]
		if id, ok := b.dec.Find([]byte(piece)); ok {
			*out = append(*out, id)
			lastPieceLen = 1
		} else {
			toks := b.bytePairEncode(piece)
			*out = append(*out, toks...)
			lastPieceLen = len(toks)
		}
		i = end
	}
	return lastPieceLen
}

// matchSpecialAt finds the longest allowed special-token literal
// matching at position i. Candidates are sorted longest-first on each
// call and the scan stops at the first prefix match, which is
// sufficient for correctness since no two distinct special tokens
// share a literal.
func (b *Core) matchSpecialAt(s string, i int, allowed map[string]struct{}) (Rank, int) {
	candidates := make([]string, 0, len(allowed))
	for lit := range allowed {
		if _, ok := b.specialEnc[lit]; ok {
			candidates = append(candidates, lit)
		}
	}
	sort.Slice(candidates, func(x, y int) bool { return len(candidates[x]) > len(candidates[y]) })
	for _, lit := range candidates {
		if strings.HasPrefix(s[i:], lit) {
			return b.specialEnc[lit], len(lit)
		}
	}
	return 0, 0
}

// mergeNode is one byte-range node of a piece's doubly-linked merge
// list. A negative prev/next marks a list boundary.
type mergeNode struct {
	prev, next int
	start, end int
	alive      bool
}

// mergePair is a heap entry naming two adjacent nodes and the rank of
// their concatenation, if it is itself a vocabulary token.
type mergePair struct {
	left, right int
	rank        Rank
}

type mergeHeap []*mergePair

func (h mergeHeap) Len() int { return len(h) }
func (h mergeHeap) Less(i, j int) bool {
	return h[i].rank < h[j].rank || (h[i].rank == h[j].rank && h[i].left < h[j].left)
}
func (h mergeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x any)   { *h = append(*h, x.(*mergePair)) }
func (h *mergeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// bytePairEncode merges piece's bytes into vocabulary tokens by
// repeatedly merging the globally lowest-rank adjacent pair, using a
// priority queue over candidate pairs instead of rescanning the whole
// node list after every merge (spec treats this algorithm as an
// external collaborator; see the package comment for where this is
// grounded).
func (b *Core) bytePairEncode(piece string) []uint32 {
	nodes := make([]mergeNode, len(piece))
	for i := range nodes {
		nodes[i] = mergeNode{prev: i - 1, next: i + 1, start: i, end: i + 1, alive: true}
	}
	if len(nodes) > 0 {
		nodes[len(nodes)-1].next = -1
	}

	pairAt := func(left, right int) *mergePair {
		if left < 0 || right < 0 {
			return nil
		}
		rank, ok := b.dec.Find([]byte(piece[nodes[left].start:nodes[right].end]))
		if !ok {
			return nil
		}
		return &mergePair{left: left, right: right, rank: rank}
	}

	pairs := &mergeHeap{}
	heap.Init(pairs)
	for i := 0; i+1 < len(nodes); i++ {
		if p := pairAt(i, i+1); p != nil {
			heap.Push(pairs, p)
		}
	}

	for pairs.Len() > 0 {
		p := heap.Pop(pairs).(*mergePair)
		left, right := nodes[p.left], nodes[p.right]
		if !left.alive || !right.alive {
			continue
		}
		if left.next != p.right || right.prev != p.left {
			continue // stale: one side already merged elsewhere
		}

		nodes[p.left].end = right.end
		nodes[p.right].alive = false
		nodes[p.left].next = right.next
		if right.next >= 0 {
			nodes[right.next].prev = p.left
		}

		if np := pairAt(nodes[p.left].prev, p.left); np != nil {
			heap.Push(pairs, np)
		}
		if np := pairAt(p.left, nodes[p.left].next); np != nil {
			heap.Push(pairs, np)
		}
	}

	toksPtr := b.acquireTokens(len(nodes))
	toks := (*toksPtr)[:0]
	for i := range nodes {
		if !nodes[i].alive {
			continue
		}
		if r, ok := b.dec.Find([]byte(piece[nodes[i].start:nodes[i].end])); ok {
			toks = append(toks, r)
		}
	}
	out := make([]uint32, len(toks))
	copy(out, toks)
	*toksPtr = toks
	b.tokenPool.Put(toksPtr)
	return out
}

func (b *Core) acquireTokens(capHint int) *[]uint32 {
	if v := b.tokenPool.Get(); v != nil {
		p := v.(*[]uint32)
		if cap(*p) < capHint {
			buf := make([]uint32, 0, capHint)
			return &buf
		}
		*p = (*p)[:0]
		return p
	}
	buf := make([]uint32, 0, capHint)
	return &buf
}
