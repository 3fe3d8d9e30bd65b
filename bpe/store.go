package bpe

import (
	"github.com/alasdairforsythe/pansearch"
)

// Rank identifies one token in a vocabulary (spec §4.8: the vocabulary
// assigns a stable, merge-priority-ordered integer to each byte string).
type Rank = uint32

// tokenStore is the byte-string <-> rank lookup a Core needs: Find for
// encoding (is this byte run an existing token?) and AppendInto for
// decoding (render a rank back into bytes). Keeping the interface
// narrow, as the teacher does, lets it be swapped without touching the
// merge loop.
type tokenStore interface {
	Find(token []byte) (Rank, bool)
	AppendInto(dst []byte, id Rank) ([]byte, bool)
	Len() int
}

// pansearchStore backs tokenStore with pansearch.KeyBytes (grounded on
// alasdairforsythe-tokenmonster's go/tokenmonster.go Vocab.dictionary),
// a compressed trie-like structure built for fast exact byte-string
// lookup over a large, static vocabulary. Decoding keeps a parallel
// plain slice since pansearch only maps key->index, not index->key.
type pansearchStore struct {
	dict   *pansearch.KeyBytes
	tokens [][]byte // index == Rank, same order as dict insertion
}

// newPansearchStore builds a store from tokens already ordered by rank
// (rank 0 first). Vocabularies loaded from a *.tiktoken file or a
// TokenMonster-style file are naturally already in this order, so
// AddUnsorted (which skips the internal sort pansearch would otherwise
// need) is safe here, exactly as the teacher's loader does.
func newPansearchStore(tokens [][]byte) *pansearchStore {
	s := &pansearchStore{
		dict:   new(pansearch.KeyBytes),
		tokens: tokens,
	}
	for _, tok := range tokens {
		s.dict.AddUnsorted(tok)
	}
	s.dict.Build()
	return s
}

func (s *pansearchStore) Find(token []byte) (Rank, bool) {
	idx, exists := s.dict.Find(token)
	if !exists {
		return 0, false
	}
	return Rank(idx), true
}

func (s *pansearchStore) AppendInto(dst []byte, id Rank) ([]byte, bool) {
	if int(id) >= len(s.tokens) {
		return dst, false
	}
	return append(dst, s.tokens[id]...), true
}

func (s *pansearchStore) Len() int { return len(s.tokens) }
