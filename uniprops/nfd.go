package uniprops

import "github.com/tokencore/pretok/codec"

// NFDRange maps every codepoint in [First, Last] to NFD under the simple
// decomposition used here: a flat, single-level lookup, not a full
// canonical recursive decomposition (see spec §9 "NFD simplification").
// For the common precomposed Latin letters this table covers, the target
// is the bare base letter — the diacritic is dropped rather than split
// into a base+combining-mark pair, which is the deliberate simplification
// this spec calls for.
type NFDRange struct {
	First codec.Codepoint
	Last  codec.Codepoint
	NFD   codec.Codepoint
}

// nfdRanges must stay sorted ascending by First and non-overlapping;
// nfdLookup relies on both properties for its binary search.
var nfdRanges = []NFDRange{
	{0x00C0, 0x00C5, 'A'}, // À Á Â Ã Ä Å
	{0x00C7, 0x00C7, 'C'}, // Ç
	{0x00C8, 0x00CB, 'E'}, // È É Ê Ë
	{0x00CC, 0x00CF, 'I'}, // Ì Í Î Ï
	{0x00D1, 0x00D1, 'N'}, // Ñ
	{0x00D2, 0x00D6, 'O'}, // Ò Ó Ô Õ Ö
	{0x00D9, 0x00DC, 'U'}, // Ù Ú Û Ü
	{0x00DD, 0x00DD, 'Y'}, // Ý
	{0x00E0, 0x00E5, 'a'}, // à á â ã ä å
	{0x00E7, 0x00E7, 'c'}, // ç
	{0x00E8, 0x00EB, 'e'}, // è é ê ë
	{0x00EC, 0x00EF, 'i'}, // ì í î ï
	{0x00F1, 0x00F1, 'n'}, // ñ
	{0x00F2, 0x00F6, 'o'}, // ò ó ô õ ö
	{0x00F9, 0x00FC, 'u'}, // ù ú û ü
	{0x00FD, 0x00FD, 'y'}, // ý
	{0x00FF, 0x00FF, 'y'}, // ÿ
}
