package fat32

import "golang.org/x/text/encoding/unicode"

// lfnNameSpans are the three UCS-2 name spans within a single 32-byte LFN
// entry: 5 code units at 1..11, 6 at 14..26, 2 at 28..32 — 13 per entry.
var lfnNameSpans = [3][2]int{{1, 11}, {14, 26}, {28, 32}}

// lfnOrdinal strips the last-logical-entry flag (bit 6) from a raw ordinal
// byte, leaving the 1-based position within the name.
func lfnOrdinal(e []byte) byte { return e[0] &^ 0x40 }

func lfnIsLast(e []byte) bool { return e[0]&0x40 != 0 }

// decodeLFNEntries reconstructs a long name from its physical entries,
// given in ascending ordinal order (ordinal 1, the entry nearest the short
// entry, first). It prefers a proper UCS-2 decode and falls back to the
// printable-ASCII projection when that decode fails, so a name composed
// entirely of ASCII characters reads identically either way.
func decodeLFNEntries(entries [][]byte) string {
	if s, ok := decodeLFNEntriesUnicode(entries); ok {
		return s
	}
	return decodeLFNEntriesASCII(entries)
}

func decodeLFNEntriesUnicode(entries [][]byte) (string, bool) {
	var raw []byte
	for _, e := range entries {
		for _, sp := range lfnNameSpans {
			raw = append(raw, e[sp[0]:sp[1]]...)
		}
	}
	if idx := ucs2NullIndex(raw); idx >= 0 {
		raw = raw[:idx]
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(raw)
	if err != nil {
		return "", false
	}
	return string(out), true
}

func ucs2NullIndex(b []byte) int {
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			return i
		}
	}
	return -1
}

// decodeLFNEntriesASCII is the minimum reconstruction: a UCS-2 code unit is
// kept, as its low byte, only when its high byte is zero and its low byte is
// a printable character (1..126); every other code unit is dropped. A code
// unit equal to 0x0000 ends the current entry's contribution.
func decodeLFNEntriesASCII(entries [][]byte) string {
	var out []byte
	for _, e := range entries {
	entry:
		for _, sp := range lfnNameSpans {
			for o := sp[0]; o < sp[1]; o += 2 {
				lo, hi := e[o], e[o+1]
				if lo == 0 && hi == 0 {
					break entry
				}
				if hi == 0 && lo >= 1 && lo <= 126 {
					out = append(out, lo)
				}
			}
		}
	}
	return string(out)
}
