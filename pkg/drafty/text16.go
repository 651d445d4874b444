package drafty

import (
	"unicode/utf16"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// normalize brings text to Unicode normalization form C.
func normalize(s string) string {
	return norm.NFC.String(s)
}

// utf16Len returns the length of s in UTF-16 code units.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

func runeUnits(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

// unitsBefore converts a rune index into a UTF-16 offset.
func unitsBefore(runes []rune, idx int) int {
	n := 0
	for _, r := range runes[:idx] {
		n += runeUnits(r)
	}
	return n
}

// encodeUnits returns s as UTF-16 code units.
func encodeUnits(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// sliceUnits returns the text between two UTF-16 offsets.
func sliceUnits(units []uint16, start, end int) string {
	return string(utf16.Decode(units[start:end]))
}

// splitUnits splits s at a UTF-16 offset.
func splitUnits(s string, at int) (string, string) {
	units := encodeUnits(s)
	return sliceUnits(units, 0, at), sliceUnits(units, at, len(units))
}

// clipUnits returns the longest prefix of s made of whole grapheme clusters
// whose length does not exceed limit UTF-16 units.
func clipUnits(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	rest := s
	cut := 0
	used := 0
	state := -1
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		n := utf16Len(cluster)
		if used+n > limit {
			break
		}
		used += n
		cut += len(cluster)
	}
	return s[:cut]
}
