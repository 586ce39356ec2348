// ABOUTME: Detects an in-progress @mention token immediately before the cursor
// ABOUTME: Walks backwards from the cursor over word runes; offsets are rune positions

package mention

import "unicode"

// ScanResult describes the mention token ending at the cursor.
// Query and Anchor are meaningful only when Active is true.
type ScanResult struct {
	Active bool
	Query  string
	Anchor int // rune offset of the '@'
}

// isWordRune reports whether r can appear in a mention token. Combining
// marks count so decomposed names scan as one token.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

// Scan reports whether the text before cursor ends with '@' followed by zero
// or more word runes. The cursor is a rune offset and is clamped to the text.
func Scan(text string, cursor int) ScanResult {
	return scanRunes([]rune(text), cursor)
}

func scanRunes(text []rune, cursor int) ScanResult {
	cursor = clamp(cursor, 0, len(text))

	i := cursor
	for i > 0 && isWordRune(text[i-1]) {
		i--
	}
	if i == 0 || text[i-1] != '@' {
		return ScanResult{}
	}
	return ScanResult{
		Active: true,
		Query:  string(text[i:cursor]),
		Anchor: i - 1,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
