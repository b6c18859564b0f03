package latex

import "unicode/utf8"

// All offsets exposed by this package are rune offsets.

func runeLen(s string) int { return utf8.RuneCountInString(s) }

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// splice replaces rs[start:end) with text and returns the new string.
func splice(rs []rune, start, end int, text string) string {
	out := make([]rune, 0, len(rs)-(end-start)+runeLen(text))
	out = append(out, rs[:start]...)
	out = append(out, []rune(text)...)
	out = append(out, rs[end:]...)
	return string(out)
}

// isWord matches the ASCII \w class: [A-Za-z0-9_].
func isWord(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// runeCounter converts increasing byte offsets of one string to rune
// offsets without rescanning from the start each time.
type runeCounter struct {
	text      string
	byteOff   int
	runeCount int
}

func (c *runeCounter) at(byteOff int) int {
	if byteOff < c.byteOff {
		c.byteOff, c.runeCount = 0, 0
	}
	c.runeCount += utf8.RuneCountInString(c.text[c.byteOff:byteOff])
	c.byteOff = byteOff
	return c.runeCount
}
