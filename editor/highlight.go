package editor

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type HighlightSpan struct {
	// StartCol and EndCol are rune columns in the line, half-open.
	StartCol int
	EndCol   int
	Style    lipgloss.Style
}

type LineContext struct {
	Row  int
	Text string

	// CursorCol is the rune column of the cursor on this row, or -1.
	CursorCol int
	HasCursor bool

	// DocText and TextVersion describe the whole document so highlighters
	// that need cross-line context can cache per version.
	DocText     string
	TextVersion uint64
}

type Highlighter interface {
	HighlightLine(ctx LineContext) ([]HighlightSpan, error)
}

// normalizeHighlightSpans clamps spans to the line, drops empty ones and
// keeps the earliest of any overlapping pair.
func normalizeHighlightSpans(spans []HighlightSpan, lineLen int) []HighlightSpan {
	if len(spans) == 0 {
		return nil
	}
	lineLen = max(lineLen, 0)

	out := make([]HighlightSpan, 0, len(spans))
	for _, sp := range spans {
		start := clampInt(sp.StartCol, 0, lineLen)
		end := clampInt(sp.EndCol, 0, lineLen)
		if end < start {
			start, end = end, start
		}
		if start == end {
			continue
		}
		out = append(out, HighlightSpan{StartCol: start, EndCol: end, Style: sp.Style})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartCol != out[j].StartCol {
			return out[i].StartCol < out[j].StartCol
		}
		return out[i].EndCol < out[j].EndCol
	})

	merged := out[:0]
	for _, sp := range out {
		if n := len(merged); n > 0 && sp.StartCol < merged[n-1].EndCol {
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

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
