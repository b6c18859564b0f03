package editor

import (
	"regexp"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/texcomplete/latex"
)

var commandRE = regexp.MustCompile(`\\[A-Za-z]+`)

// LatexHighlighter marks commands and environment tags. An end tag whose
// name differs from its begin tag, or that has no begin tag at all, gets
// the Mismatch style.
//
// Tag pairing needs the whole document, so spans are computed once per
// text version and served per row.
type LatexHighlighter struct {
	Command     lipgloss.Style
	Environment lipgloss.Style
	Mismatch    lipgloss.Style

	version uint64
	valid   bool
	rows    map[int][]HighlightSpan
}

func NewLatexHighlighter(st Style) *LatexHighlighter {
	return &LatexHighlighter{
		Command:     st.Command,
		Environment: st.Environment,
		Mismatch:    st.Mismatch,
	}
}

func (h *LatexHighlighter) HighlightLine(ctx LineContext) ([]HighlightSpan, error) {
	if !h.valid || h.version != ctx.TextVersion {
		h.rows = h.tagSpans(ctx.DocText)
		h.version = ctx.TextVersion
		h.valid = true
	}

	tags := h.rows[ctx.Row]
	spans := append([]HighlightSpan(nil), tags...)

	var rc runeCols
	for _, loc := range commandRE.FindAllStringIndex(ctx.Text, -1) {
		start, end := rc.at(ctx.Text, loc[0]), rc.at(ctx.Text, loc[1])
		if overlapsAny(tags, start, end) {
			continue
		}
		spans = append(spans, HighlightSpan{StartCol: start, EndCol: end, Style: h.Command})
	}
	return spans, nil
}

func (h *LatexHighlighter) tagSpans(doc string) map[int][]HighlightSpan {
	tags := latex.ScanTags(doc)
	if len(tags) == 0 {
		return nil
	}

	matched := make([]bool, len(tags))
	mismatched := make([]bool, len(tags))
	for i, t := range tags {
		if t.Kind != latex.TagBegin {
			continue
		}
		if j, ok := latex.MatchingEnd(tags, i); ok {
			matched[j] = true
			mismatched[j] = tags[j].Name != t.Name
		}
	}

	lineStarts := lineStartOffsets(doc)
	rows := make(map[int][]HighlightSpan)
	for i, t := range tags {
		style := h.Environment
		if t.Kind == latex.TagEnd && (!matched[i] || mismatched[i]) {
			style = h.Mismatch
		}
		row := rowForOffset(lineStarts, t.Start)
		base := lineStarts[row]
		rows[row] = append(rows[row], HighlightSpan{StartCol: t.Start - base, EndCol: t.End - base, Style: style})
	}
	return rows
}

// lineStartOffsets returns the rune offset at which each line begins.
func lineStartOffsets(doc string) []int {
	starts := []int{0}
	off := 0
	for _, r := range doc {
		off++
		if r == '\n' {
			starts = append(starts, off)
		}
	}
	return starts
}

func rowForOffset(starts []int, off int) int {
	row := 0
	for i, s := range starts {
		if s > off {
			break
		}
		row = i
	}
	return row
}

func overlapsAny(spans []HighlightSpan, start, end int) bool {
	for _, sp := range spans {
		if start < sp.EndCol && end > sp.StartCol {
			return true
		}
	}
	return false
}

// runeCols converts increasing byte offsets of one string to rune columns.
type runeCols struct{ b, r int }

func (c *runeCols) at(s string, byteOff int) int {
	c.r += utf8.RuneCountInString(s[c.b:byteOff])
	c.b = byteOff
	return c.r
}
