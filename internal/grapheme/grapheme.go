// Package grapheme lays out a line of text as grapheme clusters on a grid
// of terminal cells. Buffer positions are rune columns; the editor renders
// and hit-tests whole clusters so combining marks and emoji sequences never
// split.
package grapheme

import (
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DefaultTabWidth is the tab stop distance used when none is configured.
const DefaultTabWidth = 4

// Cluster is one grapheme cluster of a line.
type Cluster struct {
	Text string
	// StartCol and EndCol are rune columns, half-open.
	StartCol int
	EndCol   int
	// Cell is the first terminal cell the cluster occupies; Width may be 0
	// for zero-width input.
	Cell  int
	Width int
}

// Layout splits line into clusters and assigns terminal cells. Tabs expand
// to the next multiple of tabWidth.
func Layout(line string, tabWidth int) []Cluster {
	if line == "" {
		return nil
	}
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	out := make([]Cluster, 0, utf8.RuneCountInString(line))
	g := uniseg.NewGraphemes(line)
	col, cell := 0, 0
	for g.Next() {
		s := g.Str()
		n := utf8.RuneCountInString(s)
		w := Width(s, cell, tabWidth)
		out = append(out, Cluster{Text: s, StartCol: col, EndCol: col + n, Cell: cell, Width: w})
		col += n
		cell += w
	}
	return out
}

// Width returns the cell width of cluster when it starts at cell.
func Width(cluster string, cell, tabWidth int) int {
	if cluster == "\t" {
		if tabWidth <= 0 {
			tabWidth = DefaultTabWidth
		}
		return tabWidth - cell%tabWidth
	}
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = max(uniseg.StringWidth(cluster), 0)
	}
	return w
}

// LineWidth returns the total cell width of a laid out line.
func LineWidth(cs []Cluster) int {
	if len(cs) == 0 {
		return 0
	}
	last := cs[len(cs)-1]
	return last.Cell + last.Width
}

// CellForCol returns the first cell of the cluster containing rune column
// col, or the cell just past the line for col at or beyond the end.
func CellForCol(cs []Cluster, col int) int {
	for _, c := range cs {
		if col < c.EndCol {
			return c.Cell
		}
	}
	return LineWidth(cs)
}

// ColForCell returns the rune column of the cluster covering cell. Cells
// past the end of the line map to the line length.
func ColForCell(cs []Cluster, cell int) int {
	for _, c := range cs {
		if cell < c.Cell+c.Width {
			return c.StartCol
		}
	}
	if len(cs) == 0 {
		return 0
	}
	return cs[len(cs)-1].EndCol
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
