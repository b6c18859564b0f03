package editor

import "strconv"

// gutterDigits returns the width of the largest line number.
func gutterDigits(lineCount int) int {
	return len(strconv.Itoa(max(lineCount, 1)))
}

// gutterWidth is the number of cells before the text: digits plus one
// separator space, or 0 when line numbers are off.
func (m *Model) gutterWidth() int {
	if !m.cfg.ShowLineNums || m.buf == nil {
		return 0
	}
	return gutterDigits(m.buf.LineCount()) + 1
}
