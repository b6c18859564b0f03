package editor

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/texcomplete/buffer"
)

func TestScreenToDoc_GutterAndWideRunes(t *testing.T) {
	m := New(Config{Text: "世a\n\\alpha", ShowLineNums: true})
	m = m.SetSize(20, 5)

	cases := []struct {
		x, y int
		want buffer.Pos
	}{
		{x: 0, y: 0, want: buffer.Pos{Row: 0, Col: 0}},  // gutter
		{x: 2, y: 0, want: buffer.Pos{Row: 0, Col: 0}},  // first half of 世
		{x: 3, y: 0, want: buffer.Pos{Row: 0, Col: 0}},  // second half of 世
		{x: 4, y: 0, want: buffer.Pos{Row: 0, Col: 1}},  // a
		{x: 19, y: 0, want: buffer.Pos{Row: 0, Col: 2}}, // past line end
		{x: 5, y: 1, want: buffer.Pos{Row: 1, Col: 3}},
		{x: 2, y: 4, want: buffer.Pos{Row: 1, Col: 0}}, // below the document
	}
	for _, tc := range cases {
		if got := m.ScreenToDoc(tc.x, tc.y); got != tc.want {
			t.Fatalf("ScreenToDoc(%d, %d): got %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestDocToScreen(t *testing.T) {
	m := New(Config{Text: "世a\nb\nc"})
	m = m.SetSize(10, 2)

	x, y, ok := m.DocToScreen(buffer.Pos{Row: 0, Col: 1})
	if !ok || x != 2 || y != 0 {
		t.Fatalf("got (%d, %d, %v), want (2, 0, true)", x, y, ok)
	}

	if _, _, ok := m.DocToScreen(buffer.Pos{Row: 2}); ok {
		t.Fatalf("row 2 is scrolled out of a two-row viewport")
	}
}

func TestMouse_ClickAndDragSelects(t *testing.T) {
	m := New(Config{Text: `\alpha + \beta`})
	m = m.SetSize(20, 2)

	m, _ = m.Update(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.buf.Cursor(); got != (buffer.Pos{Col: 1}) {
		t.Fatalf("click: got %v", got)
	}

	m, _ = m.Update(tea.MouseMsg{X: 6, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: 6, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if got := m.buf.SelectedText(); got != "alpha" {
		t.Fatalf("drag selection: got %q", got)
	}

	m, _ = m.Update(tea.MouseMsg{X: 9, Y: 0, Action: tea.MouseActionMotion})
	if got := m.buf.SelectedText(); got != "alpha" {
		t.Fatalf("motion after release must not extend: got %q", got)
	}
}

func TestMouse_DoubleClickSelectsCommand(t *testing.T) {
	m := New(Config{Text: `x + \alpha\beta`})
	m = m.SetSize(20, 2)
	press := tea.MouseMsg{X: 7, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{X: 7, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}

	m, _ = m.Update(press)
	m, _ = m.Update(release)
	m, _ = m.Update(press)
	if got := m.buf.SelectedText(); got != `\alpha` {
		t.Fatalf("double click selection: got %q", got)
	}
	if got := m.buf.Cursor(); got != (buffer.Pos{Col: 10}) {
		t.Fatalf("cursor after double click: got %v", got)
	}

	// A third press starts over as a plain click.
	m, _ = m.Update(release)
	m, _ = m.Update(press)
	if _, ok := m.buf.Selection(); ok {
		t.Fatalf("third press should clear the selection")
	}
}

func TestMouse_SlowSecondClickIsSingle(t *testing.T) {
	m := New(Config{Text: `\alpha`})
	m = m.SetSize(20, 2)
	press := tea.MouseMsg{X: 2, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

	m, _ = m.Update(press)
	m.lastClickAt = m.lastClickAt.Add(-time.Second)
	m, _ = m.Update(press)
	if _, ok := m.buf.Selection(); ok {
		t.Fatalf("slow second click must not select")
	}
}
