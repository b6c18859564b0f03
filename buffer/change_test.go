package buffer

import "testing"

func TestBuffer_LastChangeRecordsEdit(t *testing.T) {
	b := New("ab", Options{})
	b.SetCursor(Pos{Col: 2})
	b.InsertText("c")

	c, ok := b.LastChange()
	if !ok {
		t.Fatalf("change expected")
	}
	if !c.TextChanged() || len(c.AppliedEdits) != 1 {
		t.Fatalf("edits: %+v", c.AppliedEdits)
	}
	e := c.AppliedEdits[0]
	if e.InsertText != "c" || e.DeletedText != "" {
		t.Fatalf("edit: %+v", e)
	}
	if want := (Range{Start: Pos{Col: 2}, End: Pos{Col: 3}}); e.RangeAfter != want {
		t.Fatalf("range after: got %v, want %v", e.RangeAfter, want)
	}
	if c.Source != ChangeSourceLocal || c.VersionAfter != b.Version() {
		t.Fatalf("change: %+v", c)
	}
}

func TestBuffer_WriteBackRecordsMinimalHostEdit(t *testing.T) {
	b := New("x + \\al\nz", Options{})
	b.SetCursor(Pos{Col: 7})

	if !b.WriteBack("x + \\alpha\nz") {
		t.Fatalf("write-back should change the text")
	}

	c, _ := b.LastChange()
	if c.Source != ChangeSourceHost {
		t.Fatalf("source: got %v, want host", c.Source)
	}
	if len(c.AppliedEdits) != 1 {
		t.Fatalf("edits: %+v", c.AppliedEdits)
	}
	e := c.AppliedEdits[0]
	if e.InsertText != "pha" || e.DeletedText != "" {
		t.Fatalf("edit should cover only the difference: %+v", e)
	}
	if want := (Range{Start: Pos{Col: 7}, End: Pos{Col: 10}}); e.RangeAfter != want {
		t.Fatalf("range after: got %v, want %v", e.RangeAfter, want)
	}
	if got := b.Cursor(); got != (Pos{Col: 7}) {
		t.Fatalf("cursor must stay put: got %v", got)
	}
}

func TestBuffer_WriteBackAcrossLines(t *testing.T) {
	b := New("\\begin{a}\n\n\\end{b}", Options{})

	if !b.WriteBack("\\begin{a}\n\n\\end{a}") {
		t.Fatalf("write-back should change the text")
	}
	c, _ := b.LastChange()
	e := c.AppliedEdits[0]
	if e.DeletedText != "b" || e.InsertText != "a" {
		t.Fatalf("edit: %+v", e)
	}
	if want := (Range{Start: Pos{Row: 2, Col: 5}, End: Pos{Row: 2, Col: 6}}); e.RangeBefore != want {
		t.Fatalf("range before: got %v, want %v", e.RangeBefore, want)
	}
	if !b.Undo() || b.Text() != "\\begin{a}\n\n\\end{b}" {
		t.Fatalf("write-back should undo as one step, got %q", b.Text())
	}
}

func TestBuffer_WriteBackSameTextIsNoop(t *testing.T) {
	b := New("abc", Options{})
	v := b.Version()

	if b.WriteBack("abc") {
		t.Fatalf("identical text reported a change")
	}
	if b.Version() != v || b.CanUndo() {
		t.Fatalf("no-op write-back must not record history")
	}
}

func TestBuffer_CursorOnlyChange(t *testing.T) {
	b := New("ab", Options{})
	b.SetCursor(Pos{Col: 1})

	c, ok := b.LastChange()
	if !ok || c.TextChanged() {
		t.Fatalf("cursor move should record a non-text change: %+v", c)
	}
	if c.CursorAfter != (Pos{Col: 1}) {
		t.Fatalf("cursor after: %v", c.CursorAfter)
	}
}
