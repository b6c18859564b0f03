package buffer

import "testing"

func TestBuffer_PosFromRuneOffset(t *testing.T) {
	b := New("ab\ncd", Options{})

	clamp := ConvertPolicy{ClampMode: OffsetClamp}
	errMode := ConvertPolicy{ClampMode: OffsetError}

	cases := []struct {
		name string
		off  int
		p    ConvertPolicy
		want Pos
		ok   bool
	}{
		{name: "bof", off: 0, p: errMode, want: Pos{Row: 0, Col: 0}, ok: true},
		{name: "line-0-middle", off: 1, p: errMode, want: Pos{Row: 0, Col: 1}, ok: true},
		{name: "line-0-end-left-bias", off: 2, p: errMode, want: Pos{Row: 0, Col: 2}, ok: true},
		{name: "after-newline", off: 3, p: errMode, want: Pos{Row: 1, Col: 0}, ok: true},
		{name: "eof", off: 5, p: errMode, want: Pos{Row: 1, Col: 2}, ok: true},
		{name: "below-range-error", off: -1, p: errMode, ok: false},
		{name: "above-range-error", off: 6, p: errMode, ok: false},
		{name: "below-range-clamp", off: -1, p: clamp, want: Pos{Row: 0, Col: 0}, ok: true},
		{name: "above-range-clamp", off: 6, p: clamp, want: Pos{Row: 1, Col: 2}, ok: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := b.PosFromRuneOffset(tc.off, tc.p)
			if ok != tc.ok {
				t.Fatalf("ok: got %v, want %v", ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("pos: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuffer_RuneOffsetRoundTrip(t *testing.T) {
	b := New("\\alpha\n\n\\end{α}", Options{})
	p := ConvertPolicy{ClampMode: OffsetError}

	for off := 0; off <= b.Len(); off++ {
		pos, ok := b.PosFromRuneOffset(off, p)
		if !ok {
			t.Fatalf("offset %d rejected", off)
		}
		back, ok := b.RuneOffsetFromPos(pos, p)
		if !ok || back != off {
			t.Fatalf("offset %d -> %v -> %d (ok=%v)", off, pos, back, ok)
		}
	}
}

func TestBuffer_RuneOffsetFromPos_Errors(t *testing.T) {
	b := New("ab\ncd", Options{})

	if _, ok := b.RuneOffsetFromPos(Pos{Row: 0, Col: 3}, ConvertPolicy{ClampMode: OffsetError}); ok {
		t.Fatalf("column past line end must be rejected")
	}
	if _, ok := b.RuneOffsetFromPos(Pos{Row: 2}, ConvertPolicy{ClampMode: OffsetError}); ok {
		t.Fatalf("row past document end must be rejected")
	}
	got, ok := b.RuneOffsetFromPos(Pos{Row: 9, Col: 9}, ConvertPolicy{ClampMode: OffsetClamp})
	if !ok || got != 5 {
		t.Fatalf("clamped offset: got %d (ok=%v), want 5", got, ok)
	}
}

func TestBuffer_ByteOffsets(t *testing.T) {
	b := New("αb\nγ", Options{})
	p := ConvertPolicy{ClampMode: OffsetError}

	if got := b.ByteLen(); got != len("αb\nγ") {
		t.Fatalf("ByteLen: got %d, want %d", got, len("αb\nγ"))
	}

	cases := []struct {
		off  int
		want Pos
		ok   bool
	}{
		{off: 0, want: Pos{Row: 0, Col: 0}, ok: true},
		{off: 1, ok: false}, // inside α
		{off: 2, want: Pos{Row: 0, Col: 1}, ok: true},
		{off: 3, want: Pos{Row: 0, Col: 2}, ok: true},
		{off: 4, want: Pos{Row: 1, Col: 0}, ok: true},
		{off: 6, want: Pos{Row: 1, Col: 1}, ok: true},
	}
	for _, tc := range cases {
		got, ok := b.PosFromByteOffset(tc.off, p)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("PosFromByteOffset(%d): got %v ok=%v, want %v ok=%v", tc.off, got, ok, tc.want, tc.ok)
		}
		if !ok {
			continue
		}
		back, ok := b.ByteOffsetFromPos(got, p)
		if !ok || back != tc.off {
			t.Fatalf("ByteOffsetFromPos(%v): got %d, want %d", got, back, tc.off)
		}
	}
}

func TestBuffer_EmptyDocumentIsOneAnchorLine(t *testing.T) {
	b := New("", Options{})

	if b.Len() != 0 || b.LineCount() != 1 {
		t.Fatalf("empty buffer: len %d, lines %d", b.Len(), b.LineCount())
	}
	for _, off := range []int{-4, 0, 7} {
		pos, ok := b.PosFromRuneOffset(off, ConvertPolicy{ClampMode: OffsetClamp})
		if !ok || pos != (Pos{}) {
			t.Fatalf("offset %d: got %v ok=%v, want origin", off, pos, ok)
		}
	}
}

func TestBuffer_SetCursorOffset(t *testing.T) {
	b := New("\\begin{}\n\n\\end{}", Options{})

	b.SetCursorOffset(7)
	if got, want := b.Cursor(), (Pos{Row: 0, Col: 7}); got != want {
		t.Fatalf("cursor: got %v, want %v", got, want)
	}
	if got := b.CursorOffset(); got != 7 {
		t.Fatalf("CursorOffset: got %d, want 7", got)
	}

	b.SetCursorOffset(9)
	if got, want := b.Cursor(), (Pos{Row: 1, Col: 0}); got != want {
		t.Fatalf("cursor: got %v, want %v", got, want)
	}

	b.SetCursorOffset(100)
	if got, want := b.Cursor(), (Pos{Row: 2, Col: 6}); got != want {
		t.Fatalf("clamped cursor: got %v, want %v", got, want)
	}
	if got := b.CursorOffset(); got != b.Len() {
		t.Fatalf("CursorOffset: got %d, want %d", got, b.Len())
	}
}

func TestBuffer_SetCursorOffsetClearsSelection(t *testing.T) {
	b := New("abc", Options{})
	b.SetSelection(Range{Start: Pos{Col: 0}, End: Pos{Col: 2}})

	v := b.Version()
	b.SetCursorOffset(b.CursorOffset())
	if _, ok := b.Selection(); ok {
		t.Fatalf("selection should be cleared")
	}
	if b.Version() == v {
		t.Fatalf("clearing the selection must bump the version")
	}
}
