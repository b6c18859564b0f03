package buffer

// Apply applies a sequence of text edits as one undo step. Each edit's
// range is interpreted against the buffer as left by the previous edit.
//
// Ranges are clamped into document bounds and an empty range with
// non-empty text inserts. The cursor lands at the end of the last
// effective edit and the selection is cleared.
func (b *Buffer) Apply(edits ...TextEdit) {
	b.applyEdits(ChangeSourceLocal, true, edits)
}

// WriteBack replaces the document with text on behalf of the host that
// drives completion. The difference is stored as the smallest single edit,
// tagged ChangeSourceHost, in one undo step. The cursor keeps its position
// clamped into the new text; hosts place it later with SetCursorOffset.
//
// It reports whether the text changed.
func (b *Buffer) WriteBack(text string) bool {
	edit, ok := minimalEdit(b, []rune(text))
	if !ok {
		return false
	}
	return b.applyEdits(ChangeSourceHost, false, []TextEdit{edit})
}

func (b *Buffer) applyEdits(src ChangeSource, moveCursor bool, edits []TextEdit) bool {
	if len(edits) == 0 {
		return false
	}

	prev := b.snapshot()
	change := b.beginChange(src)

	changed := false
	cursor := b.cursor
	for _, e := range edits {
		next, applied, ok := b.replaceRange(e.Range, e.Text)
		if !ok {
			continue
		}
		changed = true
		if moveCursor {
			cursor = next
		}
		change.addAppliedEdit(applied)
	}
	if !changed {
		return false
	}

	b.cursor = b.clampPos(cursor)
	b.sel = selectionState{}
	b.version++
	b.textVersion++
	b.recordUndo(prev)
	b.commitChange(change)
	return true
}

// minimalEdit returns the edit that turns b's text into want, trimmed to
// the span between their common prefix and suffix.
func minimalEdit(b *Buffer, want []rune) (TextEdit, bool) {
	have := []rune(b.Text())

	pre := 0
	for pre < len(have) && pre < len(want) && have[pre] == want[pre] {
		pre++
	}
	suf := 0
	for suf < len(have)-pre && suf < len(want)-pre && have[len(have)-1-suf] == want[len(want)-1-suf] {
		suf++
	}
	if pre == len(have) && pre == len(want) {
		return TextEdit{}, false
	}

	clamp := ConvertPolicy{ClampMode: OffsetClamp}
	start, _ := b.PosFromRuneOffset(pre, clamp)
	end, _ := b.PosFromRuneOffset(len(have)-suf, clamp)
	return TextEdit{
		Range: Range{Start: start, End: end},
		Text:  string(want[pre : len(want)-suf]),
	}, true
}
