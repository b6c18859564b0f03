package latex

import "strings"

const endOpen = EndCommand + "{"

// endTemplate is the text inserted for a missing \end tag.
func endTemplate(name string) string {
	return "\n\n" + endOpen + name + "}"
}

// Sync keeps \end tags mirrored to their \begin tags.
//
// It only runs while the cursor sits in a \begin{...} argument. The \end
// matching that \begin is renamed when its name differs; other pairs are
// left alone. When \begin tags outnumber \end tags, an \end is appended
// after the rightmost complete \begin; that repair leaves the cursor
// untouched.
func Sync(text string, cursor int) (Result, bool) {
	rs := []rune(text)
	cursor = clampInt(cursor, 0, len(rs))
	arg, ok := beginArgAt(rs, cursor)
	if !ok {
		return Result{}, false
	}

	tags := ScanTags(text)
	if !hasBegin(tags) {
		return Result{}, false
	}

	res := Result{Text: text, Cursor: cursor}
	changed := false

	if renamed, ok := renameEnd(rs, tags, arg, cursor); ok {
		res = res.then(renamed)
		changed = true
	}

	if repaired, ok := repairUnbalanced(res.Text); ok {
		res.Text = repaired
		res.Actions = append(res.Actions, ActionRepair)
		changed = true
	}

	if !changed {
		return Result{}, false
	}
	return res, true
}

func hasBegin(tags []Tag) bool {
	for _, t := range tags {
		if t.Kind == TagBegin {
			return true
		}
	}
	return false
}

// renameEnd mirrors the name of the \begin tag at arg into its matching
// \end. The \end always follows the cursor, so the cursor keeps its offset.
func renameEnd(rs []rune, tags []Tag, arg Arg, cursor int) (Result, bool) {
	for i, t := range tags {
		if t.Kind != TagBegin || t.NameStart != arg.NameStart {
			continue
		}
		j, ok := MatchingEnd(tags, i)
		if !ok || tags[j].Name == t.Name {
			return Result{}, false
		}
		return Result{
			Text:    splice(rs, tags[j].NameStart, tags[j].NameEnd, t.Name),
			Cursor:  cursor,
			Actions: []Action{ActionRename},
		}, true
	}
	return Result{}, false
}

// Unbalanced reports whether \begin{ occurrences outnumber \end{ ones.
// Surplus \end{ tags are not counted as unbalanced: there is no \begin to
// pair a new tag with, and appending ends would repeat on every keystroke.
func Unbalanced(text string) bool {
	return strings.Count(text, beginOpen) > strings.Count(text, endOpen)
}

func repairUnbalanced(text string) (string, bool) {
	if !Unbalanced(text) {
		return "", false
	}
	tags := ScanTags(text)
	for i := len(tags) - 1; i >= 0; i-- {
		if tags[i].Kind != TagBegin {
			continue
		}
		rs := []rune(text)
		return splice(rs, tags[i].End, tags[i].End, endTemplate(tags[i].Name)), true
	}
	return "", false
}

// InsertMatchingEnd inserts an \end{name} template at rune offset at when
// the text has more \begin than \end tags.
func InsertMatchingEnd(text string, at int, name string) (string, bool) {
	if !Unbalanced(text) {
		return "", false
	}
	rs := []rune(text)
	at = clampInt(at, 0, len(rs))
	return splice(rs, at, at, endTemplate(name)), true
}
