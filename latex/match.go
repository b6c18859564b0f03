package latex

import (
	"sort"
	"strings"
)

// Action names one transformation applied by the engine.
type Action uint8

const (
	// ActionComplete replaced a partial command with a unique match.
	ActionComplete Action = iota + 1
	// ActionCommonPrefix extended a partial command to the longest common
	// prefix of several matches.
	ActionCommonPrefix
	// ActionEnvironment completed a \begin{...} argument.
	ActionEnvironment
	// ActionInsertEnd inserted an \end{} after a completed \begin.
	ActionInsertEnd
	// ActionRename mirrored a \begin name into its matching \end tag.
	ActionRename
	// ActionRepair appended a missing \end tag.
	ActionRepair
)

func (a Action) String() string {
	switch a {
	case ActionComplete:
		return "complete"
	case ActionCommonPrefix:
		return "common-prefix"
	case ActionEnvironment:
		return "environment"
	case ActionInsertEnd:
		return "insert-end"
	case ActionRename:
		return "rename"
	case ActionRepair:
		return "repair"
	default:
		return "unknown"
	}
}

// Result is a replacement buffer and the cursor to apply after it.
type Result struct {
	Text    string
	Cursor  int
	Actions []Action
}

func (r Result) then(next Result) Result {
	next.Actions = append(append([]Action(nil), r.Actions...), next.Actions...)
	return next
}

// PartialCommand returns the command fragment ending at cursor: a backslash
// followed by zero or more word characters. start is the rune offset of the
// backslash.
func PartialCommand(text string, cursor int) (partial string, start int, ok bool) {
	rs := []rune(text)
	cursor = clampInt(cursor, 0, len(rs))
	start, ok = partialStart(rs, cursor)
	if !ok {
		return "", 0, false
	}
	return string(rs[start:cursor]), start, true
}

func partialStart(rs []rune, cursor int) (int, bool) {
	i := cursor
	for i > 0 && isWord(rs[i-1]) {
		i--
	}
	if i > 0 && rs[i-1] == '\\' {
		return i - 1, true
	}
	return 0, false
}

// MatchCommands returns the entries that extend partial, in table order.
func MatchCommands(partial string, t Table) []CommandEntry {
	var out []CommandEntry
	for _, c := range t.Commands {
		if len(c.Command) > len(partial) && strings.HasPrefix(c.Command, partial) {
			out = append(out, c)
		}
	}
	return out
}

// CompleteCommand completes the command fragment before cursor.
//
// A unique match replaces the fragment with Command+After. Several matches
// extend the fragment to their longest common prefix when that adds at
// least one character. Anything else is a no-op.
func CompleteCommand(text string, cursor int, t Table) (Result, bool) {
	rs := []rune(text)
	cursor = clampInt(cursor, 0, len(rs))
	start, ok := partialStart(rs, cursor)
	if !ok {
		return Result{}, false
	}
	partial := string(rs[start:cursor])

	matches := MatchCommands(partial, t)
	switch len(matches) {
	case 0:
		return Result{}, false
	case 1:
		return completeUnique(rs, start, cursor, matches[0]), true
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Command
	}
	lcp := LongestCommonPrefix(names)
	if runeLen(lcp) <= runeLen(partial) {
		return Result{}, false
	}
	return Result{
		Text:    splice(rs, start, cursor, lcp),
		Cursor:  start + runeLen(lcp),
		Actions: []Action{ActionCommonPrefix},
	}, true
}

func completeUnique(rs []rune, start, cursor int, m CommandEntry) Result {
	inserted := m.Command + m.After
	res := Result{
		Text:    splice(rs, start, cursor, inserted),
		Cursor:  start + runeLen(m.Command),
		Actions: []Action{ActionComplete},
	}
	if i := strings.IndexByte(m.After, '{'); i >= 0 {
		res.Cursor = start + runeLen(m.Command) + runeLen(m.After[:i]) + 1
	}

	if m.Command == BeginCommand {
		at := start + runeLen(inserted)
		if text, ok := InsertMatchingEnd(res.Text, at, ""); ok {
			res.Text = text
			res.Actions = append(res.Actions, ActionInsertEnd)
		}
	}
	return res
}

// LongestCommonPrefix returns the longest string that prefixes every
// element of ss. The lexicographic extremes bound the common prefix of the
// whole set, so only the first and last sorted strings are compared.
func LongestCommonPrefix(ss []string) string {
	switch len(ss) {
	case 0:
		return ""
	case 1:
		return ss[0]
	}

	sorted := append([]string(nil), ss...)
	sort.Strings(sorted)
	first := []rune(sorted[0])
	last := []rune(sorted[len(sorted)-1])

	i := 0
	for i < len(first) && i < len(last) && first[i] == last[i] {
		i++
	}
	return string(first[:i])
}
