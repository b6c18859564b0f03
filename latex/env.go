package latex

const beginOpen = BeginCommand + "{"

// Arg is the name argument of a \begin{...} tag. Offsets are runes.
type Arg struct {
	// Start is the offset of the backslash of \begin.
	Start int
	// NameStart and NameEnd delimit the name: [NameStart, NameEnd).
	NameStart int
	NameEnd   int
	// Closed reports whether a '}' sits at NameEnd.
	Closed bool
	Name   string
}

// BeginArgAt returns the \begin argument whose name holds the cursor.
//
// The cursor may sit anywhere from the first name character up to the
// closing brace, or directly after it for a closed argument.
func BeginArgAt(text string, cursor int) (Arg, bool) {
	rs := []rune(text)
	return beginArgAt(rs, clampInt(cursor, 0, len(rs)))
}

func beginArgAt(rs []rune, cursor int) (Arg, bool) {
	open := []rune(beginOpen)
	for i := 0; i+len(open) <= len(rs); i++ {
		if !hasRunesAt(rs, i, open) {
			continue
		}
		nameStart := i + len(open)
		if nameStart > cursor {
			break
		}
		j := nameStart
		for j < len(rs) && isNameRune(rs[j]) {
			j++
		}
		arg := Arg{
			Start:     i,
			NameStart: nameStart,
			NameEnd:   j,
			Closed:    j < len(rs) && rs[j] == '}',
			Name:      string(rs[nameStart:j]),
		}
		if cursor <= j || (arg.Closed && cursor == j+1) {
			return arg, true
		}
		i = j
	}
	return Arg{}, false
}

func hasRunesAt(rs []rune, at int, want []rune) bool {
	if at+len(want) > len(rs) {
		return false
	}
	for k, r := range want {
		if rs[at+k] != r {
			return false
		}
	}
	return true
}

// isNameRune reports whether r may appear in an environment name.
func isNameRune(r rune) bool {
	switch r {
	case '{', '}', '\\', '\n':
		return false
	}
	return true
}

// MatchEnvironments returns the environment names that extend partial, in
// table order.
func MatchEnvironments(partial string, t Table) []string {
	var out []string
	for _, name := range t.environmentNames() {
		if len(name) > len(partial) && name[:len(partial)] == partial {
			out = append(out, name)
		}
	}
	return out
}

// CompleteEnvironment completes the environment name of the \begin{...}
// argument holding the cursor, using the same unique-or-common-prefix rule
// as CompleteCommand. A closed argument is matched and replaced as a whole,
// wherever the cursor sits in it; an unclosed one only up to the cursor.
// The cursor must not be past the closing brace.
func CompleteEnvironment(text string, cursor int, t Table) (Result, bool) {
	rs := []rune(text)
	cursor = clampInt(cursor, 0, len(rs))
	arg, ok := beginArgAt(rs, cursor)
	if !ok || cursor > arg.NameEnd {
		return Result{}, false
	}
	end := cursor
	if arg.Closed {
		end = arg.NameEnd
	}
	partial := string(rs[arg.NameStart:end])

	matches := MatchEnvironments(partial, t)
	var completion string
	switch len(matches) {
	case 0:
		return Result{}, false
	case 1:
		completion = matches[0]
	default:
		completion = LongestCommonPrefix(matches)
		if runeLen(completion) <= runeLen(partial) {
			return Result{}, false
		}
	}

	return Result{
		Text:    splice(rs, arg.NameStart, end, completion),
		Cursor:  arg.NameStart + runeLen(completion),
		Actions: []Action{ActionEnvironment},
	}, true
}
