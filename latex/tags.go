package latex

import "regexp"

// TagKind distinguishes \begin from \end.
type TagKind uint8

const (
	TagBegin TagKind = iota
	TagEnd
)

func (k TagKind) String() string {
	if k == TagEnd {
		return "end"
	}
	return "begin"
}

// Tag is a complete \begin{name} or \end{name} occurrence. Offsets are
// runes; [Start, End) covers the whole tag, [NameStart, NameEnd) the name.
type Tag struct {
	Kind      TagKind
	Name      string
	Start     int
	End       int
	NameStart int
	NameEnd   int
}

var tagRE = regexp.MustCompile(`\\(begin|end)\{([^{}\\\n]*)\}`)

// ScanTags returns every complete environment tag in text, in order.
func ScanTags(text string) []Tag {
	idx := tagRE.FindAllStringSubmatchIndex(text, -1)
	if len(idx) == 0 {
		return nil
	}

	rc := runeCounter{text: text}
	out := make([]Tag, 0, len(idx))
	for _, m := range idx {
		kind := TagBegin
		if text[m[2]:m[3]] == "end" {
			kind = TagEnd
		}
		out = append(out, Tag{
			Kind:      kind,
			Name:      text[m[4]:m[5]],
			Start:     rc.at(m[0]),
			NameStart: rc.at(m[4]),
			NameEnd:   rc.at(m[5]),
			End:       rc.at(m[1]),
		})
	}
	return out
}

// MatchingEnd returns the index of the \end tag that closes tags[i].
//
// Tags after i are walked with a nesting counter: each \begin opens a level,
// an \end at level zero is the match, any other \end closes a level.
func MatchingEnd(tags []Tag, i int) (int, bool) {
	if i < 0 || i >= len(tags) || tags[i].Kind != TagBegin {
		return 0, false
	}
	depth := 0
	for j := i + 1; j < len(tags); j++ {
		switch tags[j].Kind {
		case TagBegin:
			depth++
		case TagEnd:
			if depth == 0 {
				return j, true
			}
			depth--
		}
	}
	return 0, false
}
