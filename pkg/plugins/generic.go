package plugins

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"example.com/wrapedit/pkg/highlight"
	"example.com/wrapedit/pkg/style"
)

// Generic is a table-driven highlighter for C-family, shell and Python
// style languages: comments, quoted strings, multi-line raw strings,
// numbers, keywords, types and calls.
type Generic struct {
	name        string
	lineComment []string
	blockOpen   string
	blockClose  string
	rawString   string
	keywords    map[string]bool
	types       map[string]bool
}

// genericState is the construct left open at the end of a line.
type genericState struct {
	inBlock bool
	inRaw   bool
}

// NewGeneric builds a highlighter from a language spec.
func NewGeneric(lang *LanguageSpec) *Generic {
	g := &Generic{
		name:        "generic-" + lang.ID,
		lineComment: lang.LineComment,
		rawString:   lang.RawString,
		keywords:    make(map[string]bool, len(lang.Keywords)),
		types:       make(map[string]bool, len(lang.Types)),
	}
	if len(lang.BlockComment) == 2 {
		g.blockOpen, g.blockClose = lang.BlockComment[0], lang.BlockComment[1]
	}
	for _, k := range lang.Keywords {
		g.keywords[k] = true
	}
	for _, k := range lang.Types {
		g.types[k] = true
	}
	return g
}

func (g *Generic) Name() string { return g.name }

func (g *Generic) Start() highlight.State { return genericState{} }

func (g *Generic) HighlightLine(line string, prior highlight.State) ([]highlight.Span, highlight.State) {
	st, _ := prior.(genericState)
	var spans []highlight.Span
	add := func(start, end int, id style.ID) {
		if end > start {
			spans = append(spans, highlight.Span{Start: start, End: end, Style: id})
		}
	}
	i := 0
	// finish constructs carried over from the previous line
	switch {
	case st.inBlock:
		end, closed := closeAt(line, 0, g.blockClose)
		add(0, end, style.Comment)
		if !closed {
			return spans, st
		}
		st.inBlock = false
		i = end
	case st.inRaw:
		end, closed := closeAt(line, 0, g.rawString)
		add(0, end, style.String)
		if !closed {
			return spans, st
		}
		st.inRaw = false
		i = end
	}

	for i < len(line) {
		rest := line[i:]
		switch {
		case g.isLineComment(rest):
			add(i, len(line), style.Comment)
			return spans, st
		case g.blockOpen != "" && strings.HasPrefix(rest, g.blockOpen):
			end, closed := closeAt(line, i+len(g.blockOpen), g.blockClose)
			add(i, end, style.Comment)
			if !closed {
				return spans, genericState{inBlock: true}
			}
			i = end
		case g.rawString != "" && strings.HasPrefix(rest, g.rawString):
			end, closed := closeAt(line, i+len(g.rawString), g.rawString)
			add(i, end, style.String)
			if !closed {
				return spans, genericState{inRaw: true}
			}
			i = end
		case rest[0] == '"' || rest[0] == '\'':
			end := quotedEnd(line, i)
			add(i, end, style.String)
			i = end
		case isDigit(rest[0]):
			end := i + 1
			for end < len(line) && (isAlnum(line[end]) || line[end] == '.') {
				end++
			}
			add(i, end, style.Number)
			i = end
		case isIdentStart(rest):
			end := identEnd(line, i)
			word := line[i:end]
			switch {
			case g.keywords[word]:
				add(i, end, style.Keyword)
			case g.types[word]:
				add(i, end, style.Type)
			case strings.HasPrefix(strings.TrimLeft(line[end:], " "), "("):
				add(i, end, style.Function)
			}
			i = end
		case strings.ContainsRune("+-*/%=<>!&|^~?:", rune(rest[0])):
			end := i + 1
			for end < len(line) && strings.ContainsRune("+-*/%=<>!&|^~?:", rune(line[end])) {
				if g.isLineComment(line[end:]) || (g.blockOpen != "" && strings.HasPrefix(line[end:], g.blockOpen)) {
					break
				}
				end++
			}
			add(i, end, style.Operator)
			i = end
		default:
			_, size := utf8.DecodeRuneInString(rest)
			i += size
		}
	}
	return spans, st
}

func (g *Generic) isLineComment(s string) bool {
	for _, p := range g.lineComment {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// closeAt finds delim at or after from. It returns the offset after the
// delimiter, or the end of line when it is missing.
func closeAt(line string, from int, delim string) (int, bool) {
	if delim == "" {
		return len(line), false
	}
	idx := strings.Index(line[from:], delim)
	if idx < 0 {
		return len(line), false
	}
	return from + idx + len(delim), true
}

// quotedEnd returns the offset after the string starting at i, honoring
// backslash escapes. Unterminated strings end with the line.
func quotedEnd(line string, i int) int {
	q := line[i]
	for j := i + 1; j < len(line); j++ {
		switch line[j] {
		case '\\':
			j++
		case q:
			return j + 1
		}
	}
	return len(line)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlnum(b byte) bool {
	return isDigit(b) || b == '_' || (b|0x20 >= 'a' && b|0x20 <= 'z')
}

func isIdentStart(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r == '_' || unicode.IsLetter(r)
}

func identEnd(line string, i int) int {
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		i += size
	}
	return i
}
