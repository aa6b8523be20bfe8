package plugins

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"example.com/wrapedit/pkg/highlight"
	"example.com/wrapedit/pkg/style"
)

// maxCarry bounds how much unfinished source a chroma state drags along.
const maxCarry = 16 << 10

// Chroma adapts a chroma lexer to the line highlighter contract. Chroma
// lexes whole texts, so a line that ends inside a multi-line construct
// (an error token, or a trailing string or block comment token) carries its
// source into the next line's state and is re-lexed with it.
type Chroma struct {
	lexer chroma.Lexer
	name  string
}

// chromaState is the unfinished source preceding a line.
type chromaState struct {
	carry string
}

// NewChroma wraps lexer.
func NewChroma(lexer chroma.Lexer) *Chroma {
	return &Chroma{
		lexer: chroma.Coalesce(lexer),
		name:  "chroma-" + strings.ToLower(strings.ReplaceAll(lexer.Config().Name, " ", "-")),
	}
}

// NewChromaForPath returns a highlighter for the lexer matching the file
// name, or nil when chroma has none.
func NewChromaForPath(path string) *Chroma {
	l := lexers.Match(path)
	if l == nil {
		return nil
	}
	return NewChroma(l)
}

func (c *Chroma) Name() string { return c.name }

func (c *Chroma) Start() highlight.State { return chromaState{} }

func (c *Chroma) HighlightLine(line string, prior highlight.State) ([]highlight.Span, highlight.State) {
	st, _ := prior.(chromaState)
	text := st.carry + line + "\n"
	it, err := c.lexer.Tokenise(nil, text)
	if err != nil {
		return nil, chromaState{}
	}
	var spans []highlight.Span
	off := -len(st.carry)
	open := false
	var last chroma.TokenType
	for _, tok := range it.Tokens() {
		start, end := off, off+len(tok.Value)
		off = end
		if tok.Type == chroma.Error {
			open = true
		}
		last = tok.Type
		if end <= 0 {
			continue
		}
		start, end = max(start, 0), min(end, len(line))
		if start >= end {
			continue
		}
		if id, ok := roleOf(tok.Type); ok {
			spans = append(spans, highlight.Span{Start: start, End: end, Style: id})
		}
	}
	if last != chroma.CommentSingle && (last.InCategory(chroma.Comment) || last.InSubCategory(chroma.LiteralString)) {
		open = true
	}
	if open && len(text) < maxCarry {
		return spans, chromaState{carry: text}
	}
	return spans, chromaState{}
}

// roleOf maps a chroma token type to a style role.
func roleOf(tt chroma.TokenType) (style.ID, bool) {
	switch {
	case tt == chroma.KeywordType || tt == chroma.NameBuiltin || tt == chroma.NameClass:
		return style.Type, true
	case tt.InCategory(chroma.Keyword):
		return style.Keyword, true
	case tt.InCategory(chroma.Comment):
		return style.Comment, true
	case tt.InSubCategory(chroma.LiteralString):
		return style.String, true
	case tt.InSubCategory(chroma.LiteralNumber):
		return style.Number, true
	case tt == chroma.NameFunction || tt == chroma.NameFunctionMagic:
		return style.Function, true
	case tt == chroma.NameTag || tt == chroma.NameAttribute:
		return style.Keyword, true
	case tt.InCategory(chroma.Operator):
		return style.Operator, true
	case tt == chroma.GenericHeading || tt == chroma.GenericSubheading:
		return style.Heading, true
	}
	return style.Default, false
}

func firstExt(lang *LanguageSpec) string {
	if len(lang.Extensions) == 0 {
		return ""
	}
	return lang.Extensions[0]
}
