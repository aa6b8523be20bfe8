package plugins

import (
	"regexp"
	"strings"

	"example.com/wrapedit/pkg/highlight"
	"example.com/wrapedit/pkg/style"
)

// MarkdownHighlighter provides very basic, fast heuristics-based highlighting for Markdown.
// It highlights:
// - ATX headings starting with '#'
// - Code fences and their contents
// - Inline code `code`
// - Blockquotes starting with '>'
// - List markers (-, *, +, or numbered)
// - Links [text](url)
// - Emphasis
// The open fence is carried from line to line as the state.
type MarkdownHighlighter struct{}

// markdownState records the marker of an open code fence.
type markdownState struct {
	fence string
}

var (
	inlineCode = regexp.MustCompile("`[^`]+`")
	mdLink     = regexp.MustCompile(`\[[^\]]+\]\([^\)]+\)`)
	emphasis   = regexp.MustCompile(`(\*\*[^\*]+\*\*|\*[^\*\s][^\*]*\*|_[^_]+_)`)
)

func NewMarkdownHighlighter() *MarkdownHighlighter { return &MarkdownHighlighter{} }

func (m *MarkdownHighlighter) Name() string { return "markdown-basic" }

func (m *MarkdownHighlighter) Start() highlight.State { return markdownState{} }

func (m *MarkdownHighlighter) HighlightLine(line string, prior highlight.State) ([]highlight.Span, highlight.State) {
	st, _ := prior.(markdownState)
	trim := strings.TrimLeft(line, " \t")
	indent := len(line) - len(trim)
	whole := []highlight.Span{{Start: 0, End: len(line), Style: style.Code}}

	if marker := fenceMarker(trim); marker != "" {
		if st.fence == "" {
			return whole, markdownState{fence: marker}
		}
		if marker == st.fence {
			return whole, markdownState{}
		}
	}
	if st.fence != "" {
		if len(line) == 0 {
			return nil, st
		}
		return whole, st
	}

	var spans []highlight.Span
	add := func(start, end int, id style.ID) {
		spans = append(spans, highlight.Span{Start: start, End: end, Style: id})
	}
	switch {
	case strings.HasPrefix(trim, "#"):
		add(0, len(line), style.Heading)
	case strings.HasPrefix(trim, ">"):
		add(0, len(line), style.Comment)
	case strings.HasPrefix(trim, "- ") || strings.HasPrefix(trim, "* ") || strings.HasPrefix(trim, "+ "):
		add(indent, indent+1, style.Keyword)
	default:
		di := 0
		for di < len(trim) && trim[di] >= '0' && trim[di] <= '9' {
			di++
		}
		if di > 0 && di < len(trim) && (trim[di] == '.' || trim[di] == ')') {
			add(indent, indent+di+1, style.Keyword)
		}
	}
	for _, loc := range emphasis.FindAllStringIndex(line, -1) {
		if loc[0] == indent && strings.HasPrefix(trim, "* ") {
			continue
		}
		add(loc[0], loc[1], style.Emphasis)
	}
	for _, loc := range mdLink.FindAllStringIndex(line, -1) {
		add(loc[0], loc[1], style.Link)
		if rb := strings.IndexByte(line[loc[0]:loc[1]], ']'); rb > 0 {
			add(loc[0], loc[0]+rb+1, style.Type)
		}
	}
	for _, loc := range inlineCode.FindAllStringIndex(line, -1) {
		add(loc[0], loc[1], style.Code)
	}
	return spans, st
}

func fenceMarker(trim string) string {
	for _, m := range []string{"```", "~~~"} {
		if strings.HasPrefix(trim, m) {
			return m
		}
	}
	return ""
}
