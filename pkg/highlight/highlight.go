// Package highlight caches per-line syntax styling.
//
// A Highlighter styles one line at a time given the tokenizer state at the
// end of the previous line. The Cache keeps the spans and end state of a
// prefix of the document; an edit invalidates its first changed line and
// every line after it, and later requests resume from the nearest snapshot.
package highlight

import (
	"example.com/wrapedit/pkg/style"
)

// State is an immutable tokenizer snapshot taken at the end of a line.
// Highlighters define the concrete type; values must be safe to share.
type State any

// Span styles bytes [Start, End) of a line. When spans overlap, later spans
// in the slice take precedence.
type Span struct {
	Start int
	End   int
	Style style.ID
}

// Highlighter styles lines incrementally.
type Highlighter interface {
	Name() string
	// Start is the state before the first line.
	Start() State
	HighlightLine(line string, prior State) ([]Span, State)
}

// LineSource is the read side of a document.
type LineSource interface {
	LineCount() int
	Line(i int) (string, error)
}

type entry struct {
	spans []Span
	end   State
}

// Cache holds highlight results for a prefix of the document.
type Cache struct {
	h       Highlighter
	entries []entry
}

// NewCache returns an empty cache for h. A nil highlighter yields no spans.
func NewCache(h Highlighter) *Cache { return &Cache{h: h} }

// Highlighter returns the active highlighter.
func (c *Cache) Highlighter() Highlighter { return c.h }

// SetHighlighter swaps the highlighter and drops every entry.
func (c *Cache) SetHighlighter(h Highlighter) {
	c.h = h
	c.InvalidateFrom(0)
}

// InvalidateFrom drops line and every later line.
func (c *Cache) InvalidateFrom(line int) {
	if line < 0 {
		line = 0
	}
	if line < len(c.entries) {
		clear(c.entries[line:])
		c.entries = c.entries[:line]
	}
}

// Cached returns the number of lines with a valid entry.
func (c *Cache) Cached() int { return len(c.entries) }

// Ensure computes entries up to and including line to.
func (c *Cache) Ensure(src LineSource, to int) error {
	if c.h == nil {
		return nil
	}
	for i := len(c.entries); i <= to; i++ {
		text, err := src.Line(i)
		if err != nil {
			return err
		}
		prior := c.h.Start()
		if i > 0 {
			prior = c.entries[i-1].end
		}
		spans, end := c.h.HighlightLine(text, prior)
		c.entries = append(c.entries, entry{spans: spans, end: end})
	}
	return nil
}

// Spans returns the styled spans of line i, computing any missing lines
// before it.
func (c *Cache) Spans(src LineSource, i int) ([]Span, error) {
	if c.h == nil {
		if _, err := src.Line(i); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err := c.Ensure(src, i); err != nil {
		return nil, err
	}
	return c.entries[i].spans, nil
}

// Styles expands spans into a style per byte of a line of length n.
func Styles(spans []Span, n int) []style.ID {
	out := make([]style.ID, n)
	for _, s := range spans {
		start, end := max(s.Start, 0), min(s.End, n)
		for i := start; i < end; i++ {
			out[i] = s.Style
		}
	}
	return out
}
