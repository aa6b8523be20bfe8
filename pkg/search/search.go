// Package search finds literal matches in a document.
package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"example.com/wrapedit/pkg/buffer"
)

// Range represents a byte-offset half-open interval [Start, End) within a
// single line.
type Range struct {
	Start int
	End   int
}

// Lines is the read side of a document.
type Lines interface {
	LineCount() int
	Line(i int) (string, error)
}

// SearchAll returns all non-overlapping occurrences of query in text as byte
// ranges. An empty query returns nil.
func SearchAll(text, query string) []Range {
	if query == "" {
		return nil
	}
	var res []Range
	off := 0
	for {
		idx := strings.Index(text[off:], query)
		if idx < 0 {
			break
		}
		start := off + idx
		end := start + len(query)
		res = append(res, Range{Start: start, End: end})
		off = end
	}
	return res
}

// SearchAllCase is SearchAll with optional case folding. Folding compares
// rune by rune under Unicode simple folding, so offsets always refer to
// text even when the folded forms differ in byte length.
func SearchAllCase(text, query string, caseSensitive bool) []Range {
	if caseSensitive || query == "" {
		return SearchAll(text, query)
	}
	var res []Range
	for off := 0; off < len(text); {
		if end, ok := foldPrefix(text[off:], query); ok {
			res = append(res, Range{Start: off, End: off + end})
			off += end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[off:])
		off += size
	}
	return res
}

// foldPrefix reports whether s starts with query under simple folding and
// returns the byte length of the matched prefix of s.
func foldPrefix(s, query string) (int, bool) {
	n := 0
	for _, q := range query {
		if n >= len(s) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s[n:])
		if !equalFold(r, q) {
			return 0, false
		}
		n += size
	}
	return n, true
}

func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}

func findLine(line string, i int, query string, caseSensitive bool) []buffer.Span {
	var out []buffer.Span
	for _, r := range SearchAllCase(line, query, caseSensitive) {
		out = append(out, buffer.Span{
			Start: buffer.Position{Line: i, Col: r.Start},
			End:   buffer.Position{Line: i, Col: r.End},
		})
	}
	return out
}

// Find returns every match of query in doc, line by line. Queries never
// span lines.
func Find(doc Lines, query string, caseSensitive bool) []buffer.Span {
	if query == "" || strings.Contains(query, "\n") {
		return nil
	}
	var out []buffer.Span
	for i := 0; i < doc.LineCount(); i++ {
		line, err := doc.Line(i)
		if err != nil {
			break
		}
		out = append(out, findLine(line, i, query, caseSensitive)...)
	}
	return out
}

// Refresh updates matches after an edit that replaced lines
// [first, oldLast] with [first, newLast]. Only the new lines are searched
// again; matches below them move by the change in line count.
func Refresh(doc Lines, matches []buffer.Span, query string, caseSensitive bool, first, oldLast, newLast int) []buffer.Span {
	if query == "" || strings.Contains(query, "\n") {
		return nil
	}
	lo := sort.Search(len(matches), func(i int) bool { return matches[i].Start.Line >= first })
	hi := sort.Search(len(matches), func(i int) bool { return matches[i].Start.Line > oldLast })
	out := make([]buffer.Span, 0, len(matches))
	out = append(out, matches[:lo]...)
	for i := first; i <= newLast && i < doc.LineCount(); i++ {
		line, err := doc.Line(i)
		if err != nil {
			break
		}
		out = append(out, findLine(line, i, query, caseSensitive)...)
	}
	shift := newLast - oldLast
	for _, m := range matches[hi:] {
		m.Start.Line += shift
		m.End.Line += shift
		out = append(out, m)
	}
	return out
}

// Next returns the index of the first match starting after pos, wrapping to
// the first match. It returns -1 when there are no matches.
func Next(matches []buffer.Span, pos buffer.Position) int {
	if len(matches) == 0 {
		return -1
	}
	for i, m := range matches {
		if pos.Less(m.Start) {
			return i
		}
	}
	return 0
}

// Prev returns the index of the last match starting before pos, wrapping to
// the last match.
func Prev(matches []buffer.Span, pos buffer.Position) int {
	if len(matches) == 0 {
		return -1
	}
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].Start.Less(pos) {
			return i
		}
	}
	return len(matches) - 1
}

// OnLine returns the column ranges of matches on line i. matches must be in
// document order.
func OnLine(matches []buffer.Span, i int) []Range {
	lo := sort.Search(len(matches), func(k int) bool { return matches[k].Start.Line >= i })
	var out []Range
	for _, m := range matches[lo:] {
		if m.Start.Line != i {
			break
		}
		out = append(out, Range{Start: m.Start.Col, End: m.End.Col})
	}
	return out
}
