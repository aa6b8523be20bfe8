package buffer

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned for positions or spans outside the document.
var ErrOutOfBounds = errors.New("position out of bounds")

func errorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrOutOfBounds}, args...)...)
}

// Position addresses a point in a Document. Col is a byte offset into the
// line and always sits on a rune boundary; Col == len(line) is end of line.
type Position struct {
	Line int
	Col  int
}

// Compare returns -1, 0 or 1 comparing p and q in document order.
func (p Position) Compare(q Position) int {
	switch {
	case p.Line < q.Line:
		return -1
	case p.Line > q.Line:
		return 1
	case p.Col < q.Col:
		return -1
	case p.Col > q.Col:
		return 1
	}
	return 0
}

// Less reports whether p comes before q.
func (p Position) Less(q Position) bool { return p.Compare(q) < 0 }

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Span is a half-open region [Start, End) with Start <= End.
type Span struct {
	Start Position
	End   Position
}

// NewSpan returns the span between a and b in document order.
func NewSpan(a, b Position) Span {
	if b.Less(a) {
		a, b = b, a
	}
	return Span{Start: a, End: b}
}

// Empty reports whether the span covers nothing.
func (s Span) Empty() bool { return s.Start == s.End }

// Contains reports whether p lies inside the span.
func (s Span) Contains(p Position) bool {
	return !p.Less(s.Start) && p.Less(s.End)
}

func (s Span) String() string { return fmt.Sprintf("[%s,%s)", s.Start, s.End) }
