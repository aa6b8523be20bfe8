package buffer

import (
	"strings"
	"unicode/utf8"
)

// Document is an ordered sequence of lines. It always holds at least one
// line; the empty document is a single empty line.
type Document struct {
	lines LineStorage
}

// New returns an empty Document.
func New() *Document {
	return &Document{lines: NewGapBuffer([]string{""})}
}

// FromString builds a Document by splitting s on "\n".
func FromString(s string) *Document {
	return &Document{lines: NewGapBuffer(strings.Split(s, "\n"))}
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return d.lines.Len() }

// Line returns the text of line i without its terminator.
func (d *Document) Line(i int) (string, error) {
	if i < 0 || i >= d.lines.Len() {
		return "", errorf("line %d of %d", i, d.lines.Len())
	}
	return d.lines.Line(i), nil
}

// LineLen returns the byte length of line i.
func (d *Document) LineLen(i int) (int, error) {
	l, err := d.Line(i)
	return len(l), err
}

// Lines returns a copy of every line.
func (d *Document) Lines() []string { return d.lines.Slice(0, d.lines.Len()) }

// Text returns the document joined with "\n".
func (d *Document) Text() string { return strings.Join(d.Lines(), "\n") }

// End returns the position after the last character.
func (d *Document) End() Position {
	last := d.lines.Len() - 1
	return Position{Line: last, Col: len(d.lines.Line(last))}
}

// Validate reports whether pos addresses a rune boundary in the document.
func (d *Document) Validate(pos Position) error {
	if pos.Line < 0 || pos.Line >= d.lines.Len() {
		return errorf("line %d of %d", pos.Line, d.lines.Len())
	}
	line := d.lines.Line(pos.Line)
	if pos.Col < 0 || pos.Col > len(line) {
		return errorf("column %d of %d on line %d", pos.Col, len(line), pos.Line)
	}
	if pos.Col < len(line) && !utf8.RuneStart(line[pos.Col]) {
		return errorf("column %d on line %d is inside a rune", pos.Col, pos.Line)
	}
	return nil
}

func (d *Document) validateSpan(s Span) error {
	if err := d.Validate(s.Start); err != nil {
		return err
	}
	if err := d.Validate(s.End); err != nil {
		return err
	}
	if s.End.Less(s.Start) {
		return errorf("span %s ends before it starts", s)
	}
	return nil
}

// ClampPosition returns the nearest valid position to pos.
func (d *Document) ClampPosition(pos Position) Position {
	if pos.Line < 0 {
		return Position{}
	}
	if pos.Line >= d.lines.Len() {
		return d.End()
	}
	line := d.lines.Line(pos.Line)
	if pos.Col < 0 {
		pos.Col = 0
	}
	if pos.Col > len(line) {
		pos.Col = len(line)
	}
	for pos.Col > 0 && pos.Col < len(line) && !utf8.RuneStart(line[pos.Col]) {
		pos.Col--
	}
	return pos
}

// Slice returns the text covered by s.
func (d *Document) Slice(s Span) (string, error) {
	if err := d.validateSpan(s); err != nil {
		return "", err
	}
	if s.Start.Line == s.End.Line {
		return d.lines.Line(s.Start.Line)[s.Start.Col:s.End.Col], nil
	}
	var sb strings.Builder
	sb.WriteString(d.lines.Line(s.Start.Line)[s.Start.Col:])
	for i := s.Start.Line + 1; i < s.End.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(d.lines.Line(i))
	}
	sb.WriteByte('\n')
	sb.WriteString(d.lines.Line(s.End.Line)[:s.End.Col])
	return sb.String(), nil
}

// Insert inserts text at pos. Text may contain "\n", which splits lines.
func (d *Document) Insert(pos Position, text string) (Change, error) {
	if err := d.Validate(pos); err != nil {
		return Change{}, err
	}
	line := d.lines.Line(pos.Line)
	head, tail := line[:pos.Col], line[pos.Col:]
	parts := strings.Split(text, "\n")
	var end Position
	if len(parts) == 1 {
		d.lines.SetLine(pos.Line, head+text+tail)
		end = Position{Line: pos.Line, Col: pos.Col + len(text)}
	} else {
		last := parts[len(parts)-1]
		added := make([]string, 0, len(parts)-1)
		added = append(added, parts[1:len(parts)-1]...)
		added = append(added, last+tail)
		if err := d.lines.Insert(pos.Line+1, added); err != nil {
			return Change{}, err
		}
		d.lines.SetLine(pos.Line, head+parts[0])
		end = Position{Line: pos.Line + len(parts) - 1, Col: len(last)}
	}
	op := EditOp{Kind: InsertOp, Span: Span{Start: pos, End: end}, Text: text}
	return Change{
		Op:        op,
		Inverse:   op.Inverse(),
		FirstLine: pos.Line,
		LastLine:  end.Line,
		Delta:     len(parts) - 1,
	}, nil
}

// Delete removes the text covered by s. The removed text is returned in the
// change's Op.Text.
func (d *Document) Delete(s Span) (Change, error) {
	removed, err := d.Slice(s)
	if err != nil {
		return Change{}, err
	}
	head := d.lines.Line(s.Start.Line)[:s.Start.Col]
	tail := d.lines.Line(s.End.Line)[s.End.Col:]
	if s.End.Line > s.Start.Line {
		if err := d.lines.Delete(s.Start.Line+1, s.End.Line+1); err != nil {
			return Change{}, err
		}
	}
	d.lines.SetLine(s.Start.Line, head+tail)
	op := EditOp{Kind: DeleteOp, Span: s, Text: removed}
	return Change{
		Op:        op,
		Inverse:   op.Inverse(),
		FirstLine: s.Start.Line,
		LastLine:  s.Start.Line,
		Delta:     s.Start.Line - s.End.Line,
	}, nil
}

// Apply performs op on the document.
func (d *Document) Apply(op EditOp) (Change, error) {
	if op.Kind == InsertOp {
		return d.Insert(op.Span.Start, op.Text)
	}
	return d.Delete(op.Span)
}
