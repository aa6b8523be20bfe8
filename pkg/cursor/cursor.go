// Package cursor implements the insertion point, its selection anchor, and
// the motions that move them over a document.
package cursor

import (
	"strings"

	"example.com/wrapedit/pkg/buffer"
)

// Motion is a cursor movement.
type Motion int

const (
	Left Motion = iota
	Right
	Up
	Down
	WordLeft
	WordRight
	LineStart
	LineEnd
	DocStart
	DocEnd
	PageUp
	PageDown
)

var motionNames = map[Motion]string{
	Left: "left", Right: "right", Up: "up", Down: "down",
	WordLeft: "word-left", WordRight: "word-right",
	LineStart: "line-start", LineEnd: "line-end",
	DocStart: "doc-start", DocEnd: "doc-end",
	PageUp: "page-up", PageDown: "page-down",
}

func (m Motion) String() string { return motionNames[m] }

// Document is the read side of a buffer.Document.
type Document interface {
	LineCount() int
	Line(i int) (string, error)
	End() buffer.Position
}

// RowMapper exposes the wrap geometry that vertical motion follows.
type RowMapper interface {
	Locate(pos buffer.Position) (row, x int)
	RowCount(line int) int
	ColAt(line, row, x int) int
	PageSize() int
}

// Cursor is an insertion point with an optional selection anchor. The
// desired column is the display column vertical motion aims for.
type Cursor struct {
	Pos buffer.Position

	anchor    buffer.Position
	selecting bool
	goal      int
	hasGoal   bool
}

// At returns a cursor at p with no selection.
func At(p buffer.Position) Cursor { return Cursor{Pos: p} }

// Anchor returns the selection anchor, if any.
func (c *Cursor) Anchor() (buffer.Position, bool) { return c.anchor, c.selecting }

// Selection returns the selected span. ok is false when nothing is selected.
func (c *Cursor) Selection() (span buffer.Span, ok bool) {
	if !c.selecting || c.anchor == c.Pos {
		return buffer.Span{}, false
	}
	return buffer.NewSpan(c.anchor, c.Pos), true
}

// SetPos moves the cursor to p, dropping the selection and desired column.
func (c *Cursor) SetPos(p buffer.Position) {
	c.Pos = p
	c.selecting = false
	c.hasGoal = false
}

// Select sets a selection from anchor to pos.
func (c *Cursor) Select(anchor, pos buffer.Position) {
	c.anchor = anchor
	c.Pos = pos
	c.selecting = true
	c.hasGoal = false
}

// ClearSelection drops the anchor, keeping the position.
func (c *Cursor) ClearSelection() { c.selecting = false }

// SelectAll selects the whole document.
func (c *Cursor) SelectAll(doc Document) { c.Select(buffer.Position{}, doc.End()) }

// Clamp repairs the cursor after the document changed underneath it.
func (c *Cursor) Clamp(doc interface {
	ClampPosition(buffer.Position) buffer.Position
}) {
	c.Pos = doc.ClampPosition(c.Pos)
	c.anchor = doc.ClampPosition(c.anchor)
}

// Move applies motion. With extend the selection grows from the current
// anchor (set at the old position if none); otherwise the selection is
// released.
func (c *Cursor) Move(doc Document, rows RowMapper, motion Motion, extend bool) {
	switch {
	case extend && !c.selecting:
		c.anchor = c.Pos
		c.selecting = true
	case !extend:
		c.selecting = false
	}
	switch motion {
	case Up:
		c.vertical(doc, rows, -1)
		return
	case Down:
		c.vertical(doc, rows, 1)
		return
	case PageUp, PageDown:
		dir := 1
		if motion == PageUp {
			dir = -1
		}
		for i := rows.PageSize(); i > 0; i-- {
			if !c.vertical(doc, rows, dir) {
				break
			}
		}
		return
	}
	c.hasGoal = false
	line, _ := doc.Line(c.Pos.Line)
	last := doc.LineCount() - 1
	switch motion {
	case Left:
		if c.Pos.Col > 0 {
			c.Pos.Col = buffer.PrevGrapheme(line, c.Pos.Col)
		} else if c.Pos.Line > 0 {
			c.Pos = lineEnd(doc, c.Pos.Line-1)
		}
	case Right:
		if c.Pos.Col < len(line) {
			c.Pos.Col = buffer.NextGrapheme(line, c.Pos.Col)
		} else if c.Pos.Line < last {
			c.Pos = buffer.Position{Line: c.Pos.Line + 1}
		}
	case WordLeft:
		if c.Pos.Col == 0 && c.Pos.Line > 0 {
			c.Pos = lineEnd(doc, c.Pos.Line-1)
		} else {
			c.Pos.Col = buffer.WordLeft(line, c.Pos.Col)
		}
	case WordRight:
		if c.Pos.Col >= len(line) && c.Pos.Line < last {
			c.Pos = buffer.Position{Line: c.Pos.Line + 1}
		} else {
			c.Pos.Col = buffer.WordRight(line, c.Pos.Col)
		}
	case LineStart:
		// first non-blank, or column zero when already there
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if c.Pos.Col == indent {
			indent = 0
		}
		c.Pos.Col = indent
	case LineEnd:
		c.Pos.Col = len(line)
	case DocStart:
		c.Pos = buffer.Position{}
	case DocEnd:
		c.Pos = doc.End()
	}
}

// vertical moves one wrap row up (dir < 0) or down. It reports false when
// the cursor was already on the first or last row.
func (c *Cursor) vertical(doc Document, rows RowMapper, dir int) bool {
	row, x := rows.Locate(c.Pos)
	if !c.hasGoal {
		c.goal = x
		c.hasGoal = true
	}
	line := c.Pos.Line
	switch {
	case dir < 0 && row > 0:
		row--
	case dir < 0 && line > 0:
		line--
		row = rows.RowCount(line) - 1
	case dir < 0:
		moved := c.Pos != buffer.Position{}
		c.Pos = buffer.Position{}
		return moved
	case row+1 < rows.RowCount(line):
		row++
	case line+1 < doc.LineCount():
		line++
		row = 0
	default:
		end := doc.End()
		moved := c.Pos != end
		c.Pos = end
		return moved
	}
	c.Pos = buffer.Position{Line: line, Col: rows.ColAt(line, row, c.goal)}
	return true
}

func lineEnd(doc Document, line int) buffer.Position {
	l, _ := doc.Line(line)
	return buffer.Position{Line: line, Col: len(l)}
}
