package buffer

// GapBuffer is a gap buffer of lines.
// The underlying slice stores lines with a gap between gapStart and gapEnd;
// the gap follows the most recent edit so nearby edits move few entries.
type GapBuffer struct {
	buf      []string
	gapStart int
	gapEnd   int
}

// NewGapBuffer creates a GapBuffer holding the given lines.
func NewGapBuffer(lines []string) *GapBuffer {
	capacity := len(lines) + 64
	b := make([]string, capacity)
	copy(b, lines)
	return &GapBuffer{buf: b, gapStart: len(lines), gapEnd: capacity}
}

func (g *GapBuffer) ensureGap(n int) {
	gap := g.gapEnd - g.gapStart
	if gap >= n {
		return
	}
	needed := n - gap
	newCap := len(g.buf)*2 + needed
	newBuf := make([]string, newCap)
	copy(newBuf, g.buf[:g.gapStart])
	suffixLen := len(g.buf) - g.gapEnd
	copy(newBuf[newCap-suffixLen:], g.buf[g.gapEnd:])
	g.gapEnd = newCap - suffixLen
	g.buf = newBuf
}

// moveGap moves the gap so that gapStart == pos.
func (g *GapBuffer) moveGap(pos int) {
	switch {
	case pos < g.gapStart:
		d := g.gapStart - pos
		copy(g.buf[g.gapEnd-d:g.gapEnd], g.buf[pos:g.gapStart])
		clear(g.buf[pos:g.gapStart])
		g.gapStart = pos
		g.gapEnd -= d
	case pos > g.gapStart:
		d := pos - g.gapStart
		copy(g.buf[g.gapStart:g.gapStart+d], g.buf[g.gapEnd:g.gapEnd+d])
		clear(g.buf[g.gapEnd : g.gapEnd+d])
		g.gapStart += d
		g.gapEnd += d
	}
}

// Insert inserts lines before index pos (0..Len()).
func (g *GapBuffer) Insert(pos int, lines []string) error {
	if pos < 0 || pos > g.Len() {
		return errorf("insert at line %d of %d", pos, g.Len())
	}
	g.moveGap(pos)
	g.ensureGap(len(lines))
	copy(g.buf[g.gapStart:], lines)
	g.gapStart += len(lines)
	return nil
}

// Delete removes lines in [start,end).
func (g *GapBuffer) Delete(start, end int) error {
	if start < 0 || end < start || end > g.Len() {
		return errorf("delete lines [%d,%d) of %d", start, end, g.Len())
	}
	g.moveGap(start)
	clear(g.buf[g.gapEnd : g.gapEnd+end-start])
	g.gapEnd += end - start
	return nil
}

// Line returns line i. The caller must keep i within [0, Len()).
func (g *GapBuffer) Line(i int) string {
	if i < g.gapStart {
		return g.buf[i]
	}
	return g.buf[g.gapEnd+(i-g.gapStart)]
}

// SetLine replaces line i. The caller must keep i within [0, Len()).
func (g *GapBuffer) SetLine(i int, s string) {
	if i < g.gapStart {
		g.buf[i] = s
		return
	}
	g.buf[g.gapEnd+(i-g.gapStart)] = s
}

// Len returns the number of lines (excluding the gap).
func (g *GapBuffer) Len() int {
	return len(g.buf) - (g.gapEnd - g.gapStart)
}

// Slice returns a copy of lines in [start,end), clamped to the buffer.
func (g *GapBuffer) Slice(start, end int) []string {
	if start < 0 {
		start = 0
	}
	if end > g.Len() {
		end = g.Len()
	}
	if start >= end {
		return []string{}
	}
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, g.Line(i))
	}
	return out
}
