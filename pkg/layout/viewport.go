package layout

import "example.com/wrapedit/pkg/buffer"

// DefaultMargin is the number of rows kept between the cursor and the
// viewport edges.
const DefaultMargin = 3

// LineSource is the read side of a document.
type LineSource interface {
	LineCount() int
	Line(i int) (string, error)
}

// ScrollPos addresses a wrap row of a line.
type ScrollPos struct {
	Line int
	Row  int
}

// Before reports whether p is above q.
func (p ScrollPos) Before(q ScrollPos) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Row < q.Row)
}

// VisualRow is a wrap row placed on screen.
type VisualRow struct {
	Line   int
	Row    int
	First  bool
	Bounds Row
}

type cachedRows struct {
	text string
	rows []Row
	ok   bool
}

// Viewport is the visible window onto a document. It caches wrap rows per
// line; callers drop stale entries with Invalidate after edits.
type Viewport struct {
	Layout Layout
	Height int
	Margin int
	Top    ScrollPos

	src   LineSource
	cache []cachedRows
}

// NewViewport returns a viewport of width x height cells over src.
func NewViewport(src LineSource, width, height int) *Viewport {
	return &Viewport{
		Layout: Layout{Width: width, TabWidth: DefaultTabWidth},
		Height: height,
		Margin: DefaultMargin,
		src:    src,
	}
}

// SetSource points the viewport at another document and resets it.
func (v *Viewport) SetSource(src LineSource) {
	v.src = src
	v.cache = nil
	v.Top = ScrollPos{}
}

// Resize changes the viewport dimensions. A width change drops every cached
// row since wrapping depends on it.
func (v *Viewport) Resize(width, height int) {
	if width != v.Layout.Width {
		v.cache = nil
	}
	v.Layout.Width = width
	v.Height = height
	v.clampTop()
}

// Configure replaces the wrap parameters.
func (v *Viewport) Configure(l Layout) {
	l.Width = v.Layout.Width
	if l != v.Layout {
		v.cache = nil
	}
	v.Layout = l
	v.clampTop()
}

// Invalidate drops cached rows for line and every later line.
func (v *Viewport) Invalidate(from int) {
	if from < 0 {
		from = 0
	}
	if from < len(v.cache) {
		clear(v.cache[from:])
		v.cache = v.cache[:from]
	}
	v.clampTop()
}

func (v *Viewport) clampTop() {
	if v.src == nil {
		return
	}
	if n := v.src.LineCount(); v.Top.Line >= n {
		v.Top = ScrollPos{Line: n - 1}
	}
	if v.Top.Line < 0 {
		v.Top = ScrollPos{}
	}
	if rc := v.RowCount(v.Top.Line); v.Top.Row >= rc {
		v.Top.Row = rc - 1
	}
}

func (v *Viewport) line(i int) string {
	l, _ := v.src.Line(i)
	return l
}

// Rows returns the wrap rows of line i.
func (v *Viewport) Rows(i int) []Row {
	text := v.line(i)
	if i < len(v.cache) && v.cache[i].ok && v.cache[i].text == text {
		return v.cache[i].rows
	}
	rows := v.Layout.Wrap(text)
	if i >= len(v.cache) {
		if i >= cap(v.cache) {
			grown := make([]cachedRows, len(v.cache), i+64)
			copy(grown, v.cache)
			v.cache = grown
		}
		v.cache = v.cache[:i+1]
	}
	v.cache[i] = cachedRows{text: text, rows: rows, ok: true}
	return rows
}

// RowCount returns the number of wrap rows of line i.
func (v *Viewport) RowCount(i int) int {
	if v.src == nil || i < 0 || i >= v.src.LineCount() {
		return 1
	}
	return len(v.Rows(i))
}

// Locate returns the wrap row and display column of pos.
func (v *Viewport) Locate(pos buffer.Position) (row, x int) {
	return v.Layout.Locate(v.Rows(pos.Line), v.line(pos.Line), pos.Col)
}

// ColAt returns the byte offset displayed at column x of a wrap row.
func (v *Viewport) ColAt(line, row, x int) int {
	return v.Layout.ColAt(v.Rows(line), v.line(line), row, x)
}

// PageSize is the number of rows a page motion moves.
func (v *Viewport) PageSize() int {
	if v.Height <= 1 {
		return 1
	}
	return v.Height - 1
}

func (v *Viewport) prev(p ScrollPos) (ScrollPos, bool) {
	if p.Row > 0 {
		p.Row--
		return p, true
	}
	if p.Line == 0 {
		return p, false
	}
	p.Line--
	p.Row = v.RowCount(p.Line) - 1
	return p, true
}

func (v *Viewport) next(p ScrollPos) (ScrollPos, bool) {
	if p.Row+1 < v.RowCount(p.Line) {
		p.Row++
		return p, true
	}
	if p.Line+1 >= v.src.LineCount() {
		return p, false
	}
	return ScrollPos{Line: p.Line + 1}, true
}

// back moves p up n rows, stopping at the document start.
func (v *Viewport) back(p ScrollPos, n int) ScrollPos {
	for ; n > 0; n-- {
		q, ok := v.prev(p)
		if !ok {
			break
		}
		p = q
	}
	return p
}

// ahead counts the rows after p, up to limit.
func (v *Viewport) ahead(p ScrollPos, limit int) int {
	n := 0
	for n < limit {
		q, ok := v.next(p)
		if !ok {
			break
		}
		p = q
		n++
	}
	return n
}

func (v *Viewport) margin() int {
	m := v.Margin
	if m < 0 {
		m = 0
	}
	if limit := (v.Height - 1) / 2; m > limit {
		m = limit
	}
	return m
}

func (v *Viewport) cursorRow(pos buffer.Position) ScrollPos {
	row, _ := v.Locate(pos)
	return ScrollPos{Line: pos.Line, Row: row}
}

// ScrollTo moves the viewport the minimum distance that keeps pos at least
// Margin rows from either edge. Near the document end the bottom margin
// shrinks to the rows that exist.
func (v *Viewport) ScrollTo(pos buffer.Position) {
	if v.Height <= 0 || v.src == nil {
		return
	}
	cur := v.cursorRow(pos)
	m := v.margin()
	if want := v.back(cur, m); want.Before(v.Top) {
		v.Top = want
		return
	}
	below := v.ahead(cur, m)
	if limit := v.back(cur, v.Height-1-below); v.Top.Before(limit) {
		v.Top = limit
	}
}

// Center scrolls so pos sits in the middle of the viewport.
func (v *Viewport) Center(pos buffer.Position) {
	if v.Height <= 0 || v.src == nil {
		return
	}
	v.Top = v.back(v.cursorRow(pos), v.Height/2)
}

// VisibleRows returns the rows on screen, top to bottom.
func (v *Viewport) VisibleRows() []VisualRow {
	if v.Height <= 0 || v.src == nil {
		return nil
	}
	v.clampTop()
	out := make([]VisualRow, 0, v.Height)
	p := v.Top
	for len(out) < v.Height {
		rows := v.Rows(p.Line)
		out = append(out, VisualRow{Line: p.Line, Row: p.Row, First: p.Row == 0, Bounds: rows[p.Row]})
		q, ok := v.next(p)
		if !ok {
			break
		}
		p = q
	}
	return out
}

// ScreenPos returns the screen cell of pos relative to the viewport's top
// left corner. ok is false when pos is off screen. The end of a line whose
// last row is full maps to that row's last cell.
func (v *Viewport) ScreenPos(pos buffer.Position) (x, y int, ok bool) {
	if v.Height <= 0 || v.src == nil {
		return 0, 0, false
	}
	row, x := v.Locate(pos)
	x = min(x, v.Layout.width()-1)
	cur := ScrollPos{Line: pos.Line, Row: row}
	if cur.Before(v.Top) {
		return 0, 0, false
	}
	p := v.Top
	for y = 0; y < v.Height; y++ {
		if p == cur {
			return x, y, true
		}
		q, more := v.next(p)
		if !more {
			break
		}
		p = q
	}
	return 0, 0, false
}
