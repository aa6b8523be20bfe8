// Package layout maps document lines onto screen rows.
//
// A line is soft-wrapped into one or more rows of at most Width cells. Rows
// break between grapheme clusters, never inside one, and an empty line still
// occupies a row. Tabs expand to the next tab stop within their row.
package layout

import (
	"unicode/utf8"

	"example.com/wrapedit/pkg/buffer"
)

// DefaultTabWidth is the tab stop distance used when none is configured.
const DefaultTabWidth = 4

// Row is one wrap row of a line: the byte range [Start, End) and its width.
type Row struct {
	Start int
	End   int
	Width int
}

// Layout holds the wrap parameters.
type Layout struct {
	Width    int
	TabWidth int
	// WordWrap breaks rows after the last whitespace when one fits.
	WordWrap bool
}

func (l Layout) width() int {
	if l.Width < 1 {
		return 1
	}
	return l.Width
}

func (l Layout) tabWidth() int {
	if l.TabWidth < 1 {
		return DefaultTabWidth
	}
	return l.TabWidth
}

// IsControl reports whether the cluster is a control character drawn in
// caret notation.
func IsControl(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	return r != '\t' && (r < 0x20 || r == 0x7f)
}

// ClusterWidth returns the cells a cluster occupies when it starts at
// column x of a row. The result never exceeds the row width.
func (l Layout) ClusterWidth(cluster string, x int) int {
	width := l.width()
	var w int
	switch {
	case cluster == "\t":
		tw := l.tabWidth()
		w = tw - x%tw
		if rem := width - x; rem > 0 && w > rem {
			w = rem
		}
	case IsControl(cluster):
		w = 2
	default:
		w = buffer.GraphemeWidth(cluster)
		if w < 1 {
			w = 1
		}
	}
	if w > width {
		w = width
	}
	return w
}

// Wrap splits line into rows.
func (l Layout) Wrap(line string) []Row {
	width := l.width()
	gs := buffer.Graphemes(line)
	rows := make([]Row, 0, 1)
	row := Row{}
	breakAt, breakWidth := -1, 0
	for i := 0; i < len(gs); {
		g := gs[i]
		w := l.ClusterWidth(g.Text, row.Width)
		if row.Width > 0 && row.Width+w > width {
			if l.WordWrap && breakAt > 0 && gs[breakAt].Start > row.Start {
				row.End = gs[breakAt].Start
				row.Width = breakWidth
				i = breakAt
			} else {
				row.End = g.Start
			}
			rows = append(rows, row)
			row = Row{Start: row.End, End: row.End}
			breakAt = -1
			continue
		}
		row.Width += w
		row.End = g.End
		i++
		if l.WordWrap && buffer.ClassOf(g.Text) == buffer.ClassSpace && i < len(gs) {
			breakAt, breakWidth = i, row.Width
		}
	}
	return append(rows, row)
}

// Locate returns the row holding col and the display column of col within
// it. A column on a row boundary belongs to the later row.
func (l Layout) Locate(rows []Row, line string, col int) (row, x int) {
	row = len(rows) - 1
	for i, r := range rows {
		if col < r.End {
			row = i
			break
		}
	}
	r := rows[row]
	for off := r.Start; off < col && off < r.End; {
		next := buffer.NextGrapheme(line, off)
		x += l.ClusterWidth(line[off:next], x)
		off = next
	}
	return row, x
}

// ColAt returns the byte offset in line of the cluster displayed at column
// x of the given row. Columns past the row's end clamp to its last
// position; on a non-final row that is the start of its last cluster.
func (l Layout) ColAt(rows []Row, line string, row, x int) int {
	if row < 0 {
		row = 0
	}
	if row >= len(rows) {
		row = len(rows) - 1
	}
	r := rows[row]
	cx := 0
	for off := r.Start; off < r.End; {
		next := buffer.NextGrapheme(line, off)
		w := l.ClusterWidth(line[off:next], cx)
		if cx+w > x {
			return off
		}
		cx += w
		off = next
	}
	if row == len(rows)-1 || r.End == r.Start {
		return r.End
	}
	return buffer.PrevGrapheme(line, r.End)
}
