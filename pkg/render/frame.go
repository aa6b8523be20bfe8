// Package render turns editor state into frames of styled text and paints
// them onto a tcell screen, redrawing only the rows that changed.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"example.com/wrapedit/pkg/buffer"
	"example.com/wrapedit/pkg/highlight"
	"example.com/wrapedit/pkg/layout"
	"example.com/wrapedit/pkg/search"
	"example.com/wrapedit/pkg/style"
	"github.com/mattn/go-runewidth"
)

// Run is a stretch of printable text in one style.
type Run struct {
	Text  string
	Style style.ID
}

// Cursor is the terminal cursor position within a frame.
type Cursor struct {
	X, Y    int
	Visible bool
}

// Frame is a full screen of styled rows.
type Frame struct {
	Width, Height int
	Rows          [][]Run
	Cursor        Cursor
}

// Status feeds the status line.
type Status struct {
	Name     string
	Dirty    bool
	ReadOnly bool
	Line     int // 1-based
	Col      int // 1-based display column
	Language string
	Format   string
	Buffer   int // 1-based
	Buffers  int
	Pending  string
}

// Message is the mini-buffer shown above the status line. Text may span
// several lines.
type Message struct {
	Label string
	Text  string
	Style style.ID
	// Cursor places the terminal cursor after Text.
	Cursor bool
}

// Lines is the read side of a document.
type Lines interface {
	LineCount() int
	Line(i int) (string, error)
}

// Input is everything Compose reads. Rows and Spans come from the
// viewport and highlight cache of the active buffer.
type Input struct {
	Width, Height int
	Doc           Lines
	Layout        layout.Layout
	Rows          []layout.VisualRow
	Spans         map[int][]highlight.Span
	Selection     buffer.Span
	Matches       []buffer.Span
	// CursorX and CursorY are relative to the text area.
	CursorX, CursorY int
	CursorVisible    bool
	LineNumbers      bool
	ShowWhitespace   bool
	Status           Status
	Message          *Message
}

const (
	tabMarker   = "→"
	spaceMarker = "·"
	placeholder = "?"
)

// GutterWidth is the width of the line number column for a document of n
// lines, including one separating space.
func GutterWidth(n int) int {
	return len(strconv.Itoa(max(n, 1))) + 1
}

// TextHeight is the number of rows available to text on a screen h rows
// tall.
func TextHeight(h int) int { return max(h-1, 0) }

// Compose builds the frame for in. It has no side effects: the same input
// always yields an identical frame.
func Compose(in Input) Frame {
	f := Frame{Width: in.Width, Height: in.Height}
	if in.Width <= 0 || in.Height <= 0 {
		return f
	}
	f.Rows = make([][]Run, in.Height)
	textH := TextHeight(in.Height)
	gutter := 0
	if in.LineNumbers && in.Doc != nil {
		gutter = GutterWidth(in.Doc.LineCount())
	}
	for y := 0; y < textH; y++ {
		var vr *layout.VisualRow
		if y < len(in.Rows) {
			vr = &in.Rows[y]
		}
		f.Rows[y] = composeTextRow(in, vr, gutter)
	}
	if in.CursorVisible && in.CursorY >= 0 && in.CursorY < textH {
		f.Cursor = Cursor{X: min(in.CursorX+gutter, in.Width-1), Y: in.CursorY, Visible: true}
	}
	if m := in.Message; m != nil && in.Height >= 2 {
		lines := strings.Split(m.Text, "\n")
		// messages grow upward from the status line, at most half the text area
		if limit := max(textH/2, 1); len(lines) > limit {
			lines = lines[len(lines)-limit:]
		}
		top := in.Height - 1 - len(lines)
		for i, text := range lines {
			label := ""
			if i == 0 {
				label = m.Label
			}
			f.Rows[top+i] = composeMessage(label, text, m, in.Width)
		}
		if m.Cursor {
			last := lines[len(lines)-1]
			x := runewidth.StringWidth(last)
			if len(lines) == 1 {
				x += runewidth.StringWidth(m.Label)
			}
			f.Cursor = Cursor{X: min(x, in.Width-1), Y: in.Height - 2, Visible: true}
		}
	}
	f.Rows[in.Height-1] = composeStatus(in.Status, in.Width)
	return f
}

// appendRun adds text to runs, merging with the previous run when the
// style matches.
func appendRun(runs []Run, text string, id style.ID) []Run {
	if text == "" {
		return runs
	}
	if n := len(runs); n > 0 && runs[n-1].Style == id {
		runs[n-1].Text += text
		return runs
	}
	return append(runs, Run{Text: text, Style: id})
}

func composeTextRow(in Input, vr *layout.VisualRow, gutter int) []Run {
	var runs []Run
	if vr == nil {
		if gutter > 0 {
			runs = appendRun(runs, fmt.Sprintf("%*s ", gutter-1, "~"), style.Gutter)
		} else {
			runs = appendRun(runs, "~", style.Gutter)
		}
		return runs
	}
	if gutter > 0 {
		label := ""
		if vr.First {
			label = strconv.Itoa(vr.Line + 1)
		}
		runs = appendRun(runs, fmt.Sprintf("%*s ", gutter-1, label), style.Gutter)
	}
	line, err := in.Doc.Line(vr.Line)
	if err != nil {
		return runs
	}
	styles := highlight.Styles(in.Spans[vr.Line], len(line))
	lay := in.Layout
	lay.Width = max(in.Width-gutter, 1)
	hits := search.OnLine(in.Matches, vr.Line)
	x := 0
	// substituted text stands alone so the painter segments it as laid out
	sealed := false
	for off := vr.Bounds.Start; off < vr.Bounds.End; {
		next := buffer.NextGrapheme(line, off)
		cluster := line[off:next]
		w := lay.ClusterWidth(cluster, x)
		id := styles[off]
		pos := buffer.Position{Line: vr.Line, Col: off}
		overlay := overlayAt(in, pos, hits)
		text := cluster
		switch {
		case cluster == "\t":
			if in.ShowWhitespace {
				text = tabMarker + strings.Repeat(" ", w-1)
				if overlay == style.Default {
					overlay = style.Whitespace
				}
			} else {
				text = strings.Repeat(" ", w)
			}
		case layout.IsControl(cluster):
			text = caret(cluster)
		case cluster == " " && in.ShowWhitespace:
			text = spaceMarker
			if overlay == style.Default {
				overlay = style.Whitespace
			}
		case w < buffer.GraphemeWidth(cluster):
			text = strings.Repeat(placeholder, w)
			id = style.Placeholder
		}
		if overlay != style.Default {
			id = overlay
		}
		replaced := text != cluster
		if replaced || sealed {
			runs = append(runs, Run{Text: text, Style: id})
		} else {
			runs = appendRun(runs, text, id)
		}
		sealed = replaced
		x += w
		off = next
	}
	// a selected line break shows as one selected cell
	if vr.Bounds.End == len(line) && x < lay.Width && vr.Line+1 < in.Doc.LineCount() {
		eol := buffer.Position{Line: vr.Line, Col: len(line)}
		if !in.Selection.Empty() && !eol.Less(in.Selection.Start) && eol.Less(in.Selection.End) {
			runs = appendRun(runs, " ", style.Selection)
		}
	}
	return runs
}

// overlayAt returns the selection or match role covering pos, or Default.
// hits are the matches on pos.Line.
func overlayAt(in Input, pos buffer.Position, hits []search.Range) style.ID {
	if !in.Selection.Empty() && in.Selection.Contains(pos) {
		return style.Selection
	}
	for _, h := range hits {
		if h.Start > pos.Col {
			break
		}
		if pos.Col < h.End {
			return style.Match
		}
	}
	return style.Default
}

// caret renders a control character as ^X.
func caret(cluster string) string {
	r, _ := utf8.DecodeRuneInString(cluster)
	if r == 0x7f {
		return "^?"
	}
	return "^" + string(r+'@')
}

func composeMessage(label, text string, m *Message, width int) []Run {
	var runs []Run
	label = runewidth.Truncate(label, width, "")
	runs = appendRun(runs, label, style.Prompt)
	rest := width - runewidth.StringWidth(label)
	if rest > 0 {
		if m.Cursor && runewidth.StringWidth(text) >= rest {
			// keep the end of the input visible
			text = truncateLeft(text, rest-1)
		}
		runs = appendRun(runs, runewidth.Truncate(text, rest, "…"), m.Style)
	}
	return runs
}

func truncateLeft(s string, width int) string {
	for runewidth.StringWidth(s) > width && s != "" {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	return s
}

func composeStatus(st Status, width int) []Run {
	left := " " + st.Name
	flags := ""
	if st.Dirty {
		flags += " [+]"
	}
	if st.ReadOnly {
		flags += " [RO]"
	}
	right := fmt.Sprintf("%d:%d ", st.Line, st.Col)
	if st.Format != "" {
		right = st.Format + "  " + right
	}
	if st.Language != "" {
		right = st.Language + "  " + right
	}
	if st.Buffers > 1 {
		right = fmt.Sprintf("%d/%d  ", st.Buffer, st.Buffers) + right
	}
	if st.Pending != "" {
		right = st.Pending + "-  " + right
	}
	rw := runewidth.StringWidth(right)
	if rw >= width {
		right = truncateLeft(right, width)
		rw = runewidth.StringWidth(right)
	}
	avail := width - rw
	flags = runewidth.Truncate(flags, avail, "")
	left = runewidth.Truncate(left, avail-runewidth.StringWidth(flags), "…")
	pad := avail - runewidth.StringWidth(left) - runewidth.StringWidth(flags)

	var runs []Run
	runs = appendRun(runs, left, style.Status)
	runs = appendRun(runs, flags, style.StatusDirty)
	runs = appendRun(runs, strings.Repeat(" ", max(pad, 0))+right, style.Status)
	return runs
}
