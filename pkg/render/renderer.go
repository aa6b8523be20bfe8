package render

import (
	"errors"
	"slices"

	"example.com/wrapedit/pkg/style"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// ErrZeroSize is returned when the screen has no cells to draw on.
var ErrZeroSize = errors.New("render: zero-size screen")

// Theme resolves style roles to terminal styles.
type Theme interface {
	Style(id style.ID) tcell.Style
}

// Stats describes one Render call.
type Stats struct {
	RowsPainted int
	Full        bool
}

// Renderer paints frames, skipping rows identical to the previous frame.
type Renderer struct {
	prev *Frame
	full bool
}

// NewRenderer returns a renderer whose first frame is a full repaint.
func NewRenderer() *Renderer { return &Renderer{full: true} }

// Invalidate forces the next Render to repaint every row, e.g. after a
// resize or theme change.
func (r *Renderer) Invalidate() { r.full = true }

// Render draws f onto screen.
func (r *Renderer) Render(screen tcell.Screen, f Frame, theme Theme) (Stats, error) {
	w, h := screen.Size()
	if w <= 0 || h <= 0 || f.Width <= 0 || f.Height <= 0 {
		return Stats{}, ErrZeroSize
	}
	full := r.full || r.prev == nil || r.prev.Width != f.Width || r.prev.Height != f.Height
	st := Stats{Full: full}
	if full {
		screen.Clear()
	}
	for y, runs := range f.Rows {
		if y >= h {
			break
		}
		if !full && y < len(r.prev.Rows) && slices.Equal(r.prev.Rows[y], runs) {
			continue
		}
		paintRow(screen, y, min(w, f.Width), runs, theme)
		st.RowsPainted++
	}
	if f.Cursor.Visible {
		screen.ShowCursor(f.Cursor.X, f.Cursor.Y)
	} else {
		screen.HideCursor()
	}
	if full {
		screen.Sync()
	} else {
		screen.Show()
	}
	r.prev = &f
	r.full = false
	return st, nil
}

func paintRow(screen tcell.Screen, y, width int, runs []Run, theme Theme) {
	x := 0
	for _, run := range runs {
		st := theme.Style(run.Style)
		rest := run.Text
		for rest != "" && x < width {
			var cluster string
			var cw int
			cluster, rest, cw, _ = uniseg.FirstGraphemeClusterInString(rest, -1)
			runes := []rune(cluster)
			if cw == 0 {
				// zero-width clusters get a cell of their own
				runes = append([]rune{' '}, runes...)
			}
			cw = max(cw, 1)
			if x+cw > width {
				// a wide glyph that does not fit is dropped
				for ; x < width; x++ {
					screen.SetContent(x, y, ' ', nil, st)
				}
				break
			}
			screen.SetContent(x, y, runes[0], runes[1:], st)
			x += cw
		}
	}
	fill := theme.Style(style.Default)
	for ; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, fill)
	}
}
