package app

import (
	"errors"

	"example.com/wrapedit/pkg/editor"
	"example.com/wrapedit/pkg/highlight"
	"example.com/wrapedit/pkg/layout"
	"example.com/wrapedit/pkg/render"
	"example.com/wrapedit/pkg/style"
	"github.com/rivo/uniseg"
)

// draw composes the focused buffer and paints the changed rows.
func (r *Runner) draw() {
	if r.Screen == nil {
		return
	}
	w, h := r.Screen.Size()
	f := render.Compose(r.frameInput(w, h))
	if _, err := r.renderer.Render(r.Screen, f, r.theme); err != nil && !errors.Is(err, render.ErrZeroSize) {
		r.Logger.Error("render.error", err, nil)
	}
}

// frameInput gathers everything Compose needs for a w x h screen.
func (r *Runner) frameInput(w, h int) render.Input {
	s := r.Editor.Current()
	doc := s.Doc()
	gutter := 0
	if r.LineNumbers {
		gutter = render.GutterWidth(doc.LineCount())
	}
	tw, th := max(w-gutter, 1), render.TextHeight(h)
	if v := s.View(); v.Layout.Width != tw || v.Height != th {
		s.Resize(tw, th)
	}

	rows := s.View().VisibleRows()
	in := render.Input{
		Width:          w,
		Height:         h,
		Doc:            doc,
		Layout:         s.View().Layout,
		Rows:           rows,
		Spans:          r.visibleSpans(s, rows),
		Matches:        s.Matches(),
		LineNumbers:    r.LineNumbers,
		ShowWhitespace: r.ShowWhitespace,
		Status:         r.status(s),
	}
	c := s.Cursor()
	if sel, ok := c.Selection(); ok {
		in.Selection = sel
	}
	in.CursorX, in.CursorY, in.CursorVisible = s.View().ScreenPos(c.Pos)
	in.Message = r.message(w)
	return in
}

// visibleSpans highlights the lines on screen. The cache resumes from the
// nearest earlier line it still holds.
func (r *Runner) visibleSpans(s *editor.Session, rows []layout.VisualRow) map[int][]highlight.Span {
	out := make(map[int][]highlight.Span, len(rows))
	for _, vr := range rows {
		if _, ok := out[vr.Line]; ok {
			continue
		}
		spans, err := s.Highlights().Spans(s.Doc(), vr.Line)
		if err != nil {
			r.Logger.Error("highlight.error", err, map[string]any{"line": vr.Line})
			continue
		}
		out[vr.Line] = spans
	}
	return out
}

func (r *Runner) status(s *editor.Session) render.Status {
	pos := s.Cursor().Pos
	line, _ := s.Doc().Line(pos.Line)
	st := render.Status{
		Name:     s.Name(),
		Dirty:    s.Dirty(),
		ReadOnly: s.ReadOnly,
		Line:     pos.Line + 1,
		Col:      uniseg.StringWidth(line[:min(pos.Col, len(line))]) + 1,
		Language: s.Language(),
		Format:   s.Format.Name(),
		Buffer:   r.Editor.Index() + 1,
		Buffers:  len(r.Editor.Buffers()),
	}
	if len(r.pending) > 0 {
		st.Pending = r.pending.String()
	}
	return st
}

// message returns the open prompt, else the active notice.
func (r *Runner) message(width int) *render.Message {
	if p := r.prompt; p != nil {
		m := &render.Message{Label: p.label, Text: p.input, Style: style.Message, Cursor: p.key == nil}
		if r.notice.active() && r.notice.isErr {
			// a failed submit shows its error after the input
			m.Text += "  [" + r.notice.text + "]"
			m.Cursor = false
		}
		return m
	}
	if r.notice.active() {
		return &render.Message{Text: r.notice.wrapped(width), Style: r.notice.style()}
	}
	return nil
}
