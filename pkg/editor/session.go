package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"example.com/wrapedit/pkg/buffer"
	"example.com/wrapedit/pkg/cursor"
	"example.com/wrapedit/pkg/highlight"
	"example.com/wrapedit/pkg/history"
	"example.com/wrapedit/pkg/layout"
	"example.com/wrapedit/pkg/logs"
	"example.com/wrapedit/pkg/search"
	"github.com/dustin/go-humanize"
)

var (
	// ErrIO wraps failures reading or writing files. The document is left
	// untouched.
	ErrIO = errors.New("i/o error")
	// ErrReadOnly rejects edits on read-only buffers.
	ErrReadOnly = errors.New("buffer is read-only")
	// ErrNoPath is returned when saving a buffer that has no file name.
	ErrNoPath = errors.New("no file name")
)

// Session is one open buffer: its document, cursor, history, highlight
// cache and viewport. All mutation goes through Session methods so the
// caches stay consistent with the text.
type Session struct {
	Path     string
	Format   buffer.Format
	ReadOnly bool

	doc   *buffer.Document
	cur   cursor.Cursor
	hist  *history.History
	hl    *highlight.Cache
	view  *layout.Viewport
	kill  *history.KillRing
	clip  Clipboard
	log   *logs.Logger
	saved uint64

	query         string
	caseSensitive bool
	matches       []buffer.Span

	written int
	// title names a buffer that has no file.
	title string
	// yanked covers the text inserted by the last Paste or YankPop while no
	// other edit or motion has happened since.
	yanked *buffer.Span
}

func newSession(path string, doc *buffer.Document, f buffer.Format, opts *Options, kill *history.KillRing) *Session {
	s := &Session{
		Path:     path,
		Format:   f,
		ReadOnly: opts.ReadOnly,
		doc:      doc,
		hist:     history.New(opts.UndoCapacity),
		view:     layout.NewViewport(doc, opts.Width, opts.Height),
		kill:     kill,
		clip:     opts.Clipboard,
		log:      opts.Logger,
	}
	if opts.GroupWindow != 0 {
		s.hist.GroupWindow = max(opts.GroupWindow, 0)
	}
	s.view.Configure(layout.Layout{TabWidth: opts.TabWidth, WordWrap: opts.WordWrap})
	if opts.Margin >= 0 {
		s.view.Margin = opts.Margin
	}
	var h highlight.Highlighter
	if opts.Highlighters != nil {
		h = opts.Highlighters.ForPath(path)
	}
	s.hl = highlight.NewCache(h)
	return s
}

// Doc returns the document. Callers must not mutate it directly.
func (s *Session) Doc() *buffer.Document { return s.doc }

// Cursor returns a copy of the cursor.
func (s *Session) Cursor() cursor.Cursor { return s.cur }

// History returns the undo ledger.
func (s *Session) History() *history.History { return s.hist }

// Highlights returns the highlight cache.
func (s *Session) Highlights() *highlight.Cache { return s.hl }

// View returns the viewport.
func (s *Session) View() *layout.Viewport { return s.view }

// Dirty reports whether the document differs from the last save.
func (s *Session) Dirty() bool { return s.hist.StateID() != s.saved }

// Name is the base name of the file, the scratch title, or "[No Name]".
func (s *Session) Name() string {
	if s.Path == "" {
		if s.title != "" {
			return s.title
		}
		return "[No Name]"
	}
	return filepath.Base(s.Path)
}

// Language names the active highlighter.
func (s *Session) Language() string {
	if h := s.hl.Highlighter(); h != nil {
		return h.Name()
	}
	return "plain"
}

// SetHighlighter swaps the highlighter and drops the cache.
func (s *Session) SetHighlighter(h highlight.Highlighter) { s.hl.SetHighlighter(h) }

// Resize changes the viewport dimensions and keeps the cursor visible.
func (s *Session) Resize(width, height int) {
	s.view.Resize(width, height)
	s.view.ScrollTo(s.cur.Pos)
}

// applier applies ops without recording them; undo, redo and rollback use it.
type applier struct{ s *Session }

func (a applier) Apply(op buffer.EditOp) (buffer.Change, error) {
	ch, err := a.s.doc.Apply(op)
	if err != nil {
		return ch, err
	}
	a.s.changed(ch)
	return ch, nil
}

// changed drops every cache that covers the edited lines.
func (s *Session) changed(ch buffer.Change) {
	s.hl.InvalidateFrom(ch.FirstLine)
	s.view.Invalidate(ch.FirstLine)
	if s.query != "" {
		s.matches = search.Refresh(s.doc, s.matches, s.query, s.caseSensitive,
			ch.FirstLine, ch.LastLine-ch.Delta, ch.LastLine)
	}
}

// edit runs fn as one transaction. When fn fails every op it applied is
// rolled back and the cursor restored.
func (s *Session) edit(fn func() error) error {
	if s.ReadOnly {
		return ErrReadOnly
	}
	s.yanked = nil
	before := s.cur
	s.hist.Begin(before.Pos)
	if err := fn(); err != nil {
		if rerr := s.hist.Abort(applier{s}); rerr != nil {
			err = errors.Join(err, rerr)
		}
		s.cur = before
		s.cur.Clamp(s.doc)
		return err
	}
	s.hist.Commit(s.cur.Pos)
	s.view.ScrollTo(s.cur.Pos)
	return nil
}

func (s *Session) insert(pos buffer.Position, text string) (buffer.Change, error) {
	ch, err := s.doc.Insert(pos, text)
	if err != nil {
		return ch, err
	}
	s.hist.Record(ch.Op)
	s.changed(ch)
	return ch, nil
}

func (s *Session) delete(span buffer.Span) (buffer.Change, error) {
	ch, err := s.doc.Delete(span)
	if err != nil {
		return ch, err
	}
	s.hist.Record(ch.Op)
	s.changed(ch)
	return ch, nil
}

// deleteSelected removes the selection if there is one and reports whether
// it did.
func (s *Session) deleteSelected() (bool, error) {
	span, ok := s.cur.Selection()
	if !ok {
		s.cur.ClearSelection()
		return false, nil
	}
	if _, err := s.delete(span); err != nil {
		return false, err
	}
	s.cur.SetPos(span.Start)
	return true, nil
}

// InsertText inserts text at the cursor, replacing the selection.
func (s *Session) InsertText(text string) error {
	return s.edit(func() error {
		if _, err := s.deleteSelected(); err != nil {
			return err
		}
		if text == "" {
			return nil
		}
		ch, err := s.insert(s.cur.Pos, text)
		if err != nil {
			return err
		}
		s.cur.SetPos(ch.Op.Span.End)
		return nil
	})
}

// InsertChar inserts a single rune.
func (s *Session) InsertChar(r rune) error { return s.InsertText(string(r)) }

// InsertTab inserts a tab character.
func (s *Session) InsertTab() error { return s.InsertText("\t") }

// InsertNewline splits the line at the cursor and copies the leading
// whitespace of the current line onto the new one.
func (s *Session) InsertNewline() error {
	return s.edit(func() error {
		if _, err := s.deleteSelected(); err != nil {
			return err
		}
		line, err := s.doc.Line(s.cur.Pos.Line)
		if err != nil {
			return err
		}
		indent := leadingSpace(line[:s.cur.Pos.Col])
		ch, err := s.insert(s.cur.Pos, "\n"+indent)
		if err != nil {
			return err
		}
		s.cur.SetPos(ch.Op.Span.End)
		return nil
	})
}

func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// DeleteBackward removes the selection or the grapheme cluster before the
// cursor, joining lines at column zero.
func (s *Session) DeleteBackward() error {
	return s.edit(func() error {
		if done, err := s.deleteSelected(); done || err != nil {
			return err
		}
		pos := s.cur.Pos
		var from buffer.Position
		switch {
		case pos.Col > 0:
			line, err := s.doc.Line(pos.Line)
			if err != nil {
				return err
			}
			from = buffer.Position{Line: pos.Line, Col: buffer.PrevGrapheme(line, pos.Col)}
		case pos.Line > 0:
			n, err := s.doc.LineLen(pos.Line - 1)
			if err != nil {
				return err
			}
			from = buffer.Position{Line: pos.Line - 1, Col: n}
		default:
			return nil
		}
		if _, err := s.delete(buffer.Span{Start: from, End: pos}); err != nil {
			return err
		}
		s.cur.SetPos(from)
		return nil
	})
}

// DeleteForward removes the selection or the grapheme cluster after the
// cursor, joining the next line at end of line.
func (s *Session) DeleteForward() error {
	return s.edit(func() error {
		if done, err := s.deleteSelected(); done || err != nil {
			return err
		}
		pos := s.cur.Pos
		line, err := s.doc.Line(pos.Line)
		if err != nil {
			return err
		}
		var to buffer.Position
		switch {
		case pos.Col < len(line):
			to = buffer.Position{Line: pos.Line, Col: buffer.NextGrapheme(line, pos.Col)}
		case pos.Line+1 < s.doc.LineCount():
			to = buffer.Position{Line: pos.Line + 1}
		default:
			return nil
		}
		_, err = s.delete(buffer.Span{Start: pos, End: to})
		return err
	})
}

// DeleteSelection removes the selected text. Without a selection it does
// nothing.
func (s *Session) DeleteSelection() error {
	return s.edit(func() error {
		_, err := s.deleteSelected()
		return err
	})
}

// DeleteLine removes the cursor's line and pushes it onto the kill ring.
func (s *Session) DeleteLine() error {
	return s.edit(func() error {
		s.cur.ClearSelection()
		l := s.cur.Pos.Line
		n, err := s.doc.LineLen(l)
		if err != nil {
			return err
		}
		span := buffer.Span{Start: buffer.Position{Line: l}, End: buffer.Position{Line: l, Col: n}}
		switch {
		case l+1 < s.doc.LineCount():
			span.End = buffer.Position{Line: l + 1}
		case l > 0:
			prev, err := s.doc.LineLen(l - 1)
			if err != nil {
				return err
			}
			span.Start = buffer.Position{Line: l - 1, Col: prev}
		}
		ch, err := s.delete(span)
		if err != nil {
			return err
		}
		s.killText(ch.Op.Text)
		s.cur.SetPos(s.doc.ClampPosition(buffer.Position{Line: min(l, s.doc.LineCount()-1)}))
		return nil
	})
}

// SelectedText returns the selected text, or "" without a selection.
func (s *Session) SelectedText() string {
	span, ok := s.cur.Selection()
	if !ok {
		return ""
	}
	text, err := s.doc.Slice(span)
	if err != nil {
		return ""
	}
	return text
}

// killText pushes text onto the kill ring and the system clipboard so the
// next paste sees it whichever source it reads.
func (s *Session) killText(text string) {
	if text == "" {
		return
	}
	s.kill.Push(text)
	if s.clip != nil {
		if err := s.clip.WriteAll(text); err != nil {
			s.log.Debug("clipboard.write", map[string]any{"error": err.Error()})
		}
	}
}

// Copy pushes the selection onto the kill ring and the system clipboard.
// It reports whether anything was copied.
func (s *Session) Copy() bool {
	text := s.SelectedText()
	if text == "" {
		return false
	}
	s.killText(text)
	return true
}

// Cut copies and then deletes the selection.
func (s *Session) Cut() error {
	if s.ReadOnly {
		return ErrReadOnly
	}
	if !s.Copy() {
		return nil
	}
	return s.DeleteSelection()
}

// Paste inserts the system clipboard contents, falling back to the newest
// kill ring entry when the clipboard is unavailable or empty. A paste is
// its own undo step.
func (s *Session) Paste() error {
	text := ""
	if s.clip != nil {
		if t, err := s.clip.ReadAll(); err == nil {
			text = t
		}
	}
	if text == "" {
		text = s.kill.Current()
	}
	if text == "" {
		return nil
	}
	s.hist.Seal()
	defer s.hist.Seal()
	var start buffer.Position
	err := s.edit(func() error {
		if _, err := s.deleteSelected(); err != nil {
			return err
		}
		start = s.cur.Pos
		ch, err := s.insert(start, strings.ReplaceAll(text, "\r\n", "\n"))
		if err != nil {
			return err
		}
		s.cur.SetPos(ch.Op.Span.End)
		return nil
	})
	if err == nil {
		s.yanked = &buffer.Span{Start: start, End: s.cur.Pos}
	}
	return err
}

// YankPop replaces the text inserted by the last Paste or YankPop with the
// next older kill ring entry. It reports false when the previous command
// was not a paste or the ring has nothing else to offer.
func (s *Session) YankPop() (bool, error) {
	prev := s.yanked
	if prev == nil || s.kill.Len() < 2 {
		return false, nil
	}
	if s.ReadOnly {
		return false, ErrReadOnly
	}
	s.kill.Rotate()
	text := s.kill.Current()
	s.hist.Seal()
	defer s.hist.Seal()
	err := s.edit(func() error {
		if _, err := s.delete(*prev); err != nil {
			return err
		}
		ch, err := s.insert(prev.Start, text)
		if err != nil {
			return err
		}
		s.cur.SetPos(ch.Op.Span.End)
		return nil
	})
	if err != nil {
		return false, err
	}
	s.yanked = &buffer.Span{Start: prev.Start, End: s.cur.Pos}
	return true, nil
}

// Move applies a cursor motion and keeps the cursor visible. Motions end
// the current typing group.
func (s *Session) Move(m cursor.Motion, extend bool) {
	s.hist.Seal()
	s.yanked = nil
	s.cur.Move(s.doc, s.view, m, extend)
	s.view.ScrollTo(s.cur.Pos)
}

// MoveTo places the cursor at pos, clamped to the document.
func (s *Session) MoveTo(pos buffer.Position) {
	s.hist.Seal()
	s.yanked = nil
	s.cur.SetPos(s.doc.ClampPosition(pos))
	s.view.ScrollTo(s.cur.Pos)
}

// SelectAll selects the whole document.
func (s *Session) SelectAll() {
	s.hist.Seal()
	s.yanked = nil
	s.cur.SelectAll(s.doc)
	s.view.ScrollTo(s.cur.Pos)
}

// Undo reverts the last transaction. It reports whether anything changed.
func (s *Session) Undo() (bool, error) {
	if s.ReadOnly {
		return false, ErrReadOnly
	}
	s.yanked = nil
	t, _, err := s.hist.Undo(applier{s})
	if err != nil || t == nil {
		return false, err
	}
	s.cur.SetPos(s.doc.ClampPosition(t.Before))
	s.view.ScrollTo(s.cur.Pos)
	return true, nil
}

// Redo reapplies the last undone transaction.
func (s *Session) Redo() (bool, error) {
	if s.ReadOnly {
		return false, ErrReadOnly
	}
	s.yanked = nil
	t, _, err := s.hist.Redo(applier{s})
	if err != nil || t == nil {
		return false, err
	}
	s.cur.SetPos(s.doc.ClampPosition(t.After))
	s.view.ScrollTo(s.cur.Pos)
	return true, nil
}

// Save writes the document to Path in its original format.
func (s *Session) Save() error {
	if s.Path == "" {
		return ErrNoPath
	}
	data := buffer.Encode(s.doc, s.Format)
	perm := os.FileMode(0o644)
	if fi, err := os.Stat(s.Path); err == nil {
		perm = fi.Mode().Perm()
	}
	if err := os.WriteFile(s.Path, data, perm); err != nil {
		s.log.Error("save.error", err, map[string]any{"file": s.Path})
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	s.saved = s.hist.StateID()
	s.hist.Seal()
	s.written = len(data)
	s.log.Event("save.success", map[string]any{"file": s.Path, "bytes": len(data)})
	return nil
}

// SaveAs writes the document to path and adopts it as the buffer's file.
// On failure the previous path is kept.
func (s *Session) SaveAs(path string) error {
	if path == "" {
		return ErrNoPath
	}
	old := s.Path
	s.Path = path
	if err := s.Save(); err != nil {
		s.Path = old
		return err
	}
	return nil
}

// SavedNotice describes the last successful save.
func (s *Session) SavedNotice() string {
	return fmt.Sprintf("Wrote %s (%s)", s.Name(), humanize.Bytes(uint64(s.written)))
}

// Find searches for query and selects the first match after the cursor,
// centering the view on it. It returns the number of matches.
func (s *Session) Find(query string, caseSensitive bool) int {
	s.query, s.caseSensitive = query, caseSensitive
	s.matches = search.Find(s.doc, query, caseSensitive)
	if len(s.matches) == 0 {
		return 0
	}
	from := s.matchAnchor()
	// a match starting at the cursor counts
	first := 0
	for i, m := range s.matches {
		if !m.Start.Less(from) {
			first = i
			break
		}
	}
	s.jump(first)
	return len(s.matches)
}

// FindNext selects the next match, wrapping at the end of the document.
func (s *Session) FindNext() bool {
	return s.jump(search.Next(s.matches, s.matchAnchor()))
}

// FindPrev selects the previous match, wrapping at the start.
func (s *Session) FindPrev() bool {
	return s.jump(search.Prev(s.matches, s.matchAnchor()))
}

func (s *Session) matchAnchor() buffer.Position {
	if span, ok := s.cur.Selection(); ok {
		return span.Start
	}
	return s.cur.Pos
}

func (s *Session) jump(i int) bool {
	if i < 0 || i >= len(s.matches) {
		return false
	}
	m := s.matches[i]
	s.hist.Seal()
	s.cur.Select(m.Start, m.End)
	s.view.Center(m.End)
	return true
}

// Query returns the active search query.
func (s *Session) Query() string { return s.query }

// Matches returns the spans of the active search.
func (s *Session) Matches() []buffer.Span { return s.matches }

// ClearFind drops the active search.
func (s *Session) ClearFind() {
	s.query = ""
	s.matches = nil
}

// GotoLine moves to the start of 1-based line n, clamped to the document,
// and centers the view on it.
func (s *Session) GotoLine(n int) {
	l := min(max(n-1, 0), s.doc.LineCount()-1)
	s.hist.Seal()
	s.cur.SetPos(buffer.Position{Line: l})
	s.view.Center(s.cur.Pos)
}
