package app

import (
	"example.com/wrapedit/pkg/config"
	"example.com/wrapedit/pkg/cursor"
	"example.com/wrapedit/pkg/editor"
	"example.com/wrapedit/pkg/layout"
)

// commandTable maps command ids to their implementations. Ids match the
// keymap's.
func (r *Runner) commandTable() map[string]func() error {
	cur := r.Editor.Current
	move := func(m cursor.Motion, extend bool) func() error {
		return func() error {
			cur().Move(m, extend)
			return nil
		}
	}
	edit := func(fn func(*editor.Session) error) func() error {
		return func() error {
			r.clearNotice()
			return fn(cur())
		}
	}
	return map[string]func() error{
		"quit":      r.requestQuit,
		"save":      r.save,
		"save-as":   r.saveAs,
		"open":      r.openFile,
		"find":      r.find,
		"find-next": func() error { return r.findStep(true) },
		"find-prev": func() error { return r.findStep(false) },
		"goto-line": r.gotoLine,
		"undo":      r.undo,
		"redo":      r.redo,
		"cut":       edit((*editor.Session).Cut),
		"copy": func() error {
			if cur().Copy() {
				r.notify("Copied")
			}
			return nil
		},
		"paste":       edit((*editor.Session).Paste),
		"yank-pop":    r.yankPop,
		"select-all":  func() error { cur().SelectAll(); return nil },
		"delete-line": edit((*editor.Session).DeleteLine),
		"newline":     edit((*editor.Session).InsertNewline),
		"tab":         edit((*editor.Session).InsertTab),
		"backspace":   edit((*editor.Session).DeleteBackward),
		"delete":      edit((*editor.Session).DeleteForward),
		"cancel":      r.cancel,

		"move-left":         move(cursor.Left, false),
		"move-right":        move(cursor.Right, false),
		"move-up":           move(cursor.Up, false),
		"move-down":         move(cursor.Down, false),
		"word-left":         move(cursor.WordLeft, false),
		"word-right":        move(cursor.WordRight, false),
		"line-start":        move(cursor.LineStart, false),
		"line-end":          move(cursor.LineEnd, false),
		"doc-start":         move(cursor.DocStart, false),
		"doc-end":           move(cursor.DocEnd, false),
		"page-up":           move(cursor.PageUp, false),
		"page-down":         move(cursor.PageDown, false),
		"select-left":       move(cursor.Left, true),
		"select-right":      move(cursor.Right, true),
		"select-up":         move(cursor.Up, true),
		"select-down":       move(cursor.Down, true),
		"select-word-left":  move(cursor.WordLeft, true),
		"select-word-right": move(cursor.WordRight, true),
		"select-line-start": move(cursor.LineStart, true),
		"select-line-end":   move(cursor.LineEnd, true),

		"next-buffer":       func() error { r.switchBuffer(r.Editor.Next()); return nil },
		"prev-buffer":       func() error { r.switchBuffer(r.Editor.Prev()); return nil },
		"close-buffer":      r.closeBuffer,
		"cycle-theme":       func() error { r.NextTheme(); return nil },
		"prev-theme":        func() error { r.PrevTheme(); return nil },
		"toggle-whitespace": r.toggleWhitespace,
		"toggle-wrap":       r.toggleWrap,
		"set-syntax":        r.setSyntax,
		"help":              r.help,
		"suspend":           r.suspend,
	}
}

// yankPop replaces text just pasted with the previous kill ring entry.
func (r *Runner) yankPop() error {
	r.clearNotice()
	ok, err := r.Editor.Current().YankPop()
	if err == nil && !ok {
		if n := r.Editor.KillRing().Len(); n < 2 {
			r.notify("Kill ring holds %d entries", n)
		} else {
			r.notify("Yank-pop must follow a paste")
		}
	}
	return err
}

func (r *Runner) undo() error {
	ok, err := r.Editor.Current().Undo()
	if err == nil && !ok {
		r.notify("Nothing to undo")
	}
	return err
}

func (r *Runner) redo() error {
	ok, err := r.Editor.Current().Redo()
	if err == nil && !ok {
		r.notify("Nothing to redo")
	}
	return err
}

// cancel drops the selection, the active search and any notice.
func (r *Runner) cancel() error {
	s := r.Editor.Current()
	s.MoveTo(s.Cursor().Pos)
	s.ClearFind()
	r.clearNotice()
	return nil
}

func (r *Runner) switchBuffer(s *editor.Session) {
	if s == nil {
		return
	}
	r.renderer.Invalidate()
	r.notify("%s (%d/%d)", s.Name(), r.Editor.Index()+1, len(r.Editor.Buffers()))
}

// closeBuffer drops the focused buffer, asking first when it has unsaved
// changes. Closing the last buffer leaves an empty one.
func (r *Runner) closeBuffer() error {
	s := r.Editor.Current()
	drop := func() {
		r.Editor.CloseCurrent()
		if r.Editor.Current() == nil {
			r.Editor.NewBuffer()
		}
		r.switchBuffer(r.Editor.Current())
	}
	if !s.Dirty() {
		drop()
		return nil
	}
	r.openPrompt(&prompt{
		kind:  "close",
		label: s.Name() + " has unsaved changes. Close anyway? (y/n) ",
		key: func(k config.Key) bool {
			switch k.Rune {
			case 'y', 'Y':
				drop()
				return true
			case 'n', 'N':
				return true
			}
			return false
		},
	})
	return nil
}

func (r *Runner) toggleWhitespace() error {
	r.ShowWhitespace = !r.ShowWhitespace
	r.notify("Whitespace %s", onOff(r.ShowWhitespace))
	return nil
}

func (r *Runner) toggleWrap() error {
	r.Config.WordWrap = !r.Config.WordWrap
	for _, s := range r.Editor.Buffers() {
		v := s.View()
		v.Configure(layout.Layout{TabWidth: v.Layout.TabWidth, WordWrap: r.Config.WordWrap})
		v.ScrollTo(s.Cursor().Pos)
	}
	r.notify("Word wrap %s", onOff(r.Config.WordWrap))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
