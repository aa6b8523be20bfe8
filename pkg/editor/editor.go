// Package editor holds the open buffers of an editing session and the
// transactional commands that mutate them.
package editor

import (
	"errors"
	"fmt"
	"os"
	"time"

	"example.com/wrapedit/pkg/buffer"
	"example.com/wrapedit/pkg/history"
	"example.com/wrapedit/pkg/logs"
	"example.com/wrapedit/pkg/plugins"
)

// Options configures every session an Editor opens.
type Options struct {
	Width, Height int
	TabWidth      int
	WordWrap      bool
	// Margin is the scroll margin in rows; negative keeps the default.
	Margin       int
	UndoCapacity int
	// GroupWindow bounds keystroke merging; negative disables it and zero
	// keeps the default.
	GroupWindow  time.Duration
	ReadOnly     bool
	Highlighters *plugins.Manager
	Clipboard    Clipboard
	Logger       *logs.Logger
}

// QuitDecision is the answer to a quit request.
type QuitDecision int

const (
	QuitAllowed QuitDecision = iota
	QuitBlockedUnsaved
)

func (q QuitDecision) String() string {
	if q == QuitAllowed {
		return "allowed"
	}
	return "blocked-unsaved"
}

// Editor manages multiple buffers and the focused buffer index.
type Editor struct {
	opts     Options
	sessions []*Session
	current  int
	kill     history.KillRing
}

// New creates an Editor with no buffers.
func New(opts Options) *Editor {
	return &Editor{opts: opts}
}

// Options returns the options new sessions are created with.
func (e *Editor) Options() Options { return e.opts }

func (e *Editor) add(s *Session) *Session {
	e.sessions = append(e.sessions, s)
	e.current = len(e.sessions) - 1
	return s
}

// NewBuffer adds an empty, unnamed buffer and focuses it.
func (e *Editor) NewBuffer() *Session {
	return e.add(newSession("", buffer.New(), buffer.DefaultFormat, &e.opts, &e.kill))
}

// OpenScratch shows text in a read-only buffer without a file. A scratch
// buffer already open under name is focused instead.
func (e *Editor) OpenScratch(name, text string) *Session {
	for i, s := range e.sessions {
		if s.Path == "" && s.title == name {
			e.current = i
			return s
		}
	}
	s := e.add(newSession("", buffer.FromString(text), buffer.DefaultFormat, &e.opts, &e.kill))
	s.title = name
	s.ReadOnly = true
	return s
}

// Open reads path into a new buffer and focuses it. A missing file opens an
// empty buffer that will be created on save. Invalid UTF-8 yields
// buffer.ErrDecode and read failures ErrIO; no buffer is added then.
func (e *Editor) Open(path string) (*Session, error) {
	log := e.opts.Logger
	log.Event("open.attempt", map[string]any{"file": path})
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Event("open.new", map[string]any{"file": path})
		return e.add(newSession(path, buffer.New(), buffer.DefaultFormat, &e.opts, &e.kill)), nil
	case err != nil:
		log.Error("open.error", err, map[string]any{"file": path})
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	doc, format, err := buffer.Decode(data)
	if err != nil {
		log.Error("open.error", err, map[string]any{"file": path})
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s := e.add(newSession(path, doc, format, &e.opts, &e.kill))
	log.Event("open.success", map[string]any{
		"file":   path,
		"bytes":  len(data),
		"lines":  doc.LineCount(),
		"format": format.Name(),
		"syntax": s.Language(),
	})
	return s, nil
}

// Current returns the focused buffer, or nil when there is none.
func (e *Editor) Current() *Session {
	if e.current >= 0 && e.current < len(e.sessions) {
		return e.sessions[e.current]
	}
	return nil
}

// Buffers returns every open buffer in order.
func (e *Editor) Buffers() []*Session { return e.sessions }

// Index returns the position of the focused buffer.
func (e *Editor) Index() int { return e.current }

// Next advances focus to the next buffer and returns it.
func (e *Editor) Next() *Session {
	if len(e.sessions) == 0 {
		return nil
	}
	e.current = (e.current + 1) % len(e.sessions)
	return e.sessions[e.current]
}

// Prev moves focus to the previous buffer and returns it.
func (e *Editor) Prev() *Session {
	if len(e.sessions) == 0 {
		return nil
	}
	e.current = (e.current - 1 + len(e.sessions)) % len(e.sessions)
	return e.sessions[e.current]
}

// CloseCurrent drops the focused buffer regardless of unsaved changes and
// focuses its predecessor.
func (e *Editor) CloseCurrent() {
	if len(e.sessions) == 0 {
		return
	}
	e.sessions = append(e.sessions[:e.current], e.sessions[e.current+1:]...)
	if e.current > 0 {
		e.current--
	}
}

// Resize applies new screen dimensions to every buffer.
func (e *Editor) Resize(width, height int) {
	e.opts.Width, e.opts.Height = width, height
	for _, s := range e.sessions {
		s.Resize(width, height)
	}
}

// Unsaved returns the buffers with unsaved changes.
func (e *Editor) Unsaved() []*Session {
	var out []*Session
	for _, s := range e.sessions {
		if s.Dirty() {
			out = append(out, s)
		}
	}
	return out
}

// RequestQuit reports whether the editor may exit without losing work.
func (e *Editor) RequestQuit() QuitDecision {
	if len(e.Unsaved()) > 0 {
		return QuitBlockedUnsaved
	}
	return QuitAllowed
}

// KillRing exposes the kill ring shared by every buffer.
func (e *Editor) KillRing() *history.KillRing { return &e.kill }
