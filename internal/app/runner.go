package app

import (
	"context"
	"time"

	"example.com/wrapedit/pkg/config"
	"example.com/wrapedit/pkg/editor"
	"example.com/wrapedit/pkg/logs"
	"example.com/wrapedit/pkg/render"
	"github.com/gdamore/tcell/v2"
)

// Runner owns the terminal lifecycle and the event loop. Only the loop
// goroutine touches editor state; a pump goroutine forwards screen events.
type Runner struct {
	Screen tcell.Screen
	Editor *editor.Editor
	Config *config.Config
	Logger *logs.Logger
	// Now is the clock used for notification expiry.
	Now func() time.Time
	// stopSelf stops the process between Screen.Suspend and Resume.
	stopSelf func() error

	ShowWhitespace bool
	LineNumbers    bool

	theme    config.Theme
	themes   []themeEntry
	themeIdx int
	renderer *render.Renderer
	commands map[string]func() error

	pending config.KeySeq
	prompt  *prompt
	notice  notice
	quit    bool
}

// New creates a Runner over ed. A nil cfg uses the defaults. The editor
// gets an empty buffer when it has none.
func New(ed *editor.Editor, cfg *config.Config, log *logs.Logger) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	if ed.Current() == nil {
		ed.NewBuffer()
	}
	r := &Runner{
		Editor:         ed,
		Config:         cfg,
		Logger:         log,
		Now:            time.Now,
		stopSelf:       stopSelf,
		ShowWhitespace: cfg.ShowWhitespace,
		LineNumbers:    cfg.LineNumbers,
		renderer:       render.NewRenderer(),
	}
	r.commands = r.commandTable()
	r.initThemes()
	return r
}

// InitScreen initializes a tcell screen if one is not already set.
func (r *Runner) InitScreen() error {
	if r.Screen != nil {
		return nil
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	r.Screen = s
	return nil
}

// Fini finalizes the screen if initialized.
func (r *Runner) Fini() {
	if r.Screen != nil {
		r.Screen.Fini()
		r.Screen = nil
	}
}

// pump forwards screen events until the screen is finalized or done is
// closed. Resizes collapse into a single pending slot.
func (r *Runner) pump(screen tcell.Screen, keys chan<- *tcell.EventKey, resize chan<- struct{}, done <-chan struct{}) {
	defer close(keys)
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			select {
			case keys <- ev:
			case <-done:
				return
			}
		case *tcell.EventResize:
			select {
			case resize <- struct{}{}:
			default:
			}
		}
	}
}

// Run starts the event loop. It initializes the screen if needed and
// returns when the user quits or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	if r.Screen == nil {
		if err := r.InitScreen(); err != nil {
			return err
		}
		defer r.Fini()
	}
	r.Logger.Event("run.start", map[string]any{"buffers": len(r.Editor.Buffers())})
	defer r.Logger.Event("run.end", nil)

	keys := make(chan *tcell.EventKey, 64)
	resize := make(chan struct{}, 1)
	done := make(chan struct{})
	defer close(done)
	go r.pump(r.Screen, keys, resize, done)

	expiry := time.NewTimer(time.Hour)
	expiry.Stop()
	defer expiry.Stop()

	r.resize()
	r.draw()
	for {
		// a pending resize is applied before the next key
		select {
		case <-resize:
			r.resize()
			r.draw()
			continue
		default:
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-resize:
			r.resize()
		case ev, ok := <-keys:
			if !ok {
				return nil
			}
			if r.handleKeyEvent(ev) {
				r.Logger.Event("action", map[string]any{"name": "quit"})
				return nil
			}
		case <-expiry.C:
		}
		r.expireNotice()
		if d, ok := r.notice.remaining(r.Now()); ok {
			expiry.Reset(d)
		}
		r.draw()
	}
}

// resize applies the current screen size to every buffer and forces a
// full repaint.
func (r *Runner) resize() {
	if r.Screen == nil {
		return
	}
	w, h := r.Screen.Size()
	r.Editor.Resize(w, render.TextHeight(h))
	r.renderer.Invalidate()
	r.Logger.Debug("resize", map[string]any{"width": w, "height": h})
}
