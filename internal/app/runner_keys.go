package app

import (
	"example.com/wrapedit/pkg/config"
	"github.com/gdamore/tcell/v2"
)

// dispatchState names what the next key is interpreted against.
type dispatchState int

const (
	stateNormal dispatchState = iota
	statePending
	statePrompt
)

func (s dispatchState) String() string {
	switch s {
	case statePending:
		return "pending"
	case statePrompt:
		return "prompt"
	}
	return "normal"
}

func (r *Runner) state() dispatchState {
	switch {
	case r.prompt != nil:
		return statePrompt
	case len(r.pending) > 0:
		return statePending
	}
	return stateNormal
}

// handleKeyEvent processes a key event. It returns true if the event signals
// the runner should quit.
func (r *Runner) handleKeyEvent(ev *tcell.EventKey) bool {
	k := config.KeyFromEvent(ev)
	r.Logger.Debug("key", map[string]any{
		"key":   k.String(),
		"state": r.state().String(),
	})
	switch r.state() {
	case statePrompt:
		r.handlePromptKey(k)
		return r.quit
	}

	seq := append(append(config.KeySeq(nil), r.pending...), k)
	cmd, prefix := r.Config.Keymap.Lookup(seq)
	switch {
	case cmd != "":
		r.pending = nil
		r.execute(cmd)
	case prefix:
		r.pending = seq
	case len(r.pending) > 0:
		r.pending = nil
		r.notify("%s is undefined", seq)
	case k.Printable():
		r.clearNotice()
		if err := r.Editor.Current().InsertChar(k.Rune); err != nil {
			r.fail("insert", err)
		}
	}
	return r.quit
}

// execute runs the command bound to name as one logical operation.
func (r *Runner) execute(name string) {
	fn, ok := r.commands[name]
	if !ok {
		r.notify("unknown command %q", name)
		return
	}
	r.Logger.Event("action", map[string]any{"name": name})
	if err := fn(); err != nil {
		r.fail(name, err)
	}
}

// fail reports a command error on the status line and in the log.
func (r *Runner) fail(name string, err error) {
	r.Logger.Error("action.error", err, map[string]any{"name": name})
	r.notifyErr(err)
}
