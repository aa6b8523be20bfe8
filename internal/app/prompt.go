package app

import (
	"errors"
	"unicode/utf8"

	"example.com/wrapedit/pkg/config"
	"github.com/gdamore/tcell/v2"
)

// errKeepPrompt keeps a prompt open after submit without a notice.
var errKeepPrompt = errors.New("keep prompt")

// prompt is the mini-buffer input state. While a prompt is open every key
// goes to it instead of the keymap.
type prompt struct {
	kind  string
	label string
	input string
	// submit runs on Enter. A non-nil error keeps the prompt open.
	submit func(input string) error
	// change runs after every edit of input.
	change func(input string)
	// cancel runs on Esc.
	cancel func()
	// key handles single-key prompts; it returns true when the prompt
	// should close.
	key func(k config.Key) bool
}

func (r *Runner) openPrompt(p *prompt) {
	r.prompt = p
	r.pending = nil
	r.Logger.Debug("prompt.open", map[string]any{"kind": p.kind})
}

func (r *Runner) closePrompt() {
	if r.prompt != nil {
		r.Logger.Debug("prompt.close", map[string]any{"kind": r.prompt.kind})
	}
	r.prompt = nil
}

// handlePromptKey feeds k to the open prompt.
func (r *Runner) handlePromptKey(k config.Key) {
	p := r.prompt
	if p.key != nil {
		if k.Code == tcell.KeyEsc || p.key(k) {
			if r.prompt == p {
				r.closePrompt()
			}
		}
		return
	}
	switch {
	case k.Code == tcell.KeyEsc || (k.Code == tcell.KeyRune && k.Rune == 'g' && k.Mod == tcell.ModCtrl):
		r.closePrompt()
		if p.cancel != nil {
			p.cancel()
		}
	case k.Code == tcell.KeyEnter:
		err := p.submit(p.input)
		switch {
		case err == nil:
			if r.prompt == p {
				r.closePrompt()
			}
		case errors.Is(err, errKeepPrompt):
		default:
			r.notifyErr(err)
		}
	case k.Code == tcell.KeyBackspace2:
		if p.input != "" {
			_, size := utf8.DecodeLastRuneInString(p.input)
			p.input = p.input[:len(p.input)-size]
			r.promptChanged(p)
		}
	case k.Printable():
		p.input += string(k.Rune)
		r.promptChanged(p)
	}
}

func (r *Runner) promptChanged(p *prompt) {
	r.clearNotice()
	if p.change != nil {
		p.change(p.input)
	}
}
