package config

import (
	"fmt"
	"sort"
)

// Keymap binds command ids to key sequences. Command ids use hyphens
// ("save-as") so they survive viper's key folding.
type Keymap map[string]KeySeq

// DefaultBindings lists the built-in bindings in their textual form.
var DefaultBindings = map[string]string{
	"quit":              "Ctrl+Q",
	"save":              "Ctrl+S",
	"save-as":           "Ctrl+K Ctrl+S",
	"open":              "Ctrl+O",
	"find":              "Ctrl+F",
	"find-next":         "F3",
	"find-prev":         "Shift+F3",
	"goto-line":         "Ctrl+G",
	"undo":              "Ctrl+Z",
	"redo":              "Ctrl+Y",
	"cut":               "Ctrl+X",
	"copy":              "Ctrl+C",
	"paste":             "Ctrl+V",
	"select-all":        "Ctrl+A",
	"delete-line":       "Ctrl+D",
	"newline":           "Enter",
	"tab":               "Tab",
	"backspace":         "Backspace",
	"delete":            "Delete",
	"cancel":            "Esc",
	"move-left":         "Left",
	"move-right":        "Right",
	"move-up":           "Up",
	"move-down":         "Down",
	"word-left":         "Ctrl+Left",
	"word-right":        "Ctrl+Right",
	"line-start":        "Home",
	"line-end":          "End",
	"doc-start":         "Ctrl+Home",
	"doc-end":           "Ctrl+End",
	"page-up":           "PgUp",
	"page-down":         "PgDn",
	"select-left":       "Shift+Left",
	"select-right":      "Shift+Right",
	"select-up":         "Shift+Up",
	"select-down":       "Shift+Down",
	"select-word-left":  "Ctrl+Shift+Left",
	"select-word-right": "Ctrl+Shift+Right",
	"select-line-start": "Shift+Home",
	"select-line-end":   "Shift+End",
	"next-buffer":       "Ctrl+K Ctrl+N",
	"prev-buffer":       "Ctrl+K Ctrl+P",
	"close-buffer":      "Ctrl+K Ctrl+W",
	"cycle-theme":       "Ctrl+K t",
	"prev-theme":        "Ctrl+K T",
	"toggle-whitespace": "Ctrl+K w",
	"toggle-wrap":       "Ctrl+K r",
	"yank-pop":          "Ctrl+K y",
	"set-syntax":        "Ctrl+K s",
	"suspend":           "Ctrl+K z",
	"help":              "F1",
}

// DefaultKeymap provides builtin command bindings.
func DefaultKeymap() Keymap {
	km := make(Keymap, len(DefaultBindings))
	for cmd, s := range DefaultBindings {
		km[cmd] = mustParseSeq(s)
	}
	return km
}

// Bind parses binding and assigns it to cmd. An empty binding unbinds cmd.
func (km Keymap) Bind(cmd, binding string) error {
	if binding == "" {
		delete(km, cmd)
		return nil
	}
	seq, err := ParseKeySeq(binding)
	if err != nil {
		return fmt.Errorf("keymap %s: %w", cmd, err)
	}
	km[cmd] = seq
	return nil
}

// Lookup resolves a typed sequence. It returns the bound command, or
// prefix=true when seq is the start of a longer binding.
func (km Keymap) Lookup(seq KeySeq) (cmd string, prefix bool) {
	for _, c := range km.Commands() {
		b := km[c]
		if b.equal(seq) {
			return c, false
		}
		if b.hasPrefix(seq) {
			prefix = true
		}
	}
	return "", prefix
}

// Commands returns the bound command ids in sorted order.
func (km Keymap) Commands() []string {
	out := make([]string, 0, len(km))
	for c := range km {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func mustParseSeq(s string) KeySeq {
	seq, err := ParseKeySeq(s)
	if err != nil {
		panic(err)
	}
	return seq
}
