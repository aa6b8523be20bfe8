package app

import (
	"errors"
	"fmt"
	"strings"

	"example.com/wrapedit/pkg/plugins"
)

// setSyntax prompts for a highlighter name and applies it to the focused
// buffer.
func (r *Runner) setSyntax() error {
	m := r.Editor.Options().Highlighters
	if m == nil {
		return errors.New("no highlighters registered")
	}
	r.openPrompt(&prompt{
		kind:  "syntax",
		label: "Syntax: ",
		submit: func(input string) error {
			name := strings.TrimSpace(input)
			h, ok := m.Highlighter(name)
			if !ok {
				return fmt.Errorf("unknown syntax %q (one of %s)", name, strings.Join(highlighterNames(m), ", "))
			}
			r.Editor.Current().SetHighlighter(h)
			r.renderer.Invalidate()
			r.Logger.Event("syntax.set", map[string]any{"syntax": h.Name()})
			r.notify("Syntax: %s", h.Name())
			return nil
		},
	})
	return nil
}

func highlighterNames(m *plugins.Manager) []string {
	var names []string
	for _, n := range m.Names() {
		if _, ok := m.Highlighter(n); ok {
			names = append(names, n)
		}
	}
	return names
}
