package app

import (
	"strings"

	"example.com/wrapedit/pkg/editor"
)

// openFile prompts for a path and opens it in a new buffer. A buffer that
// already shows the file is focused instead.
func (r *Runner) openFile() error {
	r.openPrompt(&prompt{
		kind:  "open",
		label: "Open: ",
		submit: func(input string) error {
			path := strings.TrimSpace(input)
			if path == "" {
				return editor.ErrNoPath
			}
			for i, s := range r.Editor.Buffers() {
				if s.Path == path {
					r.focus(i)
					return nil
				}
			}
			s, err := r.Editor.Open(path)
			if err != nil {
				return err
			}
			r.switchBuffer(s)
			return nil
		},
	})
	return nil
}

// focus moves to buffer i by stepping through the list.
func (r *Runner) focus(i int) {
	for r.Editor.Index() != i {
		r.Editor.Next()
	}
	r.switchBuffer(r.Editor.Current())
}
