package app

import (
	"errors"
	"strings"

	"example.com/wrapedit/pkg/editor"
)

// save writes the focused buffer, asking for a name when it has none.
func (r *Runner) save() error {
	s := r.Editor.Current()
	err := s.Save()
	if errors.Is(err, editor.ErrNoPath) {
		return r.saveAs()
	}
	if err != nil {
		return err
	}
	r.notify("%s", s.SavedNotice())
	return nil
}

// saveAs prompts for a path, prefilled with the current one, and writes
// the buffer there. A failed write keeps the prompt open.
func (r *Runner) saveAs() error {
	s := r.Editor.Current()
	r.openPrompt(&prompt{
		kind:  "save-as",
		label: "Save as: ",
		input: s.Path,
		submit: func(input string) error {
			path := strings.TrimSpace(input)
			if path == "" {
				return editor.ErrNoPath
			}
			if err := s.SaveAs(path); err != nil {
				return err
			}
			r.notify("%s", s.SavedNotice())
			return nil
		},
	})
	return nil
}
