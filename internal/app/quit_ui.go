package app

import (
	"fmt"

	"example.com/wrapedit/pkg/config"
	"example.com/wrapedit/pkg/editor"
)

// requestQuit quits at once when nothing is unsaved. Otherwise it asks:
// y quits anyway, s saves every modified buffer first, n or Esc stays.
func (r *Runner) requestQuit() error {
	if r.Editor.RequestQuit() == editor.QuitAllowed {
		r.quit = true
		return nil
	}
	unsaved := r.Editor.Unsaved()
	what := unsaved[0].Name()
	if len(unsaved) > 1 {
		what = fmt.Sprintf("%d buffers", len(unsaved))
	}
	r.openPrompt(&prompt{
		kind:  "quit",
		label: fmt.Sprintf("%s modified. Quit without saving? (y)es (n)o (s)ave ", what),
		key: func(k config.Key) bool {
			switch k.Rune {
			case 'y', 'Y':
				r.quit = true
				return true
			case 'n', 'N':
				return true
			case 's', 'S':
				for _, s := range unsaved {
					if err := s.Save(); err != nil {
						r.fail("save", err)
						return true
					}
				}
				r.quit = true
				return true
			}
			return false
		},
	})
	return nil
}
