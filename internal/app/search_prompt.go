package app

import (
	"strings"

	"example.com/wrapedit/pkg/buffer"
)

// find opens an incremental search prompt. Each edit of the query jumps to
// the first match at or after the cursor; Enter keeps the matches
// highlighted for find-next/find-prev and Esc restores the cursor. A query
// containing an upper-case letter is case-sensitive.
func (r *Runner) find() error {
	s := r.Editor.Current()
	origin := s.Cursor().Pos
	r.openPrompt(&prompt{
		kind:  "find",
		label: "Find: ",
		input: s.Query(),
		change: func(q string) {
			s.MoveTo(origin)
			if q == "" {
				s.ClearFind()
				return
			}
			if s.Find(q, smartCase(q)) == 0 {
				r.notify("No matches for %q", q)
			}
		},
		submit: func(q string) error {
			if q == "" {
				s.ClearFind()
				return nil
			}
			if q != s.Query() || len(s.Matches()) == 0 {
				s.MoveTo(origin)
				if s.Find(q, smartCase(q)) == 0 {
					r.notify("No matches for %q", q)
					return nil
				}
			}
			r.notify("%d matches", len(s.Matches()))
			return nil
		},
		cancel: func() {
			s.ClearFind()
			s.MoveTo(origin)
		},
	})
	return nil
}

// findStep moves to the next or previous match of the active search.
func (r *Runner) findStep(forward bool) error {
	s := r.Editor.Current()
	if s.Query() == "" {
		return r.find()
	}
	if len(s.Matches()) == 0 {
		r.notify("No matches for %q", s.Query())
		return nil
	}
	if forward {
		s.FindNext()
	} else {
		s.FindPrev()
	}
	r.notify("Match %d of %d", matchIndex(s.Matches(), s.Cursor().Pos)+1, len(s.Matches()))
	return nil
}

func matchIndex(matches []buffer.Span, pos buffer.Position) int {
	for i, m := range matches {
		if m.End == pos {
			return i
		}
	}
	return 0
}

func smartCase(q string) bool { return strings.ToLower(q) != q }
