package app

import (
	"fmt"
	"strconv"
	"strings"
)

// gotoLine prompts for a 1-based line number and centers the view on it.
func (r *Runner) gotoLine() error {
	r.openPrompt(&prompt{
		kind:  "goto",
		label: "Go to line: ",
		submit: func(input string) error {
			n, err := strconv.Atoi(strings.TrimSpace(input))
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid line number %q", input)
			}
			r.Editor.Current().GotoLine(n)
			return nil
		},
	})
	return nil
}
