package app

import (
	"fmt"
	"strings"
)

const helpName = "*help*"

// help opens a read-only buffer listing every bound command.
func (r *Runner) help() error {
	km := r.Config.Keymap
	var b strings.Builder
	b.WriteString("Key bindings\n\n")
	for _, cmd := range km.Commands() {
		fmt.Fprintf(&b, "%-18s %s\n", cmd, km[cmd])
	}
	b.WriteString("\nClose this buffer with " + km["close-buffer"].String() + ".\n")
	r.switchBuffer(r.Editor.OpenScratch(helpName, b.String()))
	return nil
}
