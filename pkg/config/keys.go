package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// ErrInvalidKey is returned for key descriptions that cannot be parsed.
var ErrInvalidKey = errors.New("invalid keybinding")

// Key is a normalized key press. Control letters are stored as KeyRune with
// a lowercase rune and ModCtrl, whichever way the terminal reported them.
type Key struct {
	Code tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// KeySeq is a chord of one or more key presses, such as "Ctrl+K Ctrl+S".
type KeySeq []Key

var namedKeys = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"return":    tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"backtab":   tcell.KeyBacktab,
	"esc":       tcell.KeyEsc,
	"escape":    tcell.KeyEsc,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"del":       tcell.KeyDelete,
	"insert":    tcell.KeyInsert,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pageup":    tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"pagedown":  tcell.KeyPgDn,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "Enter",
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "Backtab",
	tcell.KeyEsc:        "Esc",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PgUp",
	tcell.KeyPgDn:       "PgDn",
}

// ParseKeybinding converts a textual key description like "Ctrl+S",
// "Shift+Left", "Alt+x" or "PgDn" into a Key.
func ParseKeybinding(s string) (Key, error) {
	parts := strings.Split(strings.TrimSpace(s), "+")
	// "Ctrl++" binds the plus key
	if len(parts) > 1 && parts[len(parts)-1] == "" && parts[len(parts)-2] == "" {
		parts = append(parts[:len(parts)-2], "+")
	}
	var mod tcell.ModMask
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl", "control":
			mod |= tcell.ModCtrl
		case "alt", "meta":
			mod |= tcell.ModAlt
		case "shift":
			mod |= tcell.ModShift
		default:
			return Key{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidKey, p, s)
		}
	}
	name := strings.TrimSpace(parts[len(parts)-1])
	if name == "" {
		return Key{}, fmt.Errorf("%w: missing key in %q", ErrInvalidKey, s)
	}
	if k, ok := namedKeys[strings.ToLower(name)]; ok {
		return Key{Code: k, Mod: mod}, nil
	}
	if strings.EqualFold(name, "space") {
		name = " "
	}
	r, size := utf8.DecodeRuneInString(name)
	if size != len(name) || r == utf8.RuneError || unicode.IsControl(r) {
		return Key{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidKey, name, s)
	}
	if mod&(tcell.ModCtrl|tcell.ModAlt) != 0 {
		r = unicode.ToLower(r)
	}
	// the shifted rune already encodes Shift
	return Key{Code: tcell.KeyRune, Rune: r, Mod: mod &^ tcell.ModShift}, nil
}

// ParseKeySeq parses space separated key descriptions.
func ParseKeySeq(s string) (KeySeq, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty binding", ErrInvalidKey)
	}
	seq := make(KeySeq, 0, len(fields))
	for _, f := range fields {
		k, err := ParseKeybinding(f)
		if err != nil {
			return nil, err
		}
		seq = append(seq, k)
	}
	return seq, nil
}

// KeyFromEvent normalizes a tcell key event.
func KeyFromEvent(ev *tcell.EventKey) Key {
	k, r, mod := ev.Key(), ev.Rune(), ev.Modifiers()
	switch {
	case k == tcell.KeyRune:
		if mod&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			r = unicode.ToLower(r)
		}
		return Key{Code: tcell.KeyRune, Rune: r, Mod: mod &^ tcell.ModShift}
	case k == tcell.KeyBackspace && mod&tcell.ModCtrl == 0:
		return Key{Code: tcell.KeyBackspace2, Mod: mod}
	case (k == tcell.KeyTab || k == tcell.KeyEnter) && mod&tcell.ModCtrl == 0:
		return Key{Code: k, Mod: mod}
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return Key{Code: tcell.KeyRune, Rune: rune('a' + k - tcell.KeyCtrlA), Mod: mod | tcell.ModCtrl}
	case k == tcell.KeyCtrlSpace:
		return Key{Code: tcell.KeyRune, Rune: ' ', Mod: mod | tcell.ModCtrl}
	}
	return Key{Code: k, Mod: mod}
}

// Printable reports whether the key inserts its rune.
func (k Key) Printable() bool {
	return k.Code == tcell.KeyRune && k.Mod&(tcell.ModCtrl|tcell.ModAlt) == 0 && unicode.IsPrint(k.Rune)
}

func (k Key) String() string {
	var sb strings.Builder
	if k.Mod&tcell.ModCtrl != 0 {
		sb.WriteString("Ctrl+")
	}
	if k.Mod&tcell.ModAlt != 0 {
		sb.WriteString("Alt+")
	}
	if k.Mod&tcell.ModShift != 0 {
		sb.WriteString("Shift+")
	}
	switch {
	case k.Code == tcell.KeyRune && k.Rune == ' ':
		sb.WriteString("Space")
	case k.Code == tcell.KeyRune && k.Mod&tcell.ModCtrl != 0:
		sb.WriteRune(unicode.ToUpper(k.Rune))
	case k.Code == tcell.KeyRune:
		sb.WriteRune(k.Rune)
	default:
		name, ok := keyNames[k.Code]
		switch {
		case ok:
		case k.Code >= tcell.KeyF1 && k.Code <= tcell.KeyF64:
			name = fmt.Sprintf("F%d", k.Code-tcell.KeyF1+1)
		default:
			name = fmt.Sprintf("Key%d", k.Code)
		}
		sb.WriteString(name)
	}
	return sb.String()
}

func (s KeySeq) String() string {
	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}

// hasPrefix reports whether p is a proper prefix of s.
func (s KeySeq) hasPrefix(p KeySeq) bool {
	if len(p) >= len(s) {
		return false
	}
	for i := range p {
		if s[i] != p[i] {
			return false
		}
	}
	return true
}

func (s KeySeq) equal(o KeySeq) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}
