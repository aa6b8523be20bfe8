package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestParseKeybinding(t *testing.T) {
	kb, err := ParseKeybinding("Ctrl+X")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl),
		tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl),
	} {
		if KeyFromEvent(ev) != kb {
			t.Fatalf("expected match for Ctrl+X from %v", ev.Name())
		}
	}
}

func TestParseNamedAndShiftedKeys(t *testing.T) {
	cases := []struct {
		in   string
		want Key
	}{
		{"Shift+Left", Key{Code: tcell.KeyLeft, Mod: tcell.ModShift}},
		{"ctrl+shift+right", Key{Code: tcell.KeyRight, Mod: tcell.ModCtrl | tcell.ModShift}},
		{"PgDn", Key{Code: tcell.KeyPgDn}},
		{"Backspace", Key{Code: tcell.KeyBackspace2}},
		{"Alt+X", Key{Code: tcell.KeyRune, Rune: 'x', Mod: tcell.ModAlt}},
		{"Ctrl+Space", Key{Code: tcell.KeyRune, Rune: ' ', Mod: tcell.ModCtrl}},
		{"Ctrl++", Key{Code: tcell.KeyRune, Rune: '+', Mod: tcell.ModCtrl}},
		{"w", Key{Code: tcell.KeyRune, Rune: 'w'}},
	}
	for _, c := range cases {
		got, err := ParseKeybinding(c.in)
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%q: expected %+v, got %+v", c.in, c.want, got)
		}
	}
}

func TestParseKeybinding_Invalid(t *testing.T) {
	for _, s := range []string{"Ctrl+", "Hyper+x", "Ctrl+xy", ""} {
		if _, err := ParseKeybinding(s); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("expected ErrInvalidKey for %q, got %v", s, err)
		}
	}
}

func TestKeyFromEventNormalizes(t *testing.T) {
	if k := KeyFromEvent(tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone)); k.Code != tcell.KeyBackspace2 {
		t.Fatalf("expected backspace to normalize, got %+v", k)
	}
	if k := KeyFromEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); k.Code != tcell.KeyEnter {
		t.Fatalf("expected plain enter, got %+v", k)
	}
	k := KeyFromEvent(tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift))
	if k != (Key{Code: tcell.KeyRune, Rune: 'A'}) || !k.Printable() {
		t.Fatalf("expected printable 'A', got %+v", k)
	}
	if KeyFromEvent(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModNone)).Printable() {
		t.Fatalf("ctrl keys are not printable")
	}
}

func TestKeySeqString(t *testing.T) {
	seq, err := ParseKeySeq("Ctrl+K  ctrl+s")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := seq.String(); got != "Ctrl+K Ctrl+S" {
		t.Fatalf("unexpected string %q", got)
	}
	k, _ := ParseKeybinding("Shift+PgUp")
	if got := k.String(); got != "Shift+PgUp" {
		t.Fatalf("unexpected string %q", got)
	}
	if k, _ := ParseKeybinding("shift+f3"); k.String() != "Shift+F3" {
		t.Fatalf("unexpected string %q", k.String())
	}
}

func TestKeymapLookup(t *testing.T) {
	km := DefaultKeymap()
	ctrlK, _ := ParseKeybinding("Ctrl+K")
	ctrlS, _ := ParseKeybinding("Ctrl+S")

	if cmd, prefix := km.Lookup(KeySeq{ctrlS}); cmd != "save" || prefix {
		t.Fatalf("expected save, got %q prefix=%v", cmd, prefix)
	}
	if cmd, prefix := km.Lookup(KeySeq{ctrlK}); cmd != "" || !prefix {
		t.Fatalf("expected pending prefix, got %q prefix=%v", cmd, prefix)
	}
	if cmd, _ := km.Lookup(KeySeq{ctrlK, ctrlS}); cmd != "save-as" {
		t.Fatalf("expected save-as, got %q", cmd)
	}
	if cmd, prefix := km.Lookup(KeySeq{ctrlS, ctrlS}); cmd != "" || prefix {
		t.Fatalf("expected no binding, got %q prefix=%v", cmd, prefix)
	}
}

func TestDefaultBindingsAreUnambiguous(t *testing.T) {
	km := DefaultKeymap()
	for _, a := range km.Commands() {
		for _, b := range km.Commands() {
			if a != b && km[a].equal(km[b]) {
				t.Fatalf("%s and %s share %s", a, b, km[a])
			}
			if km[a].hasPrefix(km[b]) {
				t.Fatalf("%s (%s) shadows %s", b, km[b], a)
			}
		}
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TabWidth != 4 || cfg.ScrollMargin != 3 || cfg.UndoGroupWindow != time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Keymap["quit"].String() != "Ctrl+Q" {
		t.Fatalf("expected default quit binding")
	}
}

func TestLoadConfigRemap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("tab_width: 8\nword_wrap: true\nundo_group_window: 500ms\nkeymap:\n  quit: Ctrl+X\n  save-as: Ctrl+K Ctrl+A\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ev := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl)
	if KeyFromEvent(ev) != cfg.Keymap["quit"][0] {
		t.Fatalf("expected remapped quit to Ctrl+X")
	}
	if cfg.Keymap["save-as"].String() != "Ctrl+K Ctrl+A" {
		t.Fatalf("expected remapped save-as, got %s", cfg.Keymap["save-as"])
	}
	if cfg.TabWidth != 8 || !cfg.WordWrap || cfg.UndoGroupWindow != 500*time.Millisecond {
		t.Fatalf("file values not applied: %+v", cfg)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: light\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WRAPEDIT_THEME", "dark")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme != "dark" {
		t.Fatalf("expected env override, got %q", cfg.Theme)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"tab.yaml": "tab_width: 0\n",
		"key.yaml": "keymap:\n  quit: Hyper+Q\n",
		"bad.yaml": "tab_width: [\n",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
