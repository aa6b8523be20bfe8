package plugins

import "testing"

type dummyPlugin struct{ name string }

func (d dummyPlugin) Name() string { return d.name }

func TestManagerRegisterAndGet(t *testing.T) {
	m := NewManager()
	p := dummyPlugin{name: "dummy"}
	m.Register(p)
	got, ok := m.Get("dummy")
	if !ok {
		t.Fatalf("expected plugin to be registered")
	}
	if got.Name() != "dummy" {
		t.Fatalf("unexpected plugin name: %s", got.Name())
	}
	if _, ok := m.Highlighter("dummy"); ok {
		t.Fatalf("a plain plugin is not a highlighter")
	}
}

func TestManagerForPath(t *testing.T) {
	m := NewDefaultManager(nil)
	cases := map[string]string{
		"notes.md":     "markdown-basic",
		"main.c":       "generic-c",
		"script.py":    "generic-python",
		"config.yaml":  "chroma-yaml",
		"unknown.zzzq": "plain",
	}
	for path, want := range cases {
		if got := m.ForPath(path).Name(); got != want {
			t.Fatalf("ForPath(%q): expected %s, got %s", path, want, got)
		}
	}
}

func TestManagerNamesAreSortedKeys(t *testing.T) {
	m := NewDefaultManager(nil)
	names := m.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted at %d: %s > %s", i, names[i-1], names[i])
		}
	}
	for _, n := range names {
		if _, ok := m.Get(n); !ok {
			t.Fatalf("listed name %q does not resolve", n)
		}
	}
	h, ok := m.Highlighter("python")
	if !ok || h.Name() != "generic-python" {
		t.Fatalf("expected python to resolve by language id, got %v %v", h, ok)
	}
}
