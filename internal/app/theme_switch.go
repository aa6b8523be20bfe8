package app

import (
	"os"
	"path/filepath"
	"strings"

	"example.com/wrapedit/pkg/config"
)

// themeEntry represents a theme option that can be applied at runtime.
type themeEntry struct {
	Name string
	// If Path is non-empty, load from file; otherwise use the builtin name
	Path string
}

// initThemes lists the builtins followed by the YAML themes next to the
// configured theme file, and applies the configured theme.
func (r *Runner) initThemes() {
	list := make([]themeEntry, 0, 8)
	for _, n := range config.ThemeNames() {
		list = append(list, themeEntry{Name: n})
	}
	if tf := r.Config.ThemeFile; tf != "" {
		list = append(list, themeEntry{Name: themeName(tf), Path: tf})
		entries, _ := os.ReadDir(filepath.Dir(tf))
		for _, e := range entries {
			p := filepath.Join(filepath.Dir(tf), e.Name())
			ext := filepath.Ext(e.Name())
			if e.IsDir() || (ext != ".yaml" && ext != ".yml") || p == filepath.Clean(tf) {
				continue
			}
			list = append(list, themeEntry{Name: themeName(p), Path: p})
		}
	}
	r.themes = list

	th, err := r.Config.ResolveTheme()
	if err != nil {
		r.Logger.Error("theme.error", err, map[string]any{"theme": r.Config.Theme, "file": r.Config.ThemeFile})
		r.notifyErr(err)
	}
	r.theme = th
	r.themeIdx = 0
	for i, e := range list {
		if e.Name == th.Name {
			r.themeIdx = i
			break
		}
	}
}

func themeName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func (r *Runner) applyThemeEntry(e themeEntry) {
	var t config.Theme
	if e.Path != "" {
		nt, err := config.ImportTheme(e.Path)
		if err != nil {
			r.fail("theme", err)
			return
		}
		t = nt
	} else {
		bt, ok := config.BuiltinTheme(e.Name)
		if !ok {
			bt = config.DefaultTheme()
		}
		t = bt
	}
	r.theme = t
	r.renderer.Invalidate()
	r.Logger.Event("theme.apply", map[string]any{"theme": t.Name})
	r.notify("Theme: %s", e.Name)
}

// Theme returns the active theme.
func (r *Runner) Theme() config.Theme { return r.theme }

// NextTheme cycles to the next theme and applies it.
func (r *Runner) NextTheme() {
	if len(r.themes) == 0 {
		return
	}
	r.themeIdx = (r.themeIdx + 1) % len(r.themes)
	r.applyThemeEntry(r.themes[r.themeIdx])
}

// PrevTheme cycles to the previous theme and applies it.
func (r *Runner) PrevTheme() {
	if len(r.themes) == 0 {
		return
	}
	r.themeIdx = (r.themeIdx - 1 + len(r.themes)) % len(r.themes)
	r.applyThemeEntry(r.themes[r.themeIdx])
}
