package config

import (
	"sort"
	"strings"

	"example.com/wrapedit/pkg/style"
	"github.com/gdamore/tcell/v2"
)

// Theme maps style roles to terminal styles.
type Theme struct {
	Name   string
	Styles map[style.ID]tcell.Style
}

// Style returns the style for id, falling back to the Default role.
func (t Theme) Style(id style.ID) tcell.Style {
	if s, ok := t.Styles[id]; ok {
		return s
	}
	if s, ok := t.Styles[style.Default]; ok {
		return s
	}
	return tcell.StyleDefault
}

// palette is the small set of colors a theme is derived from.
type palette struct {
	bg, fg        tcell.Color
	subtle        tcell.Color
	panelBG       tcell.Color
	panelFG       tcell.Color
	selection     tcell.Color
	match         tcell.Color
	red, green    tcell.Color
	yellow, blue  tcell.Color
	magenta, cyan tcell.Color
}

func (p palette) theme(name string) Theme {
	base := tcell.StyleDefault.Background(p.bg).Foreground(p.fg)
	fg := func(c tcell.Color) tcell.Style { return base.Foreground(c) }
	panel := tcell.StyleDefault.Background(p.panelBG).Foreground(p.panelFG)
	return Theme{Name: name, Styles: map[style.ID]tcell.Style{
		style.Default:     base,
		style.Keyword:     fg(p.red).Bold(true),
		style.String:      fg(p.green),
		style.Comment:     fg(p.subtle).Italic(true),
		style.Number:      fg(p.yellow),
		style.Type:        fg(p.blue),
		style.Function:    fg(p.cyan),
		style.Operator:    fg(p.magenta),
		style.Heading:     fg(p.blue).Bold(true),
		style.Link:        fg(p.cyan),
		style.Emphasis:    base.Italic(true),
		style.Code:        fg(p.green),
		style.Selection:   base.Background(p.selection),
		style.Match:       base.Background(p.match).Foreground(p.bg),
		style.Gutter:      fg(p.subtle),
		style.Status:      panel,
		style.StatusDirty: panel.Foreground(p.red).Bold(true),
		style.Message:     base,
		style.Prompt:      base.Foreground(p.cyan).Bold(true),
		style.Whitespace:  fg(p.subtle),
		style.Placeholder: fg(p.subtle).Reverse(true),
	}}
}

var darkPalette = palette{
	bg: tcell.ColorBlack, fg: tcell.ColorWhite, subtle: tcell.ColorGray,
	panelBG: tcell.ColorWhite, panelFG: tcell.ColorBlack,
	selection: tcell.ColorNavy, match: tcell.ColorYellow,
	red: tcell.ColorRed, green: tcell.ColorGreen, yellow: tcell.ColorYellow,
	blue: tcell.ColorBlue, magenta: tcell.ColorFuchsia, cyan: tcell.ColorAqua,
}

// DefaultTheme returns the built-in theme matching the classic colors.
func DefaultTheme() Theme { return darkPalette.theme("default") }

// TerminalTheme leverages terminal-provided defaults and ANSI palette colors
// so the editor follows the user's terminal theme.
func TerminalTheme() Theme {
	return palette{
		bg: tcell.ColorDefault, fg: tcell.ColorDefault, subtle: tcell.ColorGray,
		panelBG: tcell.ColorGray, panelFG: tcell.ColorDefault,
		selection: tcell.ColorBlue, match: tcell.ColorYellow,
		red: tcell.ColorRed, green: tcell.ColorGreen, yellow: tcell.ColorYellow,
		blue: tcell.ColorBlue, magenta: tcell.ColorPurple, cyan: tcell.ColorTeal,
	}.theme("terminal")
}

var builtinThemes = map[string]func() Theme{
	"default":  DefaultTheme,
	"terminal": TerminalTheme,
	"dark": func() Theme {
		return palette{
			bg: tcell.ColorBlack, fg: tcell.ColorSilver, subtle: tcell.ColorDimGray,
			panelBG: tcell.ColorDarkSlateGray, panelFG: tcell.ColorWhite,
			selection: tcell.ColorDarkSlateBlue, match: tcell.ColorDarkOliveGreen,
			red: tcell.ColorIndianRed, green: tcell.ColorLightGreen, yellow: tcell.ColorLightYellow,
			blue: tcell.ColorLightBlue, magenta: tcell.ColorOrchid, cyan: tcell.ColorLightCyan,
		}.theme("dark")
	},
	"light": func() Theme {
		return palette{
			bg: tcell.ColorWhite, fg: tcell.ColorBlack, subtle: tcell.ColorGray,
			panelBG: tcell.ColorBlack, panelFG: tcell.ColorWhite,
			selection: tcell.ColorLightBlue, match: tcell.ColorGold,
			red: tcell.ColorDarkRed, green: tcell.ColorDarkGreen, yellow: tcell.ColorOlive,
			blue: tcell.ColorNavy, magenta: tcell.ColorPurple, cyan: tcell.ColorTeal,
		}.theme("light")
	},
}

// BuiltinTheme returns a built-in theme by name.
func BuiltinTheme(name string) (Theme, bool) {
	f, ok := builtinThemes[strings.ToLower(name)]
	if !ok {
		return Theme{}, false
	}
	return f(), true
}

// ThemeNames lists the built-in themes in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(builtinThemes))
	for n := range builtinThemes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseColor returns a tcell.Color from a name or hex like "#aabbcc".
// If parsing fails, it returns the provided fallback.
func ParseColor(s string, fallback tcell.Color) tcell.Color {
	if s == "" {
		return fallback
	}
	// tcell.GetColor supports W3C names or #RRGGBB (case-insensitive)
	c := tcell.GetColor(strings.ToLower(s))
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
