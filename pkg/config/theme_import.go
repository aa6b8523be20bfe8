package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

// ErrThemeFormat is returned for theme files that are neither Base16 nor
// Alacritty color schemes.
var ErrThemeFormat = errors.New("unrecognized theme format")

// ImportTheme reads a theme file in a known format and converts it to Theme.
// Supported:
// - Base16 YAML (keys base00..base0F)
// - Alacritty YAML (colors.primary/normal/bright/selection)
func ImportTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Theme{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	lower := make(map[string]any, len(raw))
	for k, v := range raw {
		lower[strings.ToLower(k)] = v
	}
	switch {
	case lower["base00"] != nil:
		return importBase16(name, lower), nil
	case lower["colors"] != nil:
		var doc alacrittyDoc
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Theme{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		return importAlacritty(name, doc), nil
	default:
		return Theme{}, fmt.Errorf("%w: %s", ErrThemeFormat, filepath.Base(path))
	}
}

func parseHexToColor(v string, fallback tcell.Color) tcell.Color {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "#") {
		v = v[1:]
	} else if strings.HasPrefix(strings.ToLower(v), "0x") {
		v = v[2:]
	}
	if len(v) != 6 {
		return fallback
	}
	if _, err := strconv.ParseUint(v, 16, 32); err != nil {
		return fallback
	}
	return ParseColor("#"+strings.ToLower(v), fallback)
}

// importBase16 parses a Base16 YAML scheme or theme.
func importBase16(name string, bases map[string]any) Theme {
	p := darkPalette
	get := func(k string, fb tcell.Color) tcell.Color {
		switch v := bases[k].(type) {
		case string:
			return parseHexToColor(v, fb)
		case int:
			// unquoted all-digit values decode as integers
			return parseHexToColor(fmt.Sprintf("%06d", v), fb)
		}
		return fb
	}
	p.bg = get("base00", p.bg)
	p.fg = get("base05", p.fg)
	p.panelBG = get("base01", get("base02", p.bg))
	p.panelFG = p.fg
	p.selection = get("base02", p.selection)
	p.subtle = get("base03", p.subtle)
	p.red = get("base08", p.red)
	p.yellow = get("base0a", p.yellow)
	p.match = p.yellow
	p.green = get("base0b", p.green)
	p.cyan = get("base0c", p.cyan)
	p.blue = get("base0d", p.blue)
	p.magenta = get("base0e", p.magenta)
	return p.theme(name)
}

type alacrittyDoc struct {
	Colors struct {
		Primary struct {
			Background string `yaml:"background"`
			Foreground string `yaml:"foreground"`
		} `yaml:"primary"`
		Normal    map[string]string `yaml:"normal"`
		Bright    map[string]string `yaml:"bright"`
		Selection struct {
			Background string `yaml:"background"`
		} `yaml:"selection"`
	} `yaml:"colors"`
}

// importAlacritty parses an Alacritty colors YAML fragment.
func importAlacritty(name string, doc alacrittyDoc) Theme {
	c := doc.Colors
	p := darkPalette
	p.bg = parseHexToColor(c.Primary.Background, p.bg)
	p.fg = parseHexToColor(c.Primary.Foreground, p.fg)
	normal := func(k string, fb tcell.Color) tcell.Color { return parseHexToColor(c.Normal[k], fb) }
	p.red = normal("red", p.red)
	p.green = normal("green", p.green)
	p.yellow = normal("yellow", p.yellow)
	p.blue = normal("blue", p.blue)
	p.magenta = normal("magenta", p.magenta)
	p.cyan = normal("cyan", p.cyan)
	p.match = p.yellow
	p.subtle = parseHexToColor(c.Bright["black"], normal("black", p.subtle))
	p.panelBG = p.subtle
	p.panelFG = p.fg
	p.selection = parseHexToColor(c.Selection.Background, p.blue)
	return p.theme(name)
}
