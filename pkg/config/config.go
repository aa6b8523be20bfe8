// Package config loads editor settings, key bindings and color themes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds user configuration values. A zero UndoGroupWindow turns
// undo grouping of keystrokes off.
type Config struct {
	Theme           string            `mapstructure:"theme"`
	ThemeFile       string            `mapstructure:"theme_file"`
	Languages       string            `mapstructure:"languages"`
	TabWidth        int               `mapstructure:"tab_width"`
	ScrollMargin    int               `mapstructure:"scroll_margin"`
	LineNumbers     bool              `mapstructure:"line_numbers"`
	WordWrap        bool              `mapstructure:"word_wrap"`
	ShowWhitespace  bool              `mapstructure:"show_whitespace"`
	ReadOnly        bool              `mapstructure:"readonly"`
	UndoCapacity    int               `mapstructure:"undo_capacity"`
	UndoGroupWindow time.Duration     `mapstructure:"undo_group_window"`
	NoticeTimeout   time.Duration     `mapstructure:"notice_timeout"`
	LogFile         string            `mapstructure:"log_file"`
	Debug           bool              `mapstructure:"debug"`
	Bindings        map[string]string `mapstructure:"keymap"`

	// Keymap is Bindings parsed over the defaults.
	Keymap Keymap `mapstructure:"-"`
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("theme", "default")
	v.SetDefault("theme_file", "")
	v.SetDefault("languages", "")
	v.SetDefault("tab_width", 4)
	v.SetDefault("scroll_margin", 3)
	v.SetDefault("line_numbers", false)
	v.SetDefault("word_wrap", false)
	v.SetDefault("show_whitespace", false)
	v.SetDefault("readonly", false)
	v.SetDefault("undo_capacity", 1000)
	v.SetDefault("undo_group_window", time.Second)
	v.SetDefault("notice_timeout", 4*time.Second)
	v.SetDefault("log_file", "")
	v.SetDefault("debug", false)
}

// NewViper returns a viper instance with defaults applied and WRAPEDIT_*
// environment overrides enabled. Command-line flags are bound onto it by
// the caller.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("WRAPEDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	applyDefaults(v)
	return v
}

// Default returns a Config with default values and key mappings.
func Default() *Config {
	cfg, _ := Load("")
	return cfg
}

// DefaultPath is ~/.config/wrapedit/config.yaml, or "" when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "wrapedit", "config.yaml")
}

// Load loads configuration from the provided path. If the file does not
// exist, defaults are returned.
func Load(path string) (*Config, error) {
	return LoadWith(NewViper(), path)
}

// LoadWith reads path into v and decodes the result. Values already set on
// v (flags, environment) take precedence over the file.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.Keymap = DefaultKeymap()
	for cmd, binding := range cfg.Bindings {
		if err := cfg.Keymap.Bind(cmd, binding); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.TabWidth < 1 || c.TabWidth > 16 {
		return fmt.Errorf("tab_width must be between 1 and 16, got %d", c.TabWidth)
	}
	if c.ScrollMargin < 0 {
		return fmt.Errorf("scroll_margin must be >= 0, got %d", c.ScrollMargin)
	}
	if c.UndoCapacity < 1 {
		return fmt.Errorf("undo_capacity must be >= 1, got %d", c.UndoCapacity)
	}
	if c.UndoGroupWindow < 0 {
		return fmt.Errorf("undo_group_window must be >= 0, got %s", c.UndoGroupWindow)
	}
	return nil
}

// ResolveTheme returns the theme file when one is configured, otherwise the
// named built-in.
func (c *Config) ResolveTheme() (Theme, error) {
	if c.ThemeFile != "" {
		return ImportTheme(c.ThemeFile)
	}
	t, ok := BuiltinTheme(c.Theme)
	if !ok {
		return DefaultTheme(), fmt.Errorf("unknown theme %q", c.Theme)
	}
	return t, nil
}
