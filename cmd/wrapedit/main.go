// Command wrapedit is a terminal text editor with soft wrapping, syntax
// highlighting and multiple buffers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"example.com/wrapedit/internal/app"
	"example.com/wrapedit/pkg/config"
	"example.com/wrapedit/pkg/editor"
	"example.com/wrapedit/pkg/logs"
	"example.com/wrapedit/pkg/plugins"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func main() {
	if err := newCLI(nil).command().Execute(); err != nil {
		os.Exit(1)
	}
}

// cli carries the flag state of one invocation.
type cli struct {
	v          *viper.Viper
	configPath string
	// newScreen replaces the terminal when set.
	newScreen func() (tcell.Screen, error)
}

func newCLI(newScreen func() (tcell.Screen, error)) *cli {
	return &cli{v: config.NewViper(), newScreen: newScreen}
}

func (c *cli) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wrapedit [files...]",
		Short: "Terminal text editor",
		Long: `wrapedit edits one or more files in the terminal.

Files that do not exist are created on first save. Settings are read from
~/.config/wrapedit/config.yaml, WRAPEDIT_* environment variables and flags,
in increasing order of precedence.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.run(cmd.Context(), args)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrapedit: %v\n", err)
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&c.configPath, "config", config.DefaultPath(), "config file path")
	f.String("theme", "", "color theme name")
	f.String("theme-file", "", "YAML theme file")
	f.String("languages", "", "language table JSON file")
	f.Int("tab-width", 0, "tab stop width")
	f.Bool("wrap", false, "soft-wrap long lines")
	f.Bool("line-numbers", false, "show the line number gutter")
	f.Bool("whitespace", false, "show tabs and spaces")
	f.Bool("readonly", false, "open buffers read-only")
	f.String("log-file", "", "write a JSON event log to this file")
	f.Bool("debug", false, "log key and prompt events")

	for key, flag := range map[string]string{
		"theme":           "theme",
		"theme_file":      "theme-file",
		"languages":       "languages",
		"tab_width":       "tab-width",
		"word_wrap":       "wrap",
		"line_numbers":    "line-numbers",
		"show_whitespace": "whitespace",
		"readonly":        "readonly",
		"log_file":        "log-file",
		"debug":           "debug",
	} {
		_ = c.v.BindPFlag(key, f.Lookup(flag))
	}
	return cmd
}

// config resolves defaults, the config file, environment and flags.
func (c *cli) config() (*config.Config, error) {
	return config.LoadWith(c.v, c.configPath)
}

func (c *cli) run(ctx context.Context, files []string) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	log := logs.NewFromEnv()
	if cfg.LogFile != "" {
		log = logs.New(logs.Options{Path: cfg.LogFile, Debug: cfg.Debug})
	}
	defer log.Close()

	ed, err := newEditor(cfg, log, files)
	if err != nil {
		return err
	}
	r := app.New(ed, cfg, log)
	if c.newScreen != nil {
		s, err := c.newScreen()
		if err != nil {
			return err
		}
		r.Screen = s
		defer r.Fini()
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := r.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// newEditor builds the editor and opens files in order. The first file
// keeps focus.
func newEditor(cfg *config.Config, log *logs.Logger, files []string) (*editor.Editor, error) {
	var langs *plugins.LanguageConfig
	if cfg.Languages != "" {
		var err error
		if langs, err = plugins.LoadLanguageConfig(cfg.Languages); err != nil {
			log.Error("languages.error", err, map[string]any{"file": cfg.Languages})
		}
	}
	ed := editor.New(editor.Options{
		TabWidth:     cfg.TabWidth,
		WordWrap:     cfg.WordWrap,
		Margin:       cfg.ScrollMargin,
		UndoCapacity: cfg.UndoCapacity,
		GroupWindow:  groupWindow(cfg.UndoGroupWindow),
		ReadOnly:     cfg.ReadOnly,
		Highlighters: plugins.NewDefaultManager(langs),
		Clipboard:    editor.SystemClipboard{},
		Logger:       log,
	})
	for _, path := range files {
		if _, err := ed.Open(path); err != nil {
			return nil, err
		}
	}
	if len(files) > 1 {
		ed.Next()
	}
	return ed, nil
}

// groupWindow maps the configured window onto editor.Options, where zero
// means the default. A configured zero turns merging off.
func groupWindow(d time.Duration) time.Duration {
	if d == 0 {
		return -1
	}
	return d
}
