// Package logs writes structured editor events as JSON lines to a rotating
// log file. A disabled or nil Logger discards everything.
package logs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger emits named events with arbitrary fields.
type Logger struct {
	log  *slog.Logger
	file *lumberjack.Logger
}

// Options controls where and how much is logged.
type Options struct {
	Path  string
	Debug bool
}

// New returns a logger writing to opts.Path. An empty path returns a
// disabled logger.
func New(opts Options) *Logger {
	if opts.Path == "" {
		return &Logger{}
	}
	if dir := filepath.Dir(opts.Path); dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}
	w := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{log: slog.New(h), file: w}
}

// NewFromEnv returns a logger if WRAPEDIT_LOG is set to a truthy value or
// WRAPEDIT_LOG_FILE names a file. Otherwise it returns a disabled logger.
// When enabled and no file is specified, it writes to ./wrapedit.log.
func NewFromEnv() *Logger {
	lf := os.Getenv("WRAPEDIT_LOG_FILE")
	v := os.Getenv("WRAPEDIT_LOG")
	enabled := lf != "" || (v != "" && v != "0" && v != "false")
	if !enabled {
		return &Logger{}
	}
	if lf == "" {
		lf = filepath.Join(".", "wrapedit.log")
	}
	return New(Options{Path: lf, Debug: v == "debug"})
}

// Enabled reports whether events are written anywhere.
func (l *Logger) Enabled() bool { return l != nil && l.log != nil }

// Close flushes and closes the underlying file if enabled.
func (l *Logger) Close() {
	if l == nil || l.file == nil {
		return
	}
	_ = l.file.Close()
}

// Event writes an info record with the event name and fields.
// Common fields: key, rune, modifiers, action, cursor, file, bytes.
func (l *Logger) Event(event string, fields map[string]any) {
	l.emit(slog.LevelInfo, event, fields)
}

// Debug writes a debug record; it is dropped unless the logger was created
// with Debug set.
func (l *Logger) Debug(event string, fields map[string]any) {
	l.emit(slog.LevelDebug, event, fields)
}

// Error writes an error record carrying err under "error".
func (l *Logger) Error(event string, err error, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	merged := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	if err != nil {
		merged["error"] = err.Error()
	}
	l.emit(slog.LevelError, event, merged)
}

func (l *Logger) emit(level slog.Level, event string, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	ctx := context.Background()
	if !l.log.Enabled(ctx, level) {
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys)+1)
	attrs = append(attrs, slog.String("event", event))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	l.log.LogAttrs(ctx, level, event, attrs...)
}
