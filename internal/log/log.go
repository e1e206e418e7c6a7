// Package log configures the application-wide slog logger.
//
// Settings come from Options or the environment:
//   - PRISMAL_LOG_LEVEL=debug|info|warn|error
//   - PRISMAL_LOG_FORMAT=text|json
//   - PRISMAL_LOG_SOURCE=true|false
//   - PRISMAL_LOG_FILE=<path> (adds a rotating JSON file log)
//
// Init installs the result as slog.Default and as the prismal library logger.
package log

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gogpu/prismal"
)

// Options controls logger initialization.
// Defaults: info level, text format, no source, stderr only.
type Options struct {
	Level     string
	Format    string // "text" or "json"
	AddSource bool
	File      string

	// Writer receives console output. Nil means os.Stderr.
	Writer io.Writer
}

// Rotation settings for the file log.
const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

var (
	mu      sync.RWMutex
	current *slog.Logger
	file    *lumberjack.Logger
)

// L returns the application logger, initializing it from the environment on
// first use.
func L() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l != nil {
		return l
	}
	return Init(FromEnv())
}

// Init builds a logger from opts and installs it globally.
// A previously opened log file is closed.
func Init(opts Options) *slog.Logger {
	level := ParseLevel(opts.Level)
	hopts := &slog.HandlerOptions{Level: level, AddSource: opts.AddSource}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	var console slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		console = slog.NewJSONHandler(w, hopts)
	} else {
		console = slog.NewTextHandler(w, hopts)
	}

	handlers := []slog.Handler{console}
	var lj *lumberjack.Logger
	if path := strings.TrimSpace(opts.File); path != "" {
		lj = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
		handlers = append(handlers, slog.NewJSONHandler(lj, hopts))
	}

	var h slog.Handler = console
	if len(handlers) > 1 {
		h = Fanout(handlers...)
	}
	logger := slog.New(h).With(slog.String("app", "prismal"), slog.String("ver", prismal.Version))

	mu.Lock()
	old := file
	current, file = logger, lj
	mu.Unlock()
	if old != nil {
		_ = old.Close()
	}

	slog.SetDefault(logger)
	prismal.SetLogger(logger)
	return logger
}

// Close flushes and closes the rotating log file, if any.
func Close() error {
	mu.Lock()
	f := file
	file = nil
	mu.Unlock()
	if f == nil {
		return nil
	}
	return f.Close()
}

// FromEnv builds Options from PRISMAL_LOG_* variables.
func FromEnv() Options {
	return Options{
		Level:     getenv("PRISMAL_LOG_LEVEL", "info"),
		Format:    getenv("PRISMAL_LOG_FORMAT", "text"),
		AddSource: strings.EqualFold(getenv("PRISMAL_LOG_SOURCE", "false"), "true"),
		File:      os.Getenv("PRISMAL_LOG_FILE"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// WithComponent returns a logger with the component attribute set.
func WithComponent(name string) *slog.Logger {
	return L().With(slog.String("component", name))
}

// ParseLevel maps a level name to a slog.Level. Unknown names yield Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Fanout returns a handler that passes every record to each of handlers.
func Fanout(handlers ...slog.Handler) slog.Handler {
	return &fanout{hs: handlers}
}

type fanout struct{ hs []slog.Handler }

func (f *fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f.hs {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(f.hs))
	for i, h := range f.hs {
		hs[i] = h.WithAttrs(attrs)
	}
	return &fanout{hs: hs}
}

func (f *fanout) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(f.hs))
	for i, h := range f.hs {
		hs[i] = h.WithGroup(name)
	}
	return &fanout{hs: hs}
}
