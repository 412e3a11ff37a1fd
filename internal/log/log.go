// Package log sets up the process-wide slog logger. The TUI owns the
// terminal, so records always go to a rotating file; CLI commands can add
// a stderr handler for warnings.
package log

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/faaadelmr/noted/internal/version"
	lj "gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level  string
	Format string // "text" or "json"
	File   string // rotated; empty disables file logging
	Stderr bool   // also log warnings and errors to stderr
}

// Init builds the logger, installs it as slog.Default and returns it
// together with a closer for the file sink.
func Init(opts Options) (*slog.Logger, io.Closer) {
	lvl := ParseLevel(opts.Level)
	var handlers []slog.Handler
	var closer io.Closer = nopCloser{}

	if f := strings.TrimSpace(opts.File); f != "" {
		if err := os.MkdirAll(filepath.Dir(f), 0o755); err == nil {
			w := &lj.Logger{Filename: f, MaxSize: 5, MaxBackups: 3, MaxAge: 28, Compress: true}
			closer = w
			handlers = append(handlers, newHandler(w, opts.Format, lvl))
		}
	}
	if opts.Stderr {
		handlers = append(handlers, newHandler(os.Stderr, "text", slog.LevelWarn))
	}

	var h slog.Handler
	switch len(handlers) {
	case 0:
		h = slog.NewTextHandler(io.Discard, nil)
	case 1:
		h = handlers[0]
	default:
		h = fanout(handlers)
	}

	logger := slog.New(h).With(slog.String("app", "noted"), slog.String("ver", version.Version))
	slog.SetDefault(logger)
	return logger, closer
}

// With returns the default logger tagged with a component name.
func With(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}

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

func newHandler(w io.Writer, format string, lvl slog.Leveler) slog.Handler {
	o := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, o)
	}
	return slog.NewTextHandler(w, o)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
