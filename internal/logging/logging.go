package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the public logger instance accessible from all packages.
// It discards everything until Initialize is called.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

var fileWriter *lumberjack.Logger

// Options controls where logs go
type Options struct {
	Console    bool   // also log to stderr (watch and serve)
	Debug      bool   // log to the rotated file at debug level
	DebugFile  string // explicit log file path
	Dir        string // directory for the default log file
	Level      string // debug|info|warn|error for non-debug output
	MaxBackups int
	MaxSizeMB  int
}

// Initialize sets up the logger and returns the log file path ("" when not logging to a file)
func Initialize(opts Options) (string, error) {
	if os.Getenv("PRMONITOR_DEBUG") == "1" {
		opts.Debug = true
	}
	if envDebugFile := os.Getenv("PRMONITOR_DEBUG_FILE"); envDebugFile != "" && opts.DebugFile == "" {
		opts.DebugFile = envDebugFile
	}

	level := parseLevel(opts.Level)
	if opts.Debug {
		level = slog.LevelDebug
	}

	var handlers []slog.Handler
	logFilePath := ""

	if opts.Debug || opts.DebugFile != "" {
		logFilePath = opts.DebugFile
		if logFilePath == "" {
			logFilePath = filepath.Join(opts.Dir, "logs", "prmonitor.log")
		}
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
			return "", fmt.Errorf("failed to create log directory: %w", err)
		}

		fileWriter = &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     28, // days
		}
		handlers = append(handlers, tint.NewHandler(fileWriter, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}))
	}

	if opts.Console {
		noColor := !isatty.IsTerminal(os.Stderr.Fd()) || os.Getenv("NO_COLOR") != ""
		handlers = append(handlers, tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    noColor,
		}))
	}

	switch len(handlers) {
	case 0:
		Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	case 1:
		Logger = slog.New(handlers[0])
	default:
		Logger = slog.New(&fanoutHandler{handlers: handlers})
	}

	if logFilePath != "" {
		Logger.Info("Debug logging initialized", "log_file", logFilePath)
	}
	return logFilePath, nil
}

// Close flushes and closes the rotated log file, if any
func Close() error {
	if fileWriter != nil {
		return fileWriter.Close()
	}
	return nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fanoutHandler writes every record to all handlers
type fanoutHandler struct {
	handlers []slog.Handler
}

func (f *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range f.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (f *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: next}
}

func (f *fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		next[i] = h.WithGroup(name)
	}
	return &fanoutHandler{handlers: next}
}
