// Package logging строит slog логгеры клиента и сервера.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FieldComponent ключ атрибута с именем компонента
const FieldComponent = "component"

// Options описывает настройки логирования
type Options struct {
	Level      string // debug, info, warn, error
	Format     string // text или json
	File       string // путь к файлу; пустой - только stderr
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Stderr     bool // дублировать в stderr при записи в файл
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger from options. The returned closer releases the log file.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		w = rotator
		closer = rotator
		if opts.Stderr {
			w = io.MultiWriter(os.Stderr, rotator)
		}
	}

	return slog.New(NewHandler(w, opts.Format, level)), closer, nil
}

// NewHandler creates a text or json handler writing to w
func NewHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.NewTextHandler(w, handlerOpts)
}

// ParseLevel converts a level name to slog.Level. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// NewNop returns a logger that discards everything
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}
