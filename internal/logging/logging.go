package logging

import (
	"io"
	"strings"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/cellwars/internal/config"
)

// Logger is a zerolog logger bound to its output. Close releases the log file.
type Logger struct {
	zerolog.Logger
	closer io.Closer
}

// Close flushes and closes the underlying log file
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ParseLevel maps a config level name onto zerolog, falling back to info
func ParseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// New builds the application logger. Output goes to a size-rotated file so
// that it never interleaves with the game screen.
func New(appName string, cfg config.LoggingConfig) *Logger {
	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    max(1, cfg.MaxSizeMB),
		MaxBackups: max(0, cfg.MaxBackups),
		MaxAge:     max(0, cfg.MaxAgeDays),
		Compress:   cfg.Compress,
	}
	return &Logger{
		Logger: NewWithWriter(appName, cfg, file),
		closer: file,
	}
}

// NewWithWriter builds a logger writing to w in the configured format
func NewWithWriter(appName string, cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	out := w
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("app", appName).
		Logger()
}
