package logging

import (
	"io"
	"log/slog"
	"os"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 7
)

// OutputConfig selects where JSON logs go. An empty File means Fallback.
// Rotation parameters follow lumberjack semantics.
type OutputConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	Fallback   io.Writer
}

// Open returns the log destination and a function releasing it.
func (c OutputConfig) Open() (io.Writer, func() error) {
	if c.File == "" {
		w := c.Fallback
		if w == nil {
			w = os.Stdout
		}

		return w, func() error { return nil }
	}

	l := &lj.Logger{
		Filename:   c.File,
		MaxSize:    valOr(c.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: valOr(c.MaxBackups, DefaultMaxBackups),
		MaxAge:     valOr(c.MaxAgeDays, DefaultMaxAgeDays),
		Compress:   c.Compress,
	}

	return l, l.Close
}

// New builds the program logger the same way for every command.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewEnhancedHandler(
		slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		}),
	)).With(NewProgramAttr())
}

func valOr(v, def int) int {
	if v <= 0 {
		return def
	}

	return v
}
