// Package logging builds the zerolog loggers used by the fonoteca binaries.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timeFormat = "15:04:05"

// Options configures a logger
type Options struct {
	// Level is a zerolog level name; empty means info
	Level string

	// File is a log file path rotated by lumberjack; empty disables file output
	File string

	// Console receives human readable output; nil disables console output.
	// The TUI leaves it nil since anything written to the terminal would
	// corrupt the screen.
	Console io.Writer
}

// Logger is a configured zerolog logger plus the file it may hold open
type Logger struct {
	zerolog.Logger
	file *lumberjack.Logger
}

// New creates a logger writing to the configured destinations. With no
// destination at all the logger discards everything.
func New(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var writers []io.Writer
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        opts.Console,
			TimeFormat: timeFormat,
		})
	}

	l := &Logger{}
	if opts.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		writers = append(writers, l.file)
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		out = io.Discard
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	l.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return l, nil
}

// NewCLI creates a logger for command line use: console output on stderr,
// stdout is reserved for command results.
func NewCLI(level, file string) (*Logger, error) {
	return New(Options{Level: level, File: file, Console: os.Stderr})
}

// Close flushes and closes the log file, if any
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// ParseLevel converts a level name to a zerolog level
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
