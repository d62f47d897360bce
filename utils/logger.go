package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Level is the minimum severity a Logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a LOG_LEVEL value to a Level. Unknown values give LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

var levelColors = map[Level]*color.Color{
	LevelDebug: color.New(color.FgCyan),
	LevelInfo:  color.New(color.FgGreen),
	LevelWarn:  color.New(color.FgYellow),
	LevelError: color.New(color.FgRed),
}

// tag pads the plain name before coloring it, so escape codes do not
// count towards the column width.
func tag(lvl Level) string {
	return levelColors[lvl].Sprint(fmt.Sprintf("%-5s", levelNames[lvl]))
}

// Logger provides structured, leveled logging throughout the application.
type Logger struct {
	level Level
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
	debug *log.Logger
}

// NewLogger creates a new Logger writing to stdout/stderr at LevelDebug.
func NewLogger() *Logger {
	return newLogger(os.Stdout, os.Stderr, LevelDebug)
}

// NewLoggerTo sends every level to w. Used by tests and by callers that
// want to silence output with io.Discard.
func NewLoggerTo(w io.Writer, level Level) *Logger {
	return newLogger(w, w, level)
}

func newLogger(out, errOut io.Writer, level Level) *Logger {
	flags := 0
	return &Logger{
		level: level,
		info:  log.New(out, "", flags),
		warn:  log.New(out, "", flags),
		err:   log.New(errOut, "", flags),
		debug: log.New(out, "", flags),
	}
}

// SetLevel changes the minimum level emitted.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) emit(lg *log.Logger, lvl Level, format string, args ...any) {
	if lvl < l.level {
		return
	}
	lg.Printf("[%s] %s %s", l.timestamp(), tag(lvl), fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...any) {
	l.emit(l.info, LevelInfo, format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.emit(l.warn, LevelWarn, format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.emit(l.err, LevelError, format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.emit(l.debug, LevelDebug, format, args...)
}
