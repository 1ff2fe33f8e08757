// Package logger is the leveled logger handed to bwstat's fetch, watch and
// snapshot code. Messages go to stderr so stdout stays clean for the
// statistics table.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// DebugEnv enables debug output when set to any value.
const DebugEnv = "BWSTAT_DEBUG"

// Logger takes printf-style messages at four levels.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

var verbose atomic.Bool

// SetVerbose turns debug output on for every env logger (--verbose).
func SetVerbose(on bool) {
	verbose.Store(on)
}

func debugEnabled() bool {
	return verbose.Load() || os.Getenv(DebugEnv) != ""
}

var (
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// envLogger prints "<prefix> [TAG] message" lines. Debug lines appear only
// when BWSTAT_DEBUG is set or verbose is on.
type envLogger struct {
	prefix string
	out    *log.Logger
}

// NewEnvLogger returns a stderr logger that prefixes every line, e.g.
// "[watch]".
func NewEnvLogger(prefix string) Logger {
	return NewWriterLogger(os.Stderr, prefix)
}

// NewWriterLogger is NewEnvLogger writing to w.
func NewWriterLogger(w io.Writer, prefix string) Logger {
	return &envLogger{prefix: prefix, out: log.New(w, "", log.LstdFlags)}
}

func (l *envLogger) emit(tag, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	switch {
	case tag != "" && l.prefix != "":
		l.out.Printf("%s %s %s", l.prefix, tag, msg)
	case tag != "":
		l.out.Printf("%s %s", tag, msg)
	case l.prefix != "":
		l.out.Printf("%s %s", l.prefix, msg)
	default:
		l.out.Print(msg)
	}
}

func (l *envLogger) Debug(format string, args ...interface{}) {
	if debugEnabled() {
		l.emit("", format, args...)
	}
}

func (l *envLogger) Info(format string, args ...interface{}) { l.emit("", format, args...) }
func (l *envLogger) Warn(format string, args ...interface{}) { l.emit(warnStyle.Render("WARN:"), format, args...) }
func (l *envLogger) Error(format string, args ...interface{}) {
	l.emit(errorStyle.Render("ERROR:"), format, args...)
}

type noopLogger struct{}

// Noop discards everything.
func Noop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// LogMessage is one message held by a BufferLogger.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger records messages in memory for tests.
type BufferLogger struct {
	Messages []LogMessage
}

func NewBufferLogger() *BufferLogger {
	return &BufferLogger{}
}

func (l *BufferLogger) add(level, format string, args []interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args) }

// HasLevel reports whether anything was logged at level.
func (l *BufferLogger) HasLevel(level string) bool {
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}
