// Package console is the process-wide leveled logger.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Logger is the shared logger used by every package.
var Logger = New(os.Stderr)

// ConsoleLogger prints human readable lines through zerolog.
//
// DebugLevel above zero enables Debug output, below zero silences Info.
type ConsoleLogger struct {
	DebugLevel int

	mu  sync.Mutex
	log zerolog.Logger
}

// New returns a logger writing to w.
func New(w io.Writer) *ConsoleLogger {
	l := &ConsoleLogger{}
	l.SetOutput(w)
	return l
}

// SetOutput redirects the logger.
func (l *ConsoleLogger) SetOutput(w io.Writer) {
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: "2006/01/02 15:04:05",
	}

	l.mu.Lock()
	l.log = zerolog.New(out).With().Timestamp().Logger()
	l.mu.Unlock()
}

// Debug logs only when DebugLevel is positive.
func (l *ConsoleLogger) Debug(format string, args ...interface{}) {
	if l.DebugLevel <= 0 {
		return
	}
	l.emit(zerolog.DebugLevel, format, args)
}

// Info logs unless the logger is quiet.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	if l.DebugLevel < 0 {
		return
	}
	l.emit(zerolog.InfoLevel, format, args)
}

// Warn always logs.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.emit(zerolog.WarnLevel, format, args)
}

// Error always logs.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.emit(zerolog.ErrorLevel, format, args)
}

// Printf makes the logger usable wherever a Debugger is expected.
func (l *ConsoleLogger) Printf(format string, args ...interface{}) {
	l.Info(format, args...)
}

func (l *ConsoleLogger) emit(level zerolog.Level, format string, args []interface{}) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")

	l.mu.Lock()
	defer l.mu.Unlock()
	l.log.WithLevel(level).Msg(msg)
}
