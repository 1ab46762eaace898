package supervisor

import (
	"fmt"
	"io"
	"log"
)

// Logger is the supervisor's one logging sink, threaded into host bindings
// (as the interp.Logger a running program's console/system.log writes
// through) and used directly for the supervisor's own lifecycle messages
// (startup, checkpoint, shutdown, signal). The example corpus carries no
// structured logging library anywhere, so a plain stdlib *log.Logger is the
// ecosystem-faithful choice, not a deviation from it.
type Logger struct {
	std *log.Logger
}

// NewLogger builds a Logger writing timestamped lines to w.
func NewLogger(w io.Writer) *Logger {
	return &Logger{std: log.New(w, "", log.LstdFlags)}
}

// Printf satisfies interp.Logger, the interface host bindings' console/
// system.log calls are written through.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.std.Printf(format, args...)
}

// Errorf is Printf's counterpart for the supervisor's own error-path
// lifecycle messages, prefixed so they stand out in a shared log stream.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.std.Print("error: " + fmt.Sprintf(format, args...))
}
