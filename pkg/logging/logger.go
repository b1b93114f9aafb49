package logging

import (
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"
)

// levelColors are the colors used for the level tag prepended to each line.
// They respect color.NoColor at the time of writing.
var levelColors = map[Level]*color.Color{
	LevelError: color.New(color.FgRed),
	LevelWarn:  color.New(color.FgYellow),
	LevelInfo:  color.New(color.FgGreen),
	LevelDebug: color.New(color.FgBlue),
	LevelTrace: color.New(color.FgMagenta),
}

// Logger is the main logger type. It has the novel property that it still
// functions if nil, but it doesn't log anything. It is safe for concurrent
// usage.
type Logger struct {
	// level is the maximum level that the logger will emit.
	level Level
	// output is the underlying standard logger.
	output *log.Logger
	// prefix is any prefix specified for the logger.
	prefix string
}

// NewLogger creates a new root logger that writes lines at or below the
// specified level to the specified writer.
func NewLogger(level Level, writer io.Writer) *Logger {
	return &Logger{
		level:  level,
		output: log.New(writer, "", log.LstdFlags),
	}
}

// Sublogger creates a new sublogger with the specified name.
func (l *Logger) Sublogger(name string) *Logger {
	// If the logger is nil, then the sublogger will be as well.
	if l == nil {
		return nil
	}

	// Compute the new prefix.
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}

	// Create the new logger.
	return &Logger{
		level:  l.level,
		output: l.output,
		prefix: prefix,
	}
}

// Level returns the logger's level. A nil logger is always disabled.
func (l *Logger) Level() Level {
	if l == nil {
		return LevelDisabled
	}
	return l.level
}

// enabled returns whether or not lines at the specified level are emitted.
func (l *Logger) enabled(level Level) bool {
	return l != nil && level <= l.level
}

// write is the internal logging method.
func (l *Logger) write(level Level, line string) {
	tag := levelColors[level].Sprintf("[%s]", level)
	if l.prefix != "" {
		line = fmt.Sprintf("%s [%s] %s", tag, l.prefix, line)
	} else {
		line = fmt.Sprintf("%s %s", tag, line)
	}
	l.output.Output(3, line)
}

// Error logs errors with semantics equivalent to fmt.Print.
func (l *Logger) Error(v ...interface{}) {
	if l.enabled(LevelError) {
		l.write(LevelError, fmt.Sprint(v...))
	}
}

// Errorf logs errors with semantics equivalent to fmt.Printf.
func (l *Logger) Errorf(format string, v ...interface{}) {
	if l.enabled(LevelError) {
		l.write(LevelError, fmt.Sprintf(format, v...))
	}
}

// Warn logs warnings with semantics equivalent to fmt.Print.
func (l *Logger) Warn(v ...interface{}) {
	if l.enabled(LevelWarn) {
		l.write(LevelWarn, fmt.Sprint(v...))
	}
}

// Warnf logs warnings with semantics equivalent to fmt.Printf.
func (l *Logger) Warnf(format string, v ...interface{}) {
	if l.enabled(LevelWarn) {
		l.write(LevelWarn, fmt.Sprintf(format, v...))
	}
}

// Info logs basic execution information with semantics equivalent to
// fmt.Print.
func (l *Logger) Info(v ...interface{}) {
	if l.enabled(LevelInfo) {
		l.write(LevelInfo, fmt.Sprint(v...))
	}
}

// Infof logs basic execution information with semantics equivalent to
// fmt.Printf.
func (l *Logger) Infof(format string, v ...interface{}) {
	if l.enabled(LevelInfo) {
		l.write(LevelInfo, fmt.Sprintf(format, v...))
	}
}

// Debug logs advanced execution information with semantics equivalent to
// fmt.Print.
func (l *Logger) Debug(v ...interface{}) {
	if l.enabled(LevelDebug) {
		l.write(LevelDebug, fmt.Sprint(v...))
	}
}

// Debugf logs advanced execution information with semantics equivalent to
// fmt.Printf.
func (l *Logger) Debugf(format string, v ...interface{}) {
	if l.enabled(LevelDebug) {
		l.write(LevelDebug, fmt.Sprintf(format, v...))
	}
}

// Trace logs low-level execution information with semantics equivalent to
// fmt.Print.
func (l *Logger) Trace(v ...interface{}) {
	if l.enabled(LevelTrace) {
		l.write(LevelTrace, fmt.Sprint(v...))
	}
}

// Tracef logs low-level execution information with semantics equivalent to
// fmt.Printf.
func (l *Logger) Tracef(format string, v ...interface{}) {
	if l.enabled(LevelTrace) {
		l.write(LevelTrace, fmt.Sprintf(format, v...))
	}
}
