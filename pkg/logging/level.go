package logging

import (
	"github.com/pkg/errors"
)

// Level represents a log level. Levels are ordered so that each level includes
// everything logged at the levels below it.
type Level uint

const (
	// LevelDisabled disables logging entirely.
	LevelDisabled Level = iota
	// LevelError logs only fatal errors.
	LevelError
	// LevelWarn logs fatal and non-fatal errors.
	LevelWarn
	// LevelInfo additionally logs basic progress, such as which files are
	// being processed.
	LevelInfo
	// LevelDebug additionally logs per-file statistics.
	LevelDebug
	// LevelTrace additionally logs every chunk match.
	LevelTrace
)

// NameToLevel converts a string-based representation of a log level to the
// appropriate Level value. It returns a boolean indicating whether or not the
// conversion was valid. If the name is invalid, LevelDisabled is returned.
func NameToLevel(name string) (Level, bool) {
	switch name {
	case "disabled":
		return LevelDisabled, true
	case "error":
		return LevelError, true
	case "warn":
		return LevelWarn, true
	case "info":
		return LevelInfo, true
	case "debug":
		return LevelDebug, true
	case "trace":
		return LevelTrace, true
	default:
		return LevelDisabled, false
	}
}

// String provides a human-readable representation of a log level.
func (l Level) String() string {
	switch l {
	case LevelDisabled:
		return "disabled"
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.MarshalText.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText.
func (l *Level) UnmarshalText(text []byte) error {
	level, ok := NameToLevel(string(text))
	if !ok {
		return errors.Errorf("unknown log level: %s", text)
	}
	*l = level
	return nil
}
