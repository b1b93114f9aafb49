package logging

import (
	"bytes"
	"strings"
	"testing"
)

// TestNilLogger tests that a nil logger can be used without panicking.
func TestNilLogger(t *testing.T) {
	var logger *Logger
	logger.Error("error")
	logger.Warnf("warning %d", 1)
	logger.Tracef("trace %d", 1)
	if logger.Sublogger("sub") != nil {
		t.Error("sublogger of nil logger is non-nil")
	}
	if logger.Level() != LevelDisabled {
		t.Error("nil logger is not disabled")
	}
}

// TestLevelFiltering tests that lines above the logger's level are dropped.
func TestLevelFiltering(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := NewLogger(LevelInfo, buffer)
	logger.Info("kept")
	logger.Debug("dropped")
	logger.Trace("dropped")
	output := buffer.String()
	if !strings.Contains(output, "kept") {
		t.Error("info line missing from output:", output)
	}
	if strings.Contains(output, "dropped") {
		t.Error("debug or trace line present in output:", output)
	}
}

// TestSubloggerPrefix tests that subloggers prefix their lines with their
// dotted names.
func TestSubloggerPrefix(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := NewLogger(LevelTrace, buffer).Sublogger("delta").Sublogger("scan")
	logger.Tracef("matched %d", 4)
	output := buffer.String()
	if !strings.Contains(output, "[delta.scan] matched 4") {
		t.Error("sublogger prefix missing from output:", output)
	}
}

// TestNameToLevel tests round-tripping of level names.
func TestNameToLevel(t *testing.T) {
	for _, level := range []Level{LevelDisabled, LevelError, LevelWarn, LevelInfo, LevelDebug, LevelTrace} {
		if parsed, ok := NameToLevel(level.String()); !ok {
			t.Error("unable to parse level name:", level)
		} else if parsed != level {
			t.Error("level mismatch:", parsed, "!=", level)
		}
	}
	if _, ok := NameToLevel("verbose"); ok {
		t.Error("invalid level name parsed successfully")
	}
}
