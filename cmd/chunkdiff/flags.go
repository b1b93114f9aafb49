package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/mutagen-io/chunkdiff/pkg/configuration"
	"github.com/mutagen-io/chunkdiff/pkg/logging"
)

// Ensure that flag values implement pflag.Value.
var (
	_ pflag.Value = &logLevelFlag{}
	_ pflag.Value = &colorModeFlag{}
)

// logLevelFlag is a pflag.Value that accepts log level names. It tracks
// whether or not it was explicitly set so that it only overrides other sources
// when specified.
type logLevelFlag struct {
	// level is the parsed level.
	level logging.Level
	// set indicates whether or not the flag was specified.
	set bool
}

// String implements pflag.Value.String.
func (f *logLevelFlag) String() string {
	if !f.set {
		return ""
	}
	return f.level.String()
}

// Set implements pflag.Value.Set.
func (f *logLevelFlag) Set(value string) error {
	level, ok := logging.NameToLevel(value)
	if !ok {
		return errors.Errorf("invalid log level: %s", value)
	}
	f.level = level
	f.set = true
	return nil
}

// Type implements pflag.Value.Type.
func (f *logLevelFlag) Type() string {
	return "level"
}

// colorModeFlag is a pflag.Value that accepts color modes.
type colorModeFlag struct {
	// mode is the parsed mode. It is empty if the flag wasn't specified.
	mode configuration.ColorMode
}

// String implements pflag.Value.String.
func (f *colorModeFlag) String() string {
	return string(f.mode)
}

// Set implements pflag.Value.Set.
func (f *colorModeFlag) Set(value string) error {
	mode := configuration.ColorMode(value)
	if !mode.IsValid() {
		return errors.Errorf("invalid color mode: %s", value)
	}
	f.mode = mode
	return nil
}

// Type implements pflag.Value.Type.
func (f *colorModeFlag) Type() string {
	return "mode"
}
