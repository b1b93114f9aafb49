package configuration

import (
	"os"

	"github.com/pkg/errors"

	"github.com/mutagen-io/chunkdiff/pkg/delta"
	"github.com/mutagen-io/chunkdiff/pkg/encoding"
	"github.com/mutagen-io/chunkdiff/pkg/logging"
)

// ColorMode specifies when console output should be colorized.
type ColorMode string

const (
	// ColorModeAuto colorizes output only when it is a terminal.
	ColorModeAuto ColorMode = "auto"
	// ColorModeAlways always colorizes output.
	ColorModeAlways ColorMode = "always"
	// ColorModeNever never colorizes output.
	ColorModeNever ColorMode = "never"
)

// IsValid returns whether or not the color mode is one of the supported modes.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorModeAuto, ColorModeAlways, ColorModeNever:
		return true
	default:
		return false
	}
}

// Configuration is the global YAML configuration object type.
type Configuration struct {
	// ChunkSize is the default chunk size used when none is specified on the
	// command line. Human-friendly sizes (e.g. "4 KiB") are supported.
	ChunkSize ByteSize `yaml:"chunkSize"`
	// LogLevel is the default log level.
	LogLevel logging.Level `yaml:"logLevel"`
	// Color is the console colorization mode.
	Color ColorMode `yaml:"color"`
}

// Default returns the default configuration.
func Default() *Configuration {
	return &Configuration{
		ChunkSize: delta.DefaultChunkSize,
		LogLevel:  logging.LevelWarn,
		Color:     ColorModeAuto,
	}
}

// Load attempts to load a YAML-based global configuration file from the
// specified path, merging it over the default configuration. If the file
// doesn't exist, the default configuration is returned.
func Load(path string) (*Configuration, error) {
	// Create a configuration that we can decode into. Nothing will be modified
	// in this structure if the configuration file doesn't exist.
	result := Default()

	// Attempt to load the configuration from disk.
	if err := encoding.LoadAndUnmarshalYAML(path, result); err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "unable to load configuration")
		}
	}

	// Verify that the result is sane.
	if err := result.EnsureValid(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	// Success.
	return result, nil
}

// EnsureValid ensures that Configuration's invariants are respected.
func (c *Configuration) EnsureValid() error {
	if c.ChunkSize == 0 {
		return errors.New("chunk size must be non-zero")
	} else if !c.Color.IsValid() {
		return errors.Errorf("unknown color mode: %s", c.Color)
	}
	return nil
}
