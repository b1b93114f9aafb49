package configuration

import (
	"github.com/dustin/go-humanize"
)

// ByteSize is a uint64 value that supports unmarshalling from both
// human-friendly string representations and numeric representations. It can be
// cast to a uint64 value, where it represents a byte count.
type ByteSize uint64

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText. It is used
// both when loading YAML configuration and when parsing command line chunk
// sizes.
func (s *ByteSize) UnmarshalText(textBytes []byte) error {
	// Parse and store the value.
	value, err := humanize.ParseBytes(string(textBytes))
	if err != nil {
		return err
	}
	*s = ByteSize(value)

	// Success.
	return nil
}

// String provides a human-friendly representation of the size.
func (s ByteSize) String() string {
	return humanize.IBytes(uint64(s))
}
