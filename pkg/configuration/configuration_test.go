package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mutagen-io/chunkdiff/pkg/logging"
)

// configurationTestCase describes a configuration loading test.
type configurationTestCase struct {
	// contents are the file contents. If empty, no file is created.
	contents string
	// fail indicates whether or not loading is expected to fail.
	fail bool
	// expected is the expected configuration if loading succeeds.
	expected Configuration
}

func (c configurationTestCase) run(t *testing.T) {
	// Compute the path and write the file if necessary.
	path := filepath.Join(t.TempDir(), ".chunkdiff.yml")
	if c.contents != "" {
		if err := os.WriteFile(path, []byte(c.contents), 0600); err != nil {
			t.Fatal("unable to write configuration file:", err)
		}
	}

	// Attempt to load.
	configuration, err := Load(path)
	if c.fail {
		if err == nil {
			t.Error("configuration loading succeeded unexpectedly")
		}
		return
	} else if err != nil {
		t.Fatal("unable to load configuration:", err)
	}

	// Verify the result.
	if *configuration != c.expected {
		t.Errorf("configuration mismatch: %+v != %+v", *configuration, c.expected)
	}
}

func TestLoadMissing(t *testing.T) {
	configurationTestCase{expected: *Default()}.run(t)
}

func TestLoadComplete(t *testing.T) {
	configurationTestCase{
		contents: "chunkSize: 64\nlogLevel: debug\ncolor: never\n",
		expected: Configuration{64, logging.LevelDebug, ColorModeNever},
	}.run(t)
}

func TestLoadHumanChunkSize(t *testing.T) {
	configurationTestCase{
		contents: "chunkSize: 4 KiB\n",
		expected: Configuration{4096, logging.LevelWarn, ColorModeAuto},
	}.run(t)
}

func TestLoadZeroChunkSize(t *testing.T) {
	configurationTestCase{contents: "chunkSize: 0\n", fail: true}.run(t)
}

func TestLoadInvalidColor(t *testing.T) {
	configurationTestCase{contents: "color: sometimes\n", fail: true}.run(t)
}

func TestLoadInvalidLogLevel(t *testing.T) {
	configurationTestCase{contents: "logLevel: verbose\n", fail: true}.run(t)
}

func TestLoadUnknownField(t *testing.T) {
	configurationTestCase{contents: "ignore: [\"*.o\"]\n", fail: true}.run(t)
}

func TestByteSizeString(t *testing.T) {
	if s := ByteSize(4096).String(); s != "4.0 KiB" {
		t.Error("unexpected byte size representation:", s)
	}
}
