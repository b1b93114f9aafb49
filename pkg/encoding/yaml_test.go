package encoding

import (
	"os"
	"path/filepath"
	"testing"
)

// testMessageYAML is a test structure to use for encoding tests using YAML.
type testMessageYAML struct {
	Section struct {
		Name      string `yaml:"name"`
		ChunkSize uint64 `yaml:"chunkSize"`
	} `yaml:"section"`
}

const (
	// testMessageYAMLString is the YAML-encoded form of the YAML test data.
	testMessageYAMLString = `
section:
  name: "baseline"
  chunkSize: 64
`
	// testMessageYAMLName is the YAML test name.
	testMessageYAMLName = "baseline"
	// testMessageYAMLChunkSize is the YAML test chunk size.
	testMessageYAMLChunkSize = 64
)

// writeTestFile writes contents to a file in a temporary directory and returns
// its path.
func writeTestFile(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "test.yml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatal("unable to write data to temporary file:", err)
	}
	return path
}

// TestLoadAndUnmarshalYAML tests that loading and unmarshaling YAML data
// succeeds.
func TestLoadAndUnmarshalYAML(t *testing.T) {
	// Attempt to load and unmarshal.
	value := &testMessageYAML{}
	if err := LoadAndUnmarshalYAML(writeTestFile(t, testMessageYAMLString), value); err != nil {
		t.Fatal("LoadAndUnmarshalYAML failed:", err)
	}

	// Verify test values.
	if value.Section.Name != testMessageYAMLName {
		t.Error("test message name mismatch:", value.Section.Name, "!=", testMessageYAMLName)
	}
	if value.Section.ChunkSize != testMessageYAMLChunkSize {
		t.Error("test message chunk size mismatch:", value.Section.ChunkSize, "!=", testMessageYAMLChunkSize)
	}
}

// TestLoadAndUnmarshalYAMLUnknownField tests that unknown fields are rejected.
func TestLoadAndUnmarshalYAMLUnknownField(t *testing.T) {
	value := &testMessageYAML{}
	if LoadAndUnmarshalYAML(writeTestFile(t, "section:\n  color: red\n"), value) == nil {
		t.Error("expected unknown field to be rejected")
	}
}

// TestMarshalAndSaveYAML tests that saved YAML data can be loaded back.
func TestMarshalAndSaveYAML(t *testing.T) {
	// Create a value and save it.
	value := &testMessageYAML{}
	value.Section.Name = testMessageYAMLName
	value.Section.ChunkSize = testMessageYAMLChunkSize
	path := filepath.Join(t.TempDir(), "saved.yml")
	if err := MarshalAndSaveYAML(path, value, nil); err != nil {
		t.Fatal("MarshalAndSaveYAML failed:", err)
	}

	// Load it back and compare.
	loaded := &testMessageYAML{}
	if err := LoadAndUnmarshalYAML(path, loaded); err != nil {
		t.Fatal("LoadAndUnmarshalYAML failed:", err)
	} else if *loaded != *value {
		t.Error("loaded value does not match saved value")
	}
}
