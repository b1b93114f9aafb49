package encoding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func TestLoadAndUnmarshalNonExistentPath(t *testing.T) {
	if !os.IsNotExist(LoadAndUnmarshal("/this/does/not/exist", nil)) {
		t.Error("expected LoadAndUnmarshal to pass through non-existence errors")
	}
}

func TestLoadAndUnmarshalDirectory(t *testing.T) {
	if LoadAndUnmarshal(t.TempDir(), nil) == nil {
		t.Error("expected LoadAndUnmarshal error when loading directory")
	}
}

func TestLoadAndUnmarshalUnmarshalFail(t *testing.T) {
	// Create an empty file.
	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatal("unable to create file:", err)
	}

	// Create a broken unmarshaling function.
	unmarshal := func(_ []byte) error {
		return errors.New("unmarshal failed")
	}

	// Attempt to load and unmarshal using a broken unmarshaling function.
	if LoadAndUnmarshal(path, unmarshal) == nil {
		t.Error("expected LoadAndUnmarshal to return an error")
	}
}

func TestMarshalAndSaveMarshalFail(t *testing.T) {
	// Create a broken marshaling function.
	marshal := func() ([]byte, error) {
		return nil, errors.New("marshal failed")
	}

	// Attempt to marshal and save using a broken marshaling function.
	path := filepath.Join(t.TempDir(), "file")
	if MarshalAndSave(path, nil, marshal) == nil {
		t.Error("expected MarshalAndSave to return an error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file created despite marshaling failure")
	}
}
