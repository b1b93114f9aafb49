package filesystem

import (
	"path/filepath"
	"testing"
)

// TestGlobalConfigurationPath tests that GlobalConfigurationPath succeeds and
// returns a path ending in the configuration file name.
func TestGlobalConfigurationPath(t *testing.T) {
	if path, err := GlobalConfigurationPath(); err != nil {
		t.Fatal("unable to compute global configuration path:", err)
	} else if filepath.Base(path) != GlobalConfigurationName {
		t.Error("unexpected global configuration path:", path)
	}
}
