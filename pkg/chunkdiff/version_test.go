package chunkdiff

import (
	"strings"
	"testing"
)

// TestVersionFormat tests that the version string is well-formed.
func TestVersionFormat(t *testing.T) {
	if Version == "" {
		t.Fatal("empty version string")
	} else if strings.Contains(Version, " ") {
		t.Error("version string contains spaces:", Version)
	} else if strings.Count(strings.SplitN(Version, "-", 2)[0], ".") != 2 {
		t.Error("version string is not of the form major.minor.patch:", Version)
	}
}
