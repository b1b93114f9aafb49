package filesystem

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	// TemporaryNamePrefix is the file name prefix to use for intermediate
	// temporary files created by chunkdiff.
	TemporaryNamePrefix = ".chunkdiff-temporary-"

	// GlobalConfigurationName is the name of the global chunkdiff
	// configuration file inside the user's home directory.
	GlobalConfigurationName = ".chunkdiff.yml"
)

// GlobalConfigurationPath returns the path of the YAML-based global
// configuration file. It does not verify that the file exists.
func GlobalConfigurationPath() (string, error) {
	// Compute the path to the user's home directory.
	homeDirectoryPath, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "unable to compute path to home directory")
	}

	// Success.
	return filepath.Join(homeDirectoryPath, GlobalConfigurationName), nil
}
