package encoding

import (
	"gopkg.in/yaml.v2"

	"github.com/mutagen-io/chunkdiff/pkg/logging"
)

// LoadAndUnmarshalYAML loads data from the specified path and decodes it into
// the specified structure. Unknown fields are rejected.
func LoadAndUnmarshalYAML(path string, value interface{}) error {
	return LoadAndUnmarshal(path, func(data []byte) error {
		return yaml.UnmarshalStrict(data, value)
	})
}

// MarshalAndSaveYAML encodes the specified value as YAML and saves it
// atomically to the specified path.
func MarshalAndSaveYAML(path string, value interface{}, logger *logging.Logger) error {
	return MarshalAndSave(path, logger, func() ([]byte, error) {
		return yaml.Marshal(value)
	})
}
