// Package configuration provides loading of the YAML-based global chunkdiff
// configuration file.
package configuration
