package chunkdiff

import (
	"os"
)

// LogLevelEnvironmentVariable is the environment variable that can be used to
// override the configured log level.
const LogLevelEnvironmentVariable = "CHUNKDIFF_LOG_LEVEL"

// DebugEnabled controls whether or not debugging is enabled. It is set
// automatically based on the CHUNKDIFF_DEBUG environment variable.
var DebugEnabled bool

func init() {
	// Check whether or not debugging should be enabled.
	DebugEnabled = os.Getenv("CHUNKDIFF_DEBUG") == "1"
}
