package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mutagen-io/chunkdiff/cmd"
	"github.com/mutagen-io/chunkdiff/pkg/chunkdiff"
	"github.com/mutagen-io/chunkdiff/pkg/configuration"
	"github.com/mutagen-io/chunkdiff/pkg/delta"
	"github.com/mutagen-io/chunkdiff/pkg/filesystem"
	"github.com/mutagen-io/chunkdiff/pkg/logging"
	"github.com/mutagen-io/chunkdiff/pkg/must"
	"github.com/mutagen-io/chunkdiff/pkg/report"
)

// loadConfiguration loads the configuration from the path specified on the
// command line, or from the global configuration path if none was specified.
func loadConfiguration() (*configuration.Configuration, error) {
	path := rootConfiguration.config
	if path == "" {
		var err error
		if path, err = filesystem.GlobalConfigurationPath(); err != nil {
			return nil, errors.Wrap(err, "unable to compute configuration path")
		}
	}
	return configuration.Load(path)
}

// resolveLogLevel determines the effective log level. Sources are consulted in
// increasing order of precedence: configuration, environment, debug mode, and
// finally the command line.
func resolveLogLevel(configured logging.Level, environment string, debug bool, flag *logLevelFlag) (logging.Level, error) {
	level := configured
	if environment != "" {
		l, ok := logging.NameToLevel(environment)
		if !ok {
			return 0, errors.Errorf("invalid log level in %s: %s", chunkdiff.LogLevelEnvironmentVariable, environment)
		}
		level = l
	}
	if debug && level < logging.LevelDebug {
		level = logging.LevelDebug
	}
	if flag.set {
		level = flag.level
	}
	return level, nil
}

// resolveColor determines whether or not output should be colorized.
func resolveColor(mode configuration.ColorMode, terminal bool) bool {
	switch mode {
	case configuration.ColorModeAlways:
		return true
	case configuration.ColorModeNever:
		return false
	default:
		return terminal
	}
}

// isTerminal returns whether or not the specified file is a terminal.
func isTerminal(file *os.File) bool {
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// parseChunkSize parses a chunk size specification. Human-friendly sizes are
// supported.
func parseChunkSize(specification string) (uint64, error) {
	var size configuration.ByteSize
	if err := size.UnmarshalText([]byte(specification)); err != nil {
		return 0, errors.Wrap(err, "unable to parse chunk size")
	} else if size == 0 {
		return 0, errors.New("chunk size must be non-zero")
	}
	return uint64(size), nil
}

// describeFailure converts errors from the delta package into user-facing
// messages. Other errors are returned unmodified.
func describeFailure(err error, path string) error {
	if errors.Is(err, delta.ErrInsufficientData) {
		return errors.Errorf("file %s must contain at least 2 chunks", path)
	}
	var ioErr *delta.IOError
	if errors.As(err, &ioErr) {
		cause := ioErr.Err
		var pathErr *os.PathError
		if errors.As(cause, &pathErr) {
			cause = pathErr.Err
		}
		return errors.Errorf("file/path %s: %v", path, cause)
	}
	return err
}

// diff computes and reports the delta of target against baseline, writing the
// report to output. The target is opened once and the same handle is used both
// for alignment and for extracting the spans shown in the report.
func diff(output io.Writer, baseline, target string, chunkSize uint64, colorize bool, logger *logging.Logger) error {
	// Create the engine.
	engine := delta.NewEngine(chunkSize, logger.Sublogger("delta"))

	// Fingerprint the baseline.
	logger.Infof("Fingerprinting %s with chunk size %d", baseline, chunkSize)
	list, err := engine.FingerprintFile(baseline)
	if err != nil {
		return describeFailure(err, baseline)
	}

	// Open the target and defer its closure.
	file, err := os.Open(target)
	if err != nil {
		return describeFailure(&delta.IOError{Op: "open", Path: target, Err: err}, target)
	}
	defer must.Close(file, logger)
	metadata, err := file.Stat()
	if err != nil {
		return describeFailure(&delta.IOError{Op: "stat", Path: target, Err: err}, target)
	}

	// Align the target.
	logger.Infof("Aligning %s", target)
	result, err := engine.Delta(list, file, metadata.Size())
	if err != nil {
		return describeFailure(err, target)
	}

	// Render the report.
	if err := report.Render(output, result, file, report.Options{Color: colorize}); err != nil {
		return errors.Wrap(err, "unable to render report")
	}

	// Print a summary if requested.
	if rootConfiguration.summary {
		if err := report.Summarize(output, result); err != nil {
			return errors.Wrap(err, "unable to print summary")
		}
	}

	// Export the delta if requested.
	if rootConfiguration.output != "" {
		if err := report.Export(rootConfiguration.output, result, logger); err != nil {
			return errors.Wrap(err, "unable to export delta")
		}
		logger.Infof("Exported delta to %s", rootConfiguration.output)
	}

	// Success.
	return nil
}

func rootMain(command *cobra.Command, arguments []string) error {
	// Load configuration.
	config, err := loadConfiguration()
	if err != nil {
		return err
	}

	// Set up colorization. This affects logging and error output as well as
	// the report.
	mode := config.Color
	if rootConfiguration.color.mode != "" {
		mode = rootConfiguration.color.mode
	}
	colorize := resolveColor(mode, isTerminal(os.Stdout))
	color.NoColor = !colorize

	// Set up logging.
	level, err := resolveLogLevel(
		config.LogLevel,
		os.Getenv(chunkdiff.LogLevelEnvironmentVariable),
		chunkdiff.DebugEnabled,
		&rootConfiguration.logLevel,
	)
	if err != nil {
		return err
	}
	logger := logging.NewLogger(level, os.Stderr)

	// Determine the chunk size.
	chunkSize := uint64(config.ChunkSize)
	if len(arguments) == 3 {
		if chunkSize, err = parseChunkSize(arguments[2]); err != nil {
			command.Usage()
			return err
		}
	}

	// Perform the diff.
	return diff(color.Output, arguments[0], arguments[1], chunkSize, colorize, logger)
}

var rootCommand = &cobra.Command{
	Use:   "chunkdiff <baseline> <target> [<chunk-size>]",
	Short: "Compute a content-based delta between two files",
	Long: `chunkdiff splits a baseline file into fixed-size chunks, fingerprints them, and
scans a target file byte by byte to locate each chunk, reporting the bytes that
had to be skipped to recover alignment.

Paths that collide with a subcommand name (such as "version") can be passed
after "--", which ends flag and subcommand parsing.`,
	Example: `  chunkdiff old.bin new.bin
  chunkdiff old.bin new.bin 4KiB
  chunkdiff -- version other.bin`,
	Args: cobra.RangeArgs(2, 3),
	Run:  cmd.Mainify(rootMain),
}

var rootConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// config is the path of the configuration file to load.
	config string
	// logLevel is the log level override.
	logLevel logLevelFlag
	// color is the color mode override.
	color colorModeFlag
	// output is the path at which to export the delta as YAML.
	output string
	// summary indicates whether or not a summary should be printed.
	summary bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := rootCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	cmd.DisableAlphabeticalFlagSorting(rootCommand)

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")

	// Wire up configuration and output flags.
	flags.StringVarP(&rootConfiguration.config, "config", "c", "", "Specify the configuration file path")
	flags.VarP(&rootConfiguration.logLevel, "log-level", "l", "Set the log level (disabled|error|warn|info|debug|trace)")
	flags.Var(&rootConfiguration.color, "color", "Set the color mode (auto|always|never)")
	flags.StringVarP(&rootConfiguration.output, "output", "o", "", "Export the delta as YAML to the specified path")
	flags.BoolVarP(&rootConfiguration.summary, "summary", "s", false, "Print a summary of the delta")

	// Register commands.
	rootCommand.AddCommand(versionCommand)
}

func main() {
	// Execute the root command. Cobra reports its own errors.
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
