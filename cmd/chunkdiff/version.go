package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mutagen-io/chunkdiff/cmd"
	"github.com/mutagen-io/chunkdiff/pkg/chunkdiff"
)

func versionMain(command *cobra.Command, arguments []string) error {
	// Print version information.
	fmt.Println(chunkdiff.Version)

	// Success.
	return nil
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run:   cmd.Mainify(versionMain),
}

var versionConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := versionCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	cmd.DisableAlphabeticalFlagSorting(versionCommand)

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&versionConfiguration.help, "help", "h", false, "Show help information")
}
