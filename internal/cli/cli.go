// Package cli implements the tagsheet command-line interface.
//
// # Commands
//
//   - labels: lay tag images out on an adhesive label sheet and write a PDF
//   - render: capture occurrence tags from the web site as PNG images
//   - inspect: list the images and cut guides found in a label PDF
//   - profile: show the effective sheet geometry and printer presets
//
// # Logging
//
// All commands log to stderr through charmbracelet/log and support
// --verbose (-v) for debug output. The logger travels in the command's
// context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/porticus-lab/tagsheet/internal/buildinfo"
)

const appName = "tagsheet"

// NewRootCommand builds the command tree. Logs go to logOut.
func NewRootCommand(logOut io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           appName,
		Short:         "Tagsheet prints occurrence tags on adhesive label sheets",
		Long:          `Tagsheet captures occurrence tag pages as PNG images and lays them out on A4 adhesive label sheets, correcting for the registration error of the printer.`,
		Version:       buildinfo.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logOut, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newLabelsCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newProfileCmd())

	return root
}

// Execute runs the command line with args and returns the first error.
func Execute(ctx context.Context, args []string, logOut io.Writer) error {
	root := NewRootCommand(logOut)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// addProfileFlag registers the --profile flag shared by several commands.
func addProfileFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVar(path, "profile", "", "TOML sheet profile (default: built-in DECAdry DLW1736)")
}
