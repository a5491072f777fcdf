// Package cli provides the Cobra command structure for deb822.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deb822/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root deb822 command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "deb822",
		Short: "Read and edit Debian control files without losing formatting",
		Long: `deb822 reads and edits files in the Debian control format (deb822):
debian/control, debian/copyright, .dsc, .changes, APT .sources and more.

Edits touch only the bytes they change. Comments, blank lines, field order,
continuation indentation and unparseable lines are all kept as they are.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(commandContext(cmd), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	// Reading commands.
	rootCmd.AddCommand(newGetCommand())
	rootCmd.AddCommand(newFilterCommand())
	rootCmd.AddCommand(newDumpCommand())

	// Multi-file commands.
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newFmtCommand())
	rootCmd.AddCommand(newSetCommand())
	rootCmd.AddCommand(newRmCommand())
	rootCmd.AddCommand(newRenameCommand())
	rootCmd.AddCommand(newAppendCommand())

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
