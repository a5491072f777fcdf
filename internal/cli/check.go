package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/deb822/pkg/config"
)

func newCheckCommand() *cobra.Command {
	var cfg config.Config
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report lines that are not valid deb822",
		Long: `Parse deb822 files and report every line that could not be parsed.

Directories are searched for common deb822 file names (control, copyright,
*.dsc, *.changes, *.sources, Packages, Release, ...). Use --pattern to
choose other names.`,
		Example: `  deb822 check                      # Check the current directory
  deb822 check debian/control       # Check a single file
  deb822 check --format json .      # Output as JSON for CI`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(cmd, args, &cfg, flags, runPlan{
				exit: func(*config.Config) ExitOptions {
					return ExitOptions{FailOnSyntaxErrors: true}
				},
			})
		},
	}

	addRunFlags(cmd, &cfg, flags, false)

	return cmd
}
