package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deb822/internal/logging"
	"github.com/yaklabco/deb822/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// defaultConfigFile is the project configuration file written by init.
const defaultConfigFile = ".deb822.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new deb822 configuration file",
		Long: `Create a new .deb822.yml configuration file in the current directory.
The file sets the layout of text written by edits, strict mode and
backups. Discovery searches upward from the working directory, so a file
at the root of a packaging repository covers every directory below it.`,
		Example: `  deb822 init                        # Create a commented .deb822.yml
  deb822 init --full                 # Write every setting with its default
  deb822 init --output custom.yml    # Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Write every setting with its default value")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .deb822.yml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.FromContext(commandContext(cmd))

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultConfigFile
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", outputPath)
	logger.Debug("created configuration file", logging.FieldPath, absPath, "full", flags.full)

	return nil
}
