package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deb822/internal/configloader"
	"github.com/yaklabco/deb822/internal/logging"
	"github.com/yaklabco/deb822/pkg/config"
)

// loadConfig resolves the configuration for cmd with flags layered on top.
// It also applies the configured log level unless --debug was given.
func loadConfig(cmd *cobra.Command, flagCfg *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(commandContext(cmd))

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    flagCfg,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrConfig, errors.Join(errors.New("failed to load configuration"), err))
	}

	cfg := loadResult.Config
	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		logging.SetLevel(cfg.LogLevel)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldSource, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldStrict, cfg.Strict,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldBackup, cfg.BackupsEnabled(),
	)

	return cfg, workDir, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}
