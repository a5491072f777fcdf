// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, layered merging,
// environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/deb822/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// It is loaded after the discovered files.
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration. Sources are applied lowest first:
// defaults, system file, user file, project file, the explicit --config
// file, DEB822_* environment variables, then CLI flags. The configuration is
// validated after every file so an invalid value is reported against the
// file that introduced it.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		if workDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, path := range fileLayers(paths, opts) {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
		result.LoadedFrom = append(result.LoadedFrom, path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	cfg = merge(cfg, opts.CLIConfig)

	validation := Validate(cfg)
	if err := validation.Err(); err != nil {
		return nil, err
	}
	result.Warnings = validation.WarningMessages()
	result.Config = cfg

	return result, nil
}

// fileLayers returns the config files to apply, lowest precedence first.
func fileLayers(paths *ConfigPaths, opts LoadOptions) []string {
	var layers []string
	add := func(path string, skip bool) {
		if path != "" && !skip {
			layers = append(layers, path)
		}
	}
	add(paths.System, opts.IgnoreSystemConfig)
	add(paths.User, opts.IgnoreUserConfig)
	add(paths.Project, opts.IgnoreProjectConfig)
	add(paths.Explicit, false)
	return layers
}

// applyFile decodes the YAML file at path on top of cfg and validates the
// outcome.
func applyFile(cfg *config.Config, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := cfg.MergeYAML(content); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return ValidateWithFile(cfg, path).Err()
}
