package configloader

import "github.com/yaklabco/deb822/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// Config files are layered by decoding YAML onto the running result, so merge
// only serves flag overrides, where a zero value means "flag not given":
//   - Strings: override overwrites base if non-empty
//   - Booleans: override can only switch a setting on
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Style.Indent != "" {
		result.Style.Indent = override.Style.Indent
	}
	if override.Style.Separator != "" {
		result.Style.Separator = override.Style.Separator
	}
	if override.Style.LineEnding != "" {
		result.Style.LineEnding = override.Style.LineEnding
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.Strict {
		result.Strict = true
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	return &result
}
