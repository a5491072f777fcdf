package configloader

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/yaklabco/deb822/pkg/config"
)

// envVarPrefix is the prefix for all deb822 environment variables.
const envVarPrefix = "DEB822_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"INDENT":          {field: "style.indent", typ: envTypeString, description: "Indentation of new continuation lines"},
	"SEPARATOR":       {field: "style.separator", typ: envTypeString, description: "Text written after the colon of new fields"},
	"LINE_ENDING":     {field: "style.line_ending", typ: envTypeString, description: "Line ending of new lines: auto, lf or crlf"},
	"STRICT":          {field: "strict", typ: envTypeBool, description: "Fail on syntax errors: true or false"},
	"LOG_LEVEL":       {field: "log_level", typ: envTypeString, description: "Log level: debug, info, warn or error"},
	"FORMAT":          {field: "format", typ: envTypeString, description: "Output format: text or json"},
	"BACKUPS_ENABLED": {field: "backups.enabled", typ: envTypeBool, description: "Back up files before rewriting: true or false"},
	"BACKUPS_MODE":    {field: "backups.mode", typ: envTypeString, description: "Backup mode: sidecar or none"},
	"NO_BACKUPS":      {field: "no_backups", typ: envTypeBool, description: "Disable backups: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with DEB822_ (e.g., DEB822_STRICT).
// A variable that is set but empty is ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range slices.Sorted(maps.Keys(envMappings)) {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[suffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "style.indent":
		cfg.Style.Indent = value
	case "style.separator":
		cfg.Style.Separator = value
	case "style.line_ending":
		cfg.Style.LineEnding = config.LineEnding(value)
	case "log_level":
		cfg.LogLevel = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "strict":
		cfg.Strict = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		out[envVarPrefix+suffix] = mapping.description
	}
	return out
}
