// Package config defines configuration types for the deb822 tool.
// These types are pure data; discovery and loading live in internal/configloader.
package config

import "github.com/yaklabco/deb822/pkg/deb822"

// LineEnding selects the terminator written on synthesized lines.
type LineEnding string

const (
	// LineEndingAuto follows the terminators already present in a document.
	LineEndingAuto LineEnding = "auto"
	LineEndingLF   LineEnding = "lf"
	LineEndingCRLF LineEnding = "crlf"
)

// IsValid returns true if the line ending is known.
func (l LineEnding) IsValid() bool {
	switch l {
	case LineEndingAuto, LineEndingLF, LineEndingCRLF, "":
		return true
	default:
		return false
	}
}

// Newline returns the terminator for l, or "" for auto.
func (l LineEnding) Newline() string {
	switch l {
	case LineEndingLF:
		return "\n"
	case LineEndingCRLF:
		return "\r\n"
	default:
		return ""
	}
}

// OutputFormat specifies how commands print paragraphs and values.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	return f == FormatText || f == FormatJSON
}

// StyleConfig controls the layout of text the editor writes.
type StyleConfig struct {
	// Indent prefixes new continuation lines.
	Indent string `mapstructure:"indent" yaml:"indent"`

	// Separator follows the colon of new fields.
	Separator string `mapstructure:"separator" yaml:"separator"`

	// LineEnding is used when a document has no terminator to copy.
	LineEnding LineEnding `mapstructure:"line_ending" yaml:"line_ending"`
}

// BackupsConfig controls backup behavior when rewriting files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// Config is the root configuration structure.
type Config struct {
	// Style controls synthesized text.
	Style StyleConfig `mapstructure:"style" yaml:"style"`

	// Strict makes syntax errors fail commands that read documents.
	Strict bool `mapstructure:"strict" yaml:"strict"`

	// Backups configures backups of rewritten files.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// LogLevel is the default log level (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// DryRun prints the diff of an edit instead of writing it.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation for this run.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Style: StyleConfig{
			Indent:     " ",
			Separator:  " ",
			LineEnding: LineEndingAuto,
		},
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		LogLevel: "warn",
		Format:   FormatText,
	}
}

// DocumentStyle returns the editor style described by the configuration.
func (c *Config) DocumentStyle() deb822.Style {
	s := deb822.DefaultStyle()
	if c == nil {
		return s
	}
	if c.Style.Indent != "" {
		s.Indent = c.Style.Indent
	}
	if c.Style.Separator != "" {
		s.Separator = c.Style.Separator
	}
	s.Newline = c.Style.LineEnding.Newline()
	return s
}

// BackupsEnabled reports whether rewritten files should be backed up.
func (c *Config) BackupsEnabled() bool {
	return c.Backups.Enabled && !c.NoBackups && c.Backups.Mode != "none"
}
