package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/deb822/internal/logging"
	"github.com/yaklabco/deb822/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "style.indent").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err joins every validation error, or returns nil when r is valid.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i := range r.Errors {
		errs[i] = &r.Errors[i]
	}
	return errors.Join(errs...)
}

// WarningMessages returns the text of every warning.
func (r *ValidationResult) WarningMessages() []string {
	var messages []string
	for _, w := range r.Warnings {
		messages = append(messages, w.Error())
	}
	return messages
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	// A continuation line must start with whitespace, and the indent itself
	// must not end the line.
	switch {
	case cfg.Style.Indent == "":
	case !isBlank(cfg.Style.Indent):
		result.Errors = append(result.Errors, ValidationError{
			Field:   "style.indent",
			Value:   cfg.Style.Indent,
			Message: fmt.Sprintf("invalid indent %q; must contain only spaces and tabs", cfg.Style.Indent),
		})
	case len(cfg.Style.Indent) > 8:
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "style.indent",
			Value:   cfg.Style.Indent,
			Message: fmt.Sprintf("indent of %d characters is unusually wide", len(cfg.Style.Indent)),
		})
	}

	if !isBlank(cfg.Style.Separator) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "style.separator",
			Value:   cfg.Style.Separator,
			Message: fmt.Sprintf("invalid separator %q; must contain only spaces and tabs", cfg.Style.Separator),
		})
	}

	if !cfg.Style.LineEnding.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "style.line_ending",
			Value:   cfg.Style.LineEnding,
			Message: fmt.Sprintf("invalid line ending %q; must be one of: auto, lf, crlf", cfg.Style.LineEnding),
		})
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json", cfg.Format),
		})
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: err.Error(),
		})
	}

	return result
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}

func isBlank(s string) bool {
	return strings.Trim(s, " \t") == ""
}
