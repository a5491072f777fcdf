package reporter

import (
	"fmt"
	"slices"
	"strings"
)

// Format names a reporter.
type Format string

const (
	// FormatText prints styled diagnostics, one line per syntax error.
	FormatText Format = "text"
	// FormatJSON prints one JSON document for the whole run.
	FormatJSON Format = "json"
	// FormatDiff prints a unified diff for every file an edit changed.
	FormatDiff Format = "diff"
)

var formats = []Format{FormatText, FormatJSON, FormatDiff}

// Formats lists the known formats in display order.
func Formats() []Format {
	return slices.Clone(formats)
}

// ParseFormat maps a flag value to a Format. The empty string selects text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	f := Format(strings.ToLower(name))
	if !f.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: %s", name, formatList())
	}
	return f, nil
}

func (f Format) String() string { return string(f) }

// IsValid reports whether f names a known reporter.
func (f Format) IsValid() bool {
	return slices.Contains(formats, f)
}

func formatList() string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
