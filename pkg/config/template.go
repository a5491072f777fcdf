package config

import (
	"bytes"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value instead of a
	// commented sample.
	Full bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return generateFullTemplate()
	}
	return []byte(minimalTemplate), nil
}

const minimalTemplate = `# deb822 configuration
# See: https://github.com/yaklabco/deb822

# Layout of text written by edits. Existing fields keep their own layout.
# style:
#   indent: " "
#   separator: " "
#   line_ending: auto   # auto, lf or crlf

# Fail commands when a document has syntax errors
# strict: false

# Keep a copy of files before rewriting them
# backups:
#   enabled: false
#   mode: sidecar

# log_level: warn
`

func generateFullTemplate() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# deb822 configuration - Full Template\n")
	buf.WriteString("# See: https://github.com/yaklabco/deb822\n\n")

	data, err := NewConfig().ToYAML()
	if err != nil {
		return nil, fmt.Errorf("render defaults: %w", err)
	}
	buf.Write(data)
	return buf.Bytes(), nil
}
