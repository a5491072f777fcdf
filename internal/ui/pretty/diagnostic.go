package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/deb822/pkg/deb822"
)

// FormatSyntaxError formats one syntax error for terminal output. With
// showContext the offending line is echoed below, cut to width cells.
func (s *Styles) FormatSyntaxError(path string, se deb822.SyntaxError, showContext bool, width int) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), se.Line, se.Column)
	fmt.Fprintf(&builder, "  %s  %s  %s\n",
		location,
		s.Error.Render("error"),
		s.Message.Render(se.Message),
	)

	if showContext {
		builder.WriteString(s.FormatSourceContext(se.Text, se.Column, width))
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	var builder strings.Builder

	const indent = "        "

	if width > len(indent) {
		line = Truncate(line, width-len(indent))
	}
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, errorCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case errorCount == 1:
		header += s.Dim.Render(" (1 syntax error)")
	case errorCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d syntax errors)", errorCount))
	}
	return header
}

// FormatField formats a field as "Key: value". Continuation lines of a
// multi-line value are indented by one space, with "." for empty lines.
func (s *Styles) FormatField(key, value string) string {
	first, rest := deb822.Unfold(value)
	var builder strings.Builder
	builder.WriteString(s.Key.Render(key))
	builder.WriteString(s.Separator.Render(":"))
	if first != "" {
		builder.WriteString(" " + s.Value.Render(first))
	}
	builder.WriteByte('\n')
	for _, line := range rest {
		builder.WriteString(" " + s.Value.Render(line) + "\n")
	}
	return builder.String()
}
