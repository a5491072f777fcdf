package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/deb822/pkg/runner"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 syntax errors in 1 file, 3 files changed (4 checked)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	checked := s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(stats.FilesDiscovered, "file")))

	var parts []string
	if stats.SyntaxErrors > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%s in %s",
			plural(stats.SyntaxErrors, "syntax error"), plural(stats.FilesWithSyntaxErrors, "file"))))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(plural(stats.FilesErrored, "file")+" failed"))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(plural(stats.FilesSkipped, "file")+" skipped"))
	}
	switch {
	case stats.FilesWritten > 0:
		parts = append(parts, s.Success.Render(plural(stats.FilesWritten, "file")+" rewritten"))
	case stats.FilesChanged > 0:
		parts = append(parts, s.Warning.Render(plural(stats.FilesChanged, "file")+" would change"))
	}

	if len(parts) == 0 {
		return s.Success.Render("No problems found") + checked + "\n"
	}
	return strings.Join(parts, ", ") + checked + "\n"
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
