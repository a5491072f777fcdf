package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// DefaultWidth is assumed when the output is not a terminal.
const DefaultWidth = 100

// TerminalWidth returns the column count of w if it is a terminal, or
// DefaultWidth.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// Truncate shortens s to at most width cells, marking the cut with "…".
// ANSI escape sequences do not count towards the width.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
