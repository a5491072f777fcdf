package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/deb822/internal/logging"
	"github.com/yaklabco/deb822/pkg/deb822"
	"github.com/yaklabco/deb822/pkg/fsutil"
)

// stdinPath names standard input in file arguments.
const stdinPath = "-"

// ErrInputIsTerminal is returned when "-" would read from an interactive
// terminal.
var ErrInputIsTerminal = errors.New("standard input is a terminal")

// readInput returns the content of path, or of standard input for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path != stdinPath {
		content, _, err := fsutil.ReadFile(commandContext(cmd), path)
		return content, err
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, fmt.Errorf("%w: pipe a document or pass a file name", ErrInputIsTerminal)
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read standard input: %w", err)
	}
	return data, nil
}

// readDocument parses path. In strict mode syntax errors fail the read;
// otherwise they are logged and the document is returned.
func readDocument(cmd *cobra.Command, path string, strict bool) (*deb822.Document, error) {
	content, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}

	if strict {
		doc, err := deb822.ParseStrict(string(content))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return doc, nil
	}

	doc := deb822.Parse(string(content))
	if errs := doc.Errors(); len(errs) > 0 {
		logging.FromContext(commandContext(cmd)).Warn("document has syntax errors",
			logging.FieldPath, path,
			logging.FieldSyntaxErrs, len(errs),
			logging.FieldLine, errs[0].Line,
		)
	}
	return doc, nil
}

// readValue resolves a value argument. "-" reads standard input with one
// trailing line terminator removed.
func readValue(cmd *cobra.Command, arg string) (string, error) {
	if arg != stdinPath {
		return arg, nil
	}
	data, err := readInput(cmd, stdinPath)
	if err != nil {
		return "", err
	}
	value := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(value, "\r"), nil
}
