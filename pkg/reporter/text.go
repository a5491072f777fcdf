package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/deb822/internal/ui/pretty"
	"github.com/yaklabco/deb822/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  pretty.TerminalWidth(opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)
		total += problems(file)

		if file.Result != nil && len(file.Result.SyntaxErrors) > 0 {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Result.SyntaxErrors)))
			for _, se := range file.Result.SyntaxErrors {
				fmt.Fprint(r.bw, r.styles.FormatSyntaxError(path, se, r.opts.ShowContext, r.width))
			}
			fmt.Fprintln(r.bw)
		}

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if r.opts.ShowDiffs && file.Result != nil && file.Result.Diff.HasChanges() {
			writeDiff(r.bw, r.styles, file.Result.Diff, path)
		}
		if file.Result != nil && file.Result.Skipped {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Warning.Render(file.Result.Summary()),
			)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}
