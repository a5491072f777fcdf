package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/yaklabco/deb822/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path         string            `json:"path"`
	SyntaxErrors []JSONSyntaxError `json:"syntaxErrors"`
	Edits        []JSONEdit        `json:"edits,omitempty"`
	ChangedSpan  *JSONSpan         `json:"changedSpan,omitempty"`
	Changed      bool              `json:"changed,omitempty"`
	Written      bool              `json:"written,omitempty"`
	Skipped      string            `json:"skipped,omitempty"`
	Diff         string            `json:"diff,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// JSONSyntaxError represents an unparseable line.
type JSONSyntaxError struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Offset  int    `json:"offset"`
	Message string `json:"message"`
	Text    string `json:"text"`
}

// JSONEdit represents a byte-level change.
type JSONEdit struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// JSONSpan is a byte range of the original text.
type JSONSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked          int `json:"filesChecked"`
	FilesWithSyntaxErrors int `json:"filesWithSyntaxErrors"`
	SyntaxErrors          int `json:"syntaxErrors"`
	FilesChanged          int `json:"filesChanged"`
	FilesWritten          int `json:"filesWritten"`
	FilesSkipped          int `json:"filesSkipped"`
	FilesErrored          int `json:"filesErrored"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output, total := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return total, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) (*JSONOutput, int) {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output, 0
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	total := 0
	for _, file := range result.Files {
		total += problems(file)

		fr := JSONFileResult{
			Path:         displayPath(file.Path, r.opts.WorkingDir),
			SyntaxErrors: make([]JSONSyntaxError, 0),
		}
		if file.Error != nil {
			fr.Error = file.Error.Error()
		}
		if res := file.Result; res != nil {
			for _, se := range res.SyntaxErrors {
				fr.SyntaxErrors = append(fr.SyntaxErrors, JSONSyntaxError{
					Line:    se.Line,
					Column:  se.Column,
					Offset:  se.Offset,
					Message: se.Message,
					Text:    se.Text,
				})
			}
			for _, edit := range res.Edits {
				fr.Edits = append(fr.Edits, JSONEdit{
					StartOffset: edit.StartOffset,
					EndOffset:   edit.EndOffset,
					NewText:     edit.NewText,
				})
			}
			if res.Modified {
				fr.ChangedSpan = &JSONSpan{Start: res.ChangedStart, End: res.ChangedEnd}
			}
			fr.Changed = res.Modified
			fr.Written = res.Written
			if res.Skipped {
				fr.Skipped = res.SkipReason
			}
			if res.Diff.HasChanges() {
				fr.Diff = res.Diff.String()
			}
		}
		output.Files = append(output.Files, fr)
	}

	s := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:          len(result.Files),
		FilesWithSyntaxErrors: s.FilesWithSyntaxErrors,
		SyntaxErrors:          s.SyntaxErrors,
		FilesChanged:          s.FilesChanged,
		FilesWritten:          s.FilesWritten,
		FilesSkipped:          s.FilesSkipped,
		FilesErrored:          s.FilesErrored,
	}

	return output, total
}
