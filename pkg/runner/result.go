package runner

import (
	"github.com/yaklabco/deb822/pkg/deb822"
	"github.com/yaklabco/deb822/pkg/fix"
	"github.com/yaklabco/deb822/pkg/fsutil"
)

// FileResult is the outcome of running a pipeline on one file.
type FileResult struct {
	// Path is the file path that was processed.
	Path string

	// Snapshot is the file state before processing; nil for in-memory content.
	Snapshot *fsutil.Snapshot

	// SyntaxErrors lists the lines that could not be parsed.
	SyntaxErrors []deb822.SyntaxError

	// Edits are the byte-level changes the task made, sorted.
	Edits []fix.TextEdit

	// ChangedStart and ChangedEnd bound the bytes of the original text the
	// edits touch. Both are zero when nothing changed.
	ChangedStart int
	ChangedEnd   int

	// Modified is true if the task changed the content.
	Modified bool

	// ModifiedContent is the new content (nil if not modified).
	ModifiedContent []byte

	// Diff is set in dry-run mode when the content changed.
	Diff *fix.Diff

	// Skipped is true if the file changed on disk before it could be written.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// Written is true if the file was rewritten.
	Written bool
}

// Summary returns a short description of the outcome.
func (r *FileResult) Summary() string {
	switch {
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Written:
		return "rewritten"
	case r.Modified:
		return "changes pending"
	case len(r.SyntaxErrors) > 0:
		return "syntax errors"
	default:
		return "ok"
	}
}

// FileOutcome pairs a path with its result or error.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is nil if the file could not be read. It may be set alongside
	// Error when the file was parsed but the task or write failed.
	Result *FileResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files processed without error.
	FilesProcessed int

	// FilesSkipped is the number of files skipped due to concurrent modification.
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWithSyntaxErrors is the number of files with at least one syntax error.
	FilesWithSyntaxErrors int

	// SyntaxErrors is the total number of syntax errors.
	SyntaxErrors int

	// FilesChanged is the number of files the task changed.
	FilesChanged int

	// FilesWritten is the number of files rewritten on disk.
	FilesWritten int

	// Edits is the total number of byte-level edits.
	Edits int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to process.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasSyntaxErrors reports whether any processed file has syntax errors.
func (r *Result) HasSyntaxErrors() bool {
	return r != nil && r.Stats.SyntaxErrors > 0
}

// HasChanges reports whether the task changed any file.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if res := outcome.Result; res != nil {
		if n := len(res.SyntaxErrors); n > 0 {
			r.Stats.SyntaxErrors += n
			r.Stats.FilesWithSyntaxErrors++
		}
	}

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Result.Modified {
		r.Stats.FilesChanged++
	}
	if outcome.Result.Written {
		r.Stats.FilesWritten++
	}
	r.Stats.Edits += len(outcome.Result.Edits)
}
