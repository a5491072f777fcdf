package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/deb822/pkg/config"
	"github.com/yaklabco/deb822/pkg/deb822"
	"github.com/yaklabco/deb822/pkg/fix"
	"github.com/yaklabco/deb822/pkg/fsutil"
)

// Pipeline error types for categorization.
var (
	// ErrSyntax indicates a document with syntax errors in strict mode.
	ErrSyntax = errors.New("syntax errors")

	// ErrTask indicates the task failed on a document.
	ErrTask = errors.New("task failed")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// Task edits a parsed document in place. A task that leaves the document
// unchanged makes the pipeline a pure check.
type Task func(doc *deb822.Document) error

// PipelineOptions controls how a single file is processed.
type PipelineOptions struct {
	// DryRun computes the diff without writing files.
	DryRun bool

	// Strict refuses to run the task on documents with syntax errors.
	Strict bool

	// Backup configures backups of rewritten files.
	Backup fsutil.BackupConfig

	// Style is used for synthesized text. The zero Style means
	// deb822.DefaultStyle.
	Style deb822.Style
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return PipelineOptions{Style: deb822.DefaultStyle()}
	}
	return PipelineOptions{
		DryRun: cfg.DryRun,
		Strict: cfg.Strict,
		Backup: fsutil.BackupConfig{
			Enabled: cfg.BackupsEnabled(),
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		},
		Style: cfg.DocumentStyle(),
	}
}

// Pipeline runs a Task over files with safe rewrites.
type Pipeline struct {
	// Task is applied to every document; nil only checks syntax.
	Task Task
}

// NewPipeline creates a pipeline for task.
func NewPipeline(task Task) *Pipeline {
	return &Pipeline{Task: task}
}

// ProcessFile runs the pipeline for a single file:
//  1. Read and snapshot the file.
//  2. Parse it and collect syntax errors.
//  3. Run the task and compute the edits it made.
//  4. In dry-run mode, diff the result and stop.
//  5. Otherwise rewrite the file, unless it changed on disk meanwhile.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*FileResult, error) {
	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	result, err := p.ProcessContent(ctx, path, content, opts)
	if result != nil {
		result.Snapshot = snap
	}
	if err != nil {
		return result, err
	}

	if !result.Modified || opts.DryRun {
		return result, nil
	}

	written, err := fsutil.Rewrite(ctx, snap, result.ModifiedContent, opts.Backup)
	switch {
	case errors.Is(err, fsutil.ErrModified):
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	case err != nil:
		return result, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = written

	return result, nil
}

// ProcessContent runs the pipeline on content already in memory. It never
// writes; in dry-run mode the result carries a diff.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, content []byte, opts PipelineOptions) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	original := string(content)
	doc := deb822.Parse(original)
	if opts.Style != (deb822.Style{}) {
		doc.SetStyle(opts.Style)
	}

	result := &FileResult{
		Path:         path,
		SyntaxErrors: doc.Errors(),
	}

	if p.Task == nil {
		return result, nil
	}
	if opts.Strict && len(result.SyntaxErrors) > 0 {
		return result, fmt.Errorf("%w: %d in %s", ErrSyntax, len(result.SyntaxErrors), path)
	}

	before := doc.Tree()
	if err := p.Task(doc); err != nil {
		return result, fmt.Errorf("%w: %w", ErrTask, err)
	}

	edits, err := fix.PrepareEdits(fix.TreeEdits(before, doc.Tree()), len(original))
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrTask, err)
	}
	if len(edits) == 0 {
		return result, nil
	}

	// The file is rewritten from the original bytes, so anything outside
	// the edits is carried over verbatim.
	modified := fix.ApplyEdits(original, edits)
	if modified != doc.String() {
		return result, fmt.Errorf("%w: edits do not reproduce the edited document", ErrTask)
	}

	result.Edits = edits
	result.ChangedStart, result.ChangedEnd, _ = fix.Span(edits)
	result.Modified = true
	result.ModifiedContent = []byte(modified)
	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, original, modified)
	}

	return result, nil
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrSyntax) ||
		errors.Is(err, ErrTask) ||
		errors.Is(err, ErrWriteFailure) ||
		errors.Is(err, fsutil.ErrNotFound) ||
		errors.Is(err, fsutil.ErrPermissionDenied) ||
		errors.Is(err, fsutil.ErrIsDirectory)
}
