package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldWorkingDir = "working_dir"

	// Document fields.
	FieldParagraph  = "paragraph"
	FieldParagraphs = "paragraphs"
	FieldKey        = "key"
	FieldLine       = "line"
	FieldEdits      = "edits"
	FieldSyntaxErrs = "syntax_errors"
	FieldFilter     = "filter"

	// Configuration fields.
	FieldConfig = "config"
	FieldSource = "source"
	FieldStrict = "strict"
	FieldDryRun = "dry_run"
	FieldBackup = "backup"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
