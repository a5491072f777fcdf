package cli

import (
	"errors"

	"github.com/yaklabco/deb822/pkg/fsutil"
	"github.com/yaklabco/deb822/pkg/runner"
)

// Exit codes for deb822.
const (
	// ExitSuccess indicates successful execution with no problems.
	ExitSuccess = 0

	// ExitProblems indicates the command ran but found syntax errors,
	// failed files, or pending changes under fmt --check.
	ExitProblems = 1

	// ExitNoMatch indicates a lookup or filter matched nothing, or a
	// paragraph index was out of range.
	ExitNoMatch = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors that select an exit code. Commands wrap them so that main
// can map any returned error with ExitCode.
var (
	// ErrProblemsFound is returned when a run reported problems.
	ErrProblemsFound = errors.New("problems found")

	// ErrNoMatch is returned when nothing matched a key or filter.
	ErrNoMatch = errors.New("no match")

	// ErrUsage marks invalid arguments or flags.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration loading failures.
	ErrConfig = errors.New("configuration error")
)

// ExitOptions selects what makes a run fail.
type ExitOptions struct {
	// FailOnSyntaxErrors treats unparseable lines as problems.
	FailOnSyntaxErrors bool

	// FailOnChanges treats pending changes as problems.
	FailOnChanges bool
}

// ExitCodeFromResult determines the exit code of a multi-file run.
func ExitCodeFromResult(result *runner.Result, opts ExitOptions) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		return ExitProblems
	}

	if opts.FailOnSyntaxErrors && result.HasSyntaxErrors() {
		return ExitProblems
	}

	if opts.FailOnChanges && result.HasChanges() {
		return ExitProblems
	}

	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrProblemsFound):
		return ExitProblems
	case errors.Is(err, ErrNoMatch), errors.Is(err, ErrNoParagraph):
		return ExitNoMatch
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, ErrInputIsTerminal):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsReported reports whether err only signals an exit status and has
// already been shown to the user.
func IsReported(err error) bool {
	return errors.Is(err, ErrProblemsFound) || errors.Is(err, ErrNoMatch)
}
