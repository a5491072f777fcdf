// Package runner processes many deb822 files concurrently.
package runner

import "github.com/yaklabco/deb822/pkg/config"

// Options controls multi-file processing.
type Options struct {
	// Paths are the user-specified files or directories to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Patterns are the file name globs that select deb822 files while
	// walking directories. Files named explicitly in Paths are always
	// processed. Defaults to DefaultPatterns().
	Patterns []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultPatterns returns the names of common deb822 files.
func DefaultPatterns() []string {
	return []string{
		"control",
		"copyright",
		"*.dsc",
		"*.changes",
		"*.buildinfo",
		"*.sources",
		"Packages",
		"Sources",
		"Release",
	}
}

func (o Options) effectivePatterns() []string {
	if len(o.Patterns) == 0 {
		return DefaultPatterns()
	}
	return o.Patterns
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
