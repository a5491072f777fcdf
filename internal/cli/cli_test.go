package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/yaklabco/deb822/internal/cli"
	"github.com/yaklabco/deb822/pkg/fsutil"
	"github.com/yaklabco/deb822/pkg/runner"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "deb822" {
		t.Errorf("expected Use to be 'deb822', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expectedSubcommands := []string{
		"get", "filter", "dump",
		"check", "fmt", "set", "rm", "rename", "append",
		"init", "version",
	}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		flags   []string
	}{
		{command: "set", flags: []string{"paragraph", "where", "all", "dry-run", "no-backups", "strict", "format", "jobs", "indent", "line-ending"}},
		{command: "rm", flags: []string{"paragraph", "where", "all", "dry-run"}},
		{command: "rename", flags: []string{"paragraph", "where", "all", "dry-run"}},
		{command: "append", flags: []string{"dry-run", "no-backups"}},
		{command: "fmt", flags: []string{"check", "diff", "dry-run", "separator", "wrap", "wrap-indent", "sort-fields", "sort-paragraphs"}},
		{command: "check", flags: []string{"format", "pattern", "exclude", "no-context", "strict"}},
		{command: "get", flags: []string{"paragraph", "where", "all", "every", "json"}},
		{command: "filter", flags: []string{"keys", "count", "json"}},
		{command: "dump", flags: []string{"paragraph"}},
		{command: "init", flags: []string{"force", "full", "output"}},
	}

	cmd := cli.NewRootCommand(testInfo())
	for _, tt := range tests {
		sub, _, err := cmd.Find([]string{tt.command})
		if err != nil {
			t.Fatalf("%s command not found: %v", tt.command, err)
		}
		for _, name := range tt.flags {
			if sub.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %q to exist on %s command", name, tt.command)
			}
		}
	}
}

func TestReadOnlyCommandsHaveNoWriteFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	for _, name := range []string{"check", "get", "filter"} {
		sub, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Fatalf("%s command not found: %v", name, err)
		}
		if sub.Flags().Lookup("dry-run") != nil {
			t.Errorf("%s should not accept --dry-run", name)
		}
	}

	appendCmd, _, _ := cmd.Find([]string{"append"})
	if appendCmd.Flags().Lookup("where") != nil {
		t.Error("append should not accept --where")
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "problems", err: cli.ErrProblemsFound, want: cli.ExitProblems},
		{name: "no match", err: fmt.Errorf("get: %w", cli.ErrNoMatch), want: cli.ExitNoMatch},
		{name: "usage", err: fmt.Errorf("%w: bad flag", cli.ErrUsage), want: cli.ExitInvalidUsage},
		{name: "config", err: fmt.Errorf("%w: bad yaml", cli.ErrConfig), want: cli.ExitConfigError},
		{name: "not found", err: fmt.Errorf("read: %w", fsutil.ErrNotFound), want: cli.ExitIOError},
		{name: "terminal", err: cli.ErrInputIsTerminal, want: cli.ExitIOError},
		{name: "other", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats runner.Stats
		opts  cli.ExitOptions
		want  int
	}{
		{name: "clean", stats: runner.Stats{FilesProcessed: 2}, want: cli.ExitSuccess},
		{name: "failure", stats: runner.Stats{FilesErrored: 1}, want: cli.ExitProblems},
		{name: "syntax errors tolerated", stats: runner.Stats{SyntaxErrors: 3}, want: cli.ExitSuccess},
		{
			name:  "syntax errors fail",
			stats: runner.Stats{SyntaxErrors: 3},
			opts:  cli.ExitOptions{FailOnSyntaxErrors: true},
			want:  cli.ExitProblems,
		},
		{name: "changes tolerated", stats: runner.Stats{FilesChanged: 1}, want: cli.ExitSuccess},
		{
			name:  "changes fail",
			stats: runner.Stats{FilesChanged: 1},
			opts:  cli.ExitOptions{FailOnChanges: true},
			want:  cli.ExitProblems,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := cli.ExitCodeFromResult(&runner.Result{Stats: tt.stats}, tt.opts)
			if got != tt.want {
				t.Errorf("ExitCodeFromResult() = %d, want %d", got, tt.want)
			}
		})
	}

	if got := cli.ExitCodeFromResult(nil, cli.ExitOptions{FailOnChanges: true}); got != cli.ExitSuccess {
		t.Errorf("nil result: got %d", got)
	}
}

func TestIsReported(t *testing.T) {
	t.Parallel()

	if !cli.IsReported(fmt.Errorf("x: %w", cli.ErrNoMatch)) {
		t.Error("ErrNoMatch should count as reported")
	}
	if cli.IsReported(cli.ErrUsage) {
		t.Error("ErrUsage should be logged")
	}
}
