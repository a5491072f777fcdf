package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/deb822/pkg/config"
	"github.com/yaklabco/deb822/pkg/deb822"
	"github.com/yaklabco/deb822/pkg/fix"
	"github.com/yaklabco/deb822/pkg/fsutil"
	"github.com/yaklabco/deb822/pkg/runner"
)

const control = `Source: hello
Maintainer: Jane Doe <jane@example.org>

Package: hello
Architecture: any
`

func setMaintainer(value string) runner.Task {
	return func(doc *deb822.Document) error {
		p, ok := doc.Paragraph(0)
		if !ok {
			return errors.New("empty document")
		}
		_, err := doc.Set(p, "Maintainer", value)
		return err
	}
}

func writeControl(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		task        runner.Task
		opts        runner.PipelineOptions
		wantErr     error
		wantSyntax  int
		wantChanged bool
		wantContent string
	}{
		{
			name:    "check only",
			content: control,
		},
		{
			name:       "syntax errors are reported",
			content:    "Source: hello\nbroken line\n",
			wantSyntax: 1,
		},
		{
			name:        "task edits",
			content:     control,
			task:        setMaintainer("John Roe <john@example.org>"),
			wantChanged: true,
			wantContent: strings.Replace(control, "Jane Doe <jane@example.org>", "John Roe <john@example.org>", 1),
		},
		{
			name:    "no-op task",
			content: control,
			task:    setMaintainer("Jane Doe <jane@example.org>"),
		},
		{
			name:       "strict refuses broken documents",
			content:    "Source: hello\nbroken line\n",
			task:       setMaintainer("x"),
			opts:       runner.PipelineOptions{Strict: true},
			wantErr:    runner.ErrSyntax,
			wantSyntax: 1,
		},
		{
			name:    "task failure",
			content: "",
			task:    setMaintainer("x"),
			wantErr: runner.ErrTask,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := runner.NewPipeline(tt.task)
			res, err := p.ProcessContent(context.Background(), "debian/control", []byte(tt.content), tt.opts)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, runner.IsPipelineError(err))
			} else {
				require.NoError(t, err)
			}
			require.NotNil(t, res)

			assert.Len(t, res.SyntaxErrors, tt.wantSyntax)
			assert.Equal(t, tt.wantChanged, res.Modified)
			if tt.wantChanged {
				assert.Equal(t, tt.wantContent, string(res.ModifiedContent))
				assert.NotEmpty(t, res.Edits)
			}
			assert.Nil(t, res.Diff, "diffs are only computed in dry-run mode")
		})
	}
}

func TestProcessContent_EditsReproduceDocument(t *testing.T) {
	t.Parallel()

	content := control + "\n# trailing comment\nPackage: hello-doc\nArchitecture: all\n"
	res, err := runner.NewPipeline(setMaintainer("John Roe <john@example.org>")).
		ProcessContent(context.Background(), "debian/control", []byte(content), runner.PipelineOptions{})
	require.NoError(t, err)
	require.True(t, res.Modified)

	require.NotEmpty(t, res.Edits)
	assert.Equal(t, string(res.ModifiedContent), fix.ApplyEdits(content, res.Edits))

	assert.GreaterOrEqual(t, res.ChangedStart, strings.Index(content, "Jane"))
	assert.LessOrEqual(t, res.ChangedEnd, strings.Index(content, "\n\nPackage"),
		"edits stay inside the edited field")
}

func TestProcessContent_DryRunDiff(t *testing.T) {
	t.Parallel()

	p := runner.NewPipeline(setMaintainer("John Roe <john@example.org>"))
	res, err := p.ProcessContent(context.Background(), "debian/control", []byte(control), runner.PipelineOptions{DryRun: true})
	require.NoError(t, err)

	require.True(t, res.Diff.HasChanges())
	assert.Equal(t, 1, res.Diff.Additions)
	assert.Equal(t, 1, res.Diff.Deletions)
	assert.Contains(t, res.Diff.String(), "+Maintainer: John Roe <john@example.org>")
	assert.Equal(t, "changes pending", res.Summary())
}

func TestProcessContent_Style(t *testing.T) {
	t.Parallel()

	task := func(doc *deb822.Document) error {
		p, _ := doc.Paragraph(1)
		_, err := doc.Set(p, "Description", "greeting\nprints hello")
		return err
	}

	res, err := runner.NewPipeline(task).ProcessContent(context.Background(), "control", []byte(control),
		runner.PipelineOptions{Style: deb822.Style{Indent: "  ", Separator: " "}})
	require.NoError(t, err)
	assert.Contains(t, string(res.ModifiedContent), "Description: greeting\n  prints hello\n")
}

func TestProcessFile(t *testing.T) {
	t.Parallel()

	t.Run("rewrites with backup", func(t *testing.T) {
		t.Parallel()

		path := writeControl(t, t.TempDir(), "debian/control", control)
		opts := runner.PipelineOptions{Backup: fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}}

		res, err := runner.NewPipeline(setMaintainer("John Roe <john@example.org>")).
			ProcessFile(context.Background(), path, opts)
		require.NoError(t, err)
		assert.True(t, res.Written)
		assert.Equal(t, "rewritten", res.Summary())
		require.NotNil(t, res.Snapshot)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(got), "John Roe")

		backup, err := os.ReadFile(path + fsutil.BackupSuffix)
		require.NoError(t, err)
		assert.Equal(t, control, string(backup))
	})

	t.Run("dry run leaves the file alone", func(t *testing.T) {
		t.Parallel()

		path := writeControl(t, t.TempDir(), "control", control)
		res, err := runner.NewPipeline(setMaintainer("x")).
			ProcessFile(context.Background(), path, runner.PipelineOptions{DryRun: true})
		require.NoError(t, err)
		assert.False(t, res.Written)
		assert.True(t, res.Diff.HasChanges())

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, control, string(got))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := runner.NewPipeline(nil).
			ProcessFile(context.Background(), filepath.Join(t.TempDir(), "control"), runner.PipelineOptions{})
		require.ErrorIs(t, err, fsutil.ErrNotFound)
		assert.True(t, runner.IsPipelineError(err))
	})
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeControl(t, dir, "a/debian/control", control)
	writeControl(t, dir, "b/debian/control", control)
	writeControl(t, dir, "c/debian/control", "Source: broken\nnot a field\n")
	writeControl(t, dir, "d/debian/control", "")

	cfg := config.NewConfig()
	r := runner.New(runner.NewPipeline(setMaintainer("John Roe <john@example.org>")))

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 3, Config: cfg})
	require.NoError(t, err)

	require.Len(t, result.Files, 4)
	for i, name := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, filepath.Join(dir, name, "debian", "control"), result.Files[i].Path)
	}

	assert.Equal(t, runner.Stats{
		FilesDiscovered:       4,
		FilesProcessed:        3,
		FilesErrored:          1,
		FilesWithSyntaxErrors: 1,
		SyntaxErrors:          1,
		FilesChanged:          3,
		FilesWritten:          3,
		Edits:                 result.Stats.Edits,
	}, result.Stats)
	assert.Positive(t, result.Stats.Edits)
	assert.ErrorIs(t, result.Files[3].Error, runner.ErrTask)
	assert.True(t, result.HasFailures())
	assert.True(t, result.HasSyntaxErrors())
	assert.True(t, result.HasChanges())
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for i := range 12 {
		writeControl(t, dir, filepath.Join(string(rune('a'+i)), "control"), control)
	}

	check := runner.New(runner.NewPipeline(nil))
	serial, err := check.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	require.NoError(t, err)
	parallel, err := check.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	require.NoError(t, err)

	assert.Equal(t, serial.Stats, parallel.Stats)
	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
	}
	assert.False(t, parallel.HasChanges())
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New(runner.NewPipeline(nil)).
		Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeControl(t, dir, "control", control)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New(runner.NewPipeline(nil)).Run(ctx, runner.Options{WorkingDir: dir})
	require.Error(t, err)
}

func TestPipelineOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Strict = true
	cfg.DryRun = true
	cfg.Backups.Enabled = true
	cfg.Style.Indent = "\t"

	opts := runner.PipelineOptionsFromConfig(cfg)
	assert.True(t, opts.Strict)
	assert.True(t, opts.DryRun)
	assert.Equal(t, fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}, opts.Backup)
	assert.Equal(t, "\t", opts.Style.Indent)

	cfg.NoBackups = true
	assert.False(t, runner.PipelineOptionsFromConfig(cfg).Backup.Enabled)
	assert.Equal(t, deb822.DefaultStyle(), runner.PipelineOptionsFromConfig(nil).Style)
}
