package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/deb822/internal/ui/pretty"
	"github.com/yaklabco/deb822/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesDiscovered: 3, FilesProcessed: 3},
			want:  "No problems found (3 files checked)\n",
		},
		{
			name:  "syntax errors",
			stats: runner.Stats{FilesDiscovered: 2, SyntaxErrors: 3, FilesWithSyntaxErrors: 1},
			want:  "3 syntax errors in 1 file (2 files checked)\n",
		},
		{
			name:  "pending changes",
			stats: runner.Stats{FilesDiscovered: 1, FilesChanged: 1},
			want:  "1 file would change (1 file checked)\n",
		},
		{
			name:  "written and failed",
			stats: runner.Stats{FilesDiscovered: 4, FilesChanged: 2, FilesWritten: 2, FilesErrored: 1, FilesSkipped: 1},
			want:  "1 file failed, 1 file skipped, 2 files rewritten (4 files checked)\n",
		},
	}

	styles := pretty.NewStyles(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}
