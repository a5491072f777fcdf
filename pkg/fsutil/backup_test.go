package fsutil_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/deb822/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mode fsutil.BackupMode
		want string
	}{
		{name: "sidecar", mode: fsutil.BackupModeSidecar, want: "debian/control.deb822.bak"},
		{name: "none", mode: fsutil.BackupModeNone, want: ""},
		{name: "unknown behaves like sidecar", mode: "xdg", want: "debian/control.deb822.bak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fsutil.BackupPath("debian/control", tt.mode))
		})
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	enabled := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "A: b\n")
		created, err := fsutil.CreateBackup(ctx, path, fsutil.BackupConfig{Mode: fsutil.BackupModeSidecar})
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("mode none", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "A: b\n")
		created, err := fsutil.CreateBackup(ctx, path, fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeNone})
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("keeps the oldest backup", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "first\n")
		created, err := fsutil.CreateBackup(ctx, path, enabled)
		require.NoError(t, err)
		assert.True(t, created)

		require.NoError(t, os.WriteFile(path, []byte("second\n"), 0o600))
		created, err = fsutil.CreateBackup(ctx, path, enabled)
		require.NoError(t, err)
		assert.False(t, created)

		backup, err := os.ReadFile(path + fsutil.BackupSuffix)
		require.NoError(t, err)
		assert.Equal(t, "first\n", string(backup))
	})

	t.Run("missing original", func(t *testing.T) {
		t.Parallel()
		created, err := fsutil.CreateBackup(ctx, t.TempDir()+"/missing", enabled)
		require.NoError(t, err)
		assert.False(t, created)
	})
}
