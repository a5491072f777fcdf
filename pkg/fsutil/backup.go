package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode names where the pre-edit copy of a rewritten file goes.
type BackupMode string

const (
	// BackupModeSidecar writes path+BackupSuffix next to the file.
	BackupModeSidecar BackupMode = "sidecar"
	// BackupModeNone keeps no copy.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to the path of sidecar backups.
const BackupSuffix = ".deb822.bak"

// BackupConfig controls backup behavior.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

func (c BackupConfig) active() bool {
	return c.Enabled && c.Mode != BackupModeNone
}

// BackupPath returns where the backup of path is stored, or "" when mode
// keeps no backups. Unknown modes behave like sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies the file at path to its backup location and reports
// whether it wrote one. An existing backup is never replaced, so a series
// of edits keeps the content from before the first one. A missing original
// is not an error.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.active() {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	dest := BackupPath(path, cfg.Mode)
	switch exists, err := pathExists(dest); {
	case err != nil:
		return false, fmt.Errorf("stat backup %s: %w", dest, err)
	case exists:
		return false, nil
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s for backup: %w", path, err)
	}
	original, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s for backup: %w", path, err)
	}

	if err := WriteAtomic(ctx, dest, original, info.Mode()); err != nil {
		return false, fmt.Errorf("write backup %s: %w", dest, err)
	}
	return true, nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
