package fsutil

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for newly created files.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic writes content to path through a temporary file in the same
// directory, synced and then renamed over the target. If mode is 0,
// DefaultFileMode is used. On error the target is untouched and the
// temporary file is removed.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode.Perm()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// Rewrite replaces the file described by snap with content. It fails with
// ErrModified if the file changed since the snapshot was taken, and backs
// the old content up first when backup is enabled. Unchanged content is not
// written; the result reports whether the file was rewritten.
func Rewrite(ctx context.Context, snap *Snapshot, content []byte, backup BackupConfig) (bool, error) {
	changed, err := snap.Changed(ctx)
	if err != nil {
		return false, err
	}
	if changed {
		return false, fmt.Errorf("%w: %s", ErrModified, snap.Path)
	}
	if int64(len(content)) == snap.Size && sha256.Sum256(content) == snap.Hash {
		return false, nil
	}

	if _, err := CreateBackup(ctx, snap.Path, backup); err != nil {
		return false, err
	}
	if err := WriteAtomic(ctx, snap.Path, content, snap.Mode); err != nil {
		return false, err
	}
	return true, nil
}
