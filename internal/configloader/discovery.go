package configloader

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/deb822/config.yaml).
	System string

	// User is the user-level config path (e.g., ~/.config/deb822/config.yaml).
	User string

	// Project is the project-level config path (e.g., ./.deb822.yml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string
}

// projectConfigFiles are the config file names we search for, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".deb822.yml",
	".deb822.yaml",
	"deb822.yml",
	"deb822.yaml",
}

// vcsRootMarkers are directories that mark a VCS checkout.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// appName names the system and user config directories.
const appName = "deb822"

// DiscoverPaths finds configuration files in standard locations:
//   - System config at /etc/deb822/config.{yaml,yml}
//   - User config at $XDG_CONFIG_HOME/deb822/config.{yaml,yml}
//   - Project config by searching upward from workDir for .deb822.{yml,yaml}
//
// Missing files are represented as empty strings (not errors).
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{
		System:  configIn(systemConfigDir()),
		User:    configIn(userConfigDir()),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(cmp.Or(os.Getenv("ProgramData"), `C:\ProgramData`), appName)
	}
	return filepath.Join("/etc", appName)
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// configIn returns the first config.{yaml,yml} in dir, or "".
func configIn(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		if path := filepath.Join(dir, name); fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config file
// and returns the first one found, or "" if there is none. The search stops
// at a project root: a VCS checkout, an unpacked Debian source package
// (a directory holding debian/control), the home directory, or the
// filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := absDir(startDir)
	if err != nil {
		return "", err
	}

	home, _ := os.UserHomeDir()
	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		for _, name := range projectConfigFiles {
			if path := filepath.Join(dir, name); fileExists(path) {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if isProjectRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func absDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

// isProjectRoot reports whether dir is a VCS root or the top of a Debian
// source package.
func isProjectRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return fileExists(filepath.Join(dir, "debian", "control"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
